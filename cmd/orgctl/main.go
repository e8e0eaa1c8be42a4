// Command orgctl queries the Marlins organization data from the terminal.
//
// Usage:
//
//	orgctl schedule --date 2025-06-01
//	orgctl teams
//	orgctl roster 146
//	orgctl player 645261 --season 2025
//	orgctl leaders --team 146 --group pitching --stat era
//	orgctl search edwards
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
