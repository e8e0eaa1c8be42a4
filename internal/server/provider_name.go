package server

import (
	"fmt"
	"strings"

	"github.com/gmontenegrodev/web-app/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Used for metric and log labels.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
