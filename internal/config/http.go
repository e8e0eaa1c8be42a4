package config

// HTTPConfig controls the public API surface.
type HTTPConfig struct {
	CORSOrigins []string
	AdminToken  string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		CORSOrigins: listEnvOrDefault(envCORSOrigins, []string{"*"}),
		AdminToken:  envOrDefault(envAdminToken, ""),
	}
}
