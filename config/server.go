package config

import (
	"os"
)

type ServerConfig struct {
	Port      string
	ApiDomain string
}

func GetServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	apiDomain := os.Getenv("API_DOMAIN")
	if apiDomain == "" {
		apiDomain = "http://localhost:" + port
	}

	return &ServerConfig{
		Port:      port,
		ApiDomain: apiDomain,
	}, nil
}
