package config

import "os"

const (
	defaultPort      = "3001"
	defaultStaticDir = "./web"
)

type ServerConfig struct {
	Port      string
	StaticDir string
}

// GetServerConfig reads the HTTP server settings from the environment.
// Both values have defaults, so this never fails.
func GetServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = defaultStaticDir
	}
	return &ServerConfig{
		Port:      port,
		StaticDir: staticDir,
	}
}
