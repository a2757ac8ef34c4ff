package config

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	// Listen port for the HTTP API
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}
