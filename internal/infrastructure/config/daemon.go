package config

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	// PID file guarding against concurrent daemon instances
	PIDFile string `mapstructure:"pid_file" validate:"required"`
}
