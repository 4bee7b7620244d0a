package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Scheduling SchedulingConfig `mapstructure:"scheduling" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// SchedulingConfig contains settings for the auto-scheduling engine.
type SchedulingConfig struct {
	// DefaultHorizonDays is the number of working days an
	// auto-schedule request covers when the caller does not specify
	// one.
	DefaultHorizonDays int `mapstructure:"default_horizon_days" validate:"required,gt=0"`

	// CalendarWindowDays is the default width of the my-schedule
	// calendar view when no end date is supplied.
	CalendarWindowDays int `mapstructure:"calendar_window_days" validate:"required,gt=0"`
}
