package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds"     validate:"gte=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds"    validate:"gte=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                       validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gt=0"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig configures token verification. Tokens are issued elsewhere;
// either a shared HMAC secret or a JWKS endpoint must be configured.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"         validate:"required_without=JWKSURL,omitempty,min=32"`
	JWKSURL          string `mapstructure:"jwks_url"           validate:"required_without=JWTSecret,omitempty,url"`
	Issuer           string `mapstructure:"issuer"`
	Audience         string `mapstructure:"audience"`
	ClockSkewSeconds int    `mapstructure:"clock_skew_seconds" validate:"gte=0,lte=600"`
}

// CacheConfig controls the in-process read cache.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries" validate:"required_if=Enabled true,omitempty,gt=0"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"required_if=Enabled true,omitempty,gt=0"`
}
