package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// RateLimitPerMinute caps API requests per client IP. Needs Redis; 0 disables.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is either "mysql" or "sqlite".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.SQLitePath
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig verifies tokens minted by the external identity provider.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	// OperationsAddress receives visit service reports. Empty disables them.
	OperationsAddress string `mapstructure:"operations_address"`
}

func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.OperationsAddress != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type PricingConfig struct {
	Currency string `mapstructure:"currency"`
	Locale   string `mapstructure:"locale"`
}

type SchedulerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// MaintenanceIntervalMinutes is how often agreements are checked for expiry and renewal.
	MaintenanceIntervalMinutes int `mapstructure:"maintenance_interval_minutes"`
}

// OAuthClientConfig holds OAuth2 client-credentials settings for an outbound integration.
type OAuthClientConfig struct {
	BaseURL      string   `mapstructure:"base_url"`
	TokenURL     string   `mapstructure:"token_url"`
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`
	TimeoutSecs  int      `mapstructure:"timeout_secs"`
}

func (o *OAuthClientConfig) Enabled() bool {
	return o.BaseURL != ""
}

type IntegrationsConfig struct {
	Directory  OAuthClientConfig `mapstructure:"directory"`
	Accounting OAuthClientConfig `mapstructure:"accounting"`
}
