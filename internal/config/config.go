package config

import (
	"bytes"
	_ "embed"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

const EnvDevelopment = "development"

// ---- Root ----

type Config struct {
	Env       string          `mapstructure:"env"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Customers CustomersConfig `mapstructure:"customers"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// ---- Leaf structs ----

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // json|console
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory|mysql|postgres|sqlite|redis
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type MailConfig struct {
	Sender  string `mapstructure:"sender"` // console|smtp; empty picks by env
	Server  string `mapstructure:"server"`
	Port    int    `mapstructure:"port"`
	From    string `mapstructure:"from"`
	Subject string `mapstructure:"subject"`
}

type CustomersConfig struct {
	DefaultEmail string `mapstructure:"default_email"`
}

// SenderKind resolves which mail sender to use. An explicit mail.sender wins;
// otherwise development logs to the console and every other env uses SMTP.
func (c Config) SenderKind() string {
	if s := strings.ToLower(strings.TrimSpace(c.Mail.Sender)); s != "" {
		return s
	}
	if c.IsDevelopment() {
		return "console"
	}
	return "smtp"
}

// Load reads embedded defaults, merges user YAML (if provided), loads .env and
// applies env overrides (CUSTOMERS_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// .env is optional
	_ = godotenv.Load()

	// env override (CUSTOMERS_*), nested keys use "_": CUSTOMERS_HTTP_ADDR
	v.SetEnvPrefix("CUSTOMERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
