package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/go-sql-driver/mysql"
)

// Config holds relational store connection parameters. Driver is mysql (default)
// or postgres; SSLMode applies to postgres only. A non-empty DSN takes precedence
// over the other fields.
type Config struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"3306"`
	User     string `env:"DB_USER" envDefault:"photoapp"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"photoapp"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DSN      string `env:"DB_DSN"`
}

// FromEnv loads configuration from DB_* environment variables.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("read db env config: %w", err)
	}
	return c, nil
}

// Dialect reports the placeholder style of the configured driver.
func (c Config) Dialect() Dialect {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql", "pgx":
		return DialectPostgres
	default:
		return DialectMySQL
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (c Config) DriverName() string {
	if c.Dialect() == DialectPostgres {
		return "pgx"
	}
	return "mysql"
}

// Endpoint is the host:port dial address.
func (c Config) Endpoint() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Dialect() == DialectPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Endpoint(),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(c.sslMode()),
		}
		return u.String()
	}
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Endpoint()
	mc.DBName = c.DBName
	mc.ParseTime = true
	return mc.FormatDSN()
}

func (c Config) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

func (c Config) String() string {
	return fmt.Sprintf("%s://%s/%s", c.DriverName(), c.Endpoint(), c.DBName)
}
