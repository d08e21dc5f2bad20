package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
	"gopkg.in/ini.v1"

	"github.com/yourorg/photoapp/internal/db"
	"github.com/yourorg/photoapp/internal/iopkg"
	"github.com/yourorg/photoapp/internal/storage"
)

const (
	// DefaultFile is used when the operator just presses ENTER at the prompt.
	DefaultFile = "photoapp-config.ini"
	// S3Profile is the credentials section inside the settings file.
	S3Profile = "s3readwrite"
)

// ErrMissingFile is returned when the settings file does not exist.
var ErrMissingFile = errors.New("config file does not exist")

type (
	// Env holds process-level overrides read from the environment.
	Env struct {
		LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
		MetricsAddr string `env:"METRICS_ADDR"`
		JournalDir  string `env:"PHOTOAPP_JOURNAL_DIR" envDefault:".photoapp-journal"`
		Viewer      string `env:"PHOTOAPP_VIEWER"`
		S3Endpoint  string `env:"AWS_ENDPOINT_URL_S3"`
		S3PathStyle bool   `env:"AWS_S3_FORCE_PATH_STYLE"`
	}

	// Settings is everything read at startup.
	Settings struct {
		File string
		DB   db.Config
		S3   storage.Options
		Env  Env
	}
)

// LoadEnv parses the environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("read env config: %w", err)
	}
	return e, nil
}

// Load reads the INI settings file at path and applies e on top of it.
func Load(path string, e Env) (Settings, error) {
	if !iopkg.Exists(path) {
		return Settings{}, fmt.Errorf("%s: %w", path, ErrMissingFile)
	}
	f, err := ini.Load(path)
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}

	s3s := f.Section("s3")
	bucket := s3s.Key("bucket_name").String()
	if bucket == "" {
		return Settings{}, fmt.Errorf("%s: [s3] bucket_name is required", path)
	}
	creds := f.Section(S3Profile)
	opts := storage.Options{
		Backend:         s3s.Key("backend").MustString("aws"),
		Bucket:          bucket,
		Region:          s3s.Key("region_name").String(),
		Endpoint:        s3s.Key("endpoint_url").String(),
		PathStyle:       s3s.Key("path_style").MustBool(false),
		CredentialsFile: path,
		Profile:         S3Profile,
		AccessKey:       creds.Key("aws_access_key_id").String(),
		SecretKey:       creds.Key("aws_secret_access_key").String(),
	}
	if e.S3Endpoint != "" {
		opts.Endpoint = e.S3Endpoint
	}
	if e.S3PathStyle {
		opts.PathStyle = true
	}

	rds := f.Section("rds")
	port, err := rds.Key("port_number").Int()
	if err != nil {
		return Settings{}, fmt.Errorf("%s: [rds] port_number: %w", path, err)
	}
	dbc := db.Config{
		Driver:   rds.Key("driver").MustString("mysql"),
		Host:     rds.Key("endpoint").String(),
		Port:     port,
		User:     rds.Key("user_name").String(),
		Password: rds.Key("user_pwd").String(),
		DBName:   rds.Key("db_name").String(),
		SSLMode:  rds.Key("ssl_mode").MustString("disable"),
	}
	if dbc.Host == "" || dbc.DBName == "" {
		return Settings{}, fmt.Errorf("%s: [rds] endpoint and db_name are required", path)
	}

	return Settings{File: path, DB: dbc, S3: opts, Env: e}, nil
}
