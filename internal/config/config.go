// Package config loads the configuration of the backend from the environment
// and an optional configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
	"github.com/thaishare/backend/internal/models"
	"golang.org/x/exp/slices"
)

var (
	ErrAPIURLInvalid   = errors.New("API_URL must be an absolute URL")
	ErrDriverInvalid   = errors.New("DB_DRIVER must be one of sqlite, mysql")
	ErrUploadSizeLimit = errors.New("MAX_UPLOAD_SIZE must be greater than zero")
)

// Config is the configuration of the backend.
type Config struct {
	APIURL           string   `mapstructure:"api_url"`
	Port             int      `mapstructure:"port"`
	GinMode          string   `mapstructure:"gin_mode"`
	LogFormat        string   `mapstructure:"log_format"`
	DataDir          string   `mapstructure:"data_dir"`
	DBDriver         string   `mapstructure:"db_driver"`
	DBDSN            string   `mapstructure:"db_dsn"`
	UploadDir        string   `mapstructure:"upload_dir"`
	QRDir            string   `mapstructure:"qr_dir"`
	MaxUploadSize    int64    `mapstructure:"max_upload_size"`
	EvidencePatterns []string `mapstructure:"evidence_patterns"`
	QRSize           int      `mapstructure:"qr_size"`
	Timezone         string   `mapstructure:"timezone"`
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	EnablePprof      bool     `mapstructure:"enable_pprof"`

	// Location is the parsed Timezone
	Location *time.Location `mapstructure:"-"`

	// BaseURL is the parsed APIURL
	BaseURL *url.URL `mapstructure:"-"`
}

// defaults for all settings. Every key needs a default so that
// viper picks up the corresponding environment variable.
var defaults = map[string]any{
	"api_url":            "http://localhost:8080",
	"port":               8080,
	"gin_mode":           "release",
	"log_format":         "",
	"data_dir":           "data",
	"db_driver":          models.DriverSQLite,
	"db_dsn":             "",
	"upload_dir":         "",
	"qr_dir":             "",
	"max_upload_size":    10 << 20,
	"evidence_patterns":  []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.heic"},
	"qr_size":            256,
	"timezone":           "Asia/Bangkok",
	"cors_allow_origins": []string{},
	"enable_pprof":       false,
}

// Load reads the configuration from the environment. If CONFIG_FILE is set,
// the file is read first and environment variables override its values.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.BindEnv("config_file"); err != nil {
		return Config{}, err
	}

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read configuration file %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("could not parse configuration: %w", err)
	}

	// Lists from the environment are space separated
	c.EvidencePatterns = fields(c.EvidencePatterns)
	c.CORSAllowOrigins = fields(c.CORSAllowOrigins)

	return c, c.complete()
}

// complete validates the configuration and fills in derived values.
func (c *Config) complete() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: %q", ErrAPIURLInvalid, c.APIURL)
	}
	c.BaseURL = u

	c.DBDriver = strings.ToLower(c.DBDriver)
	if !slices.Contains([]string{models.DriverSQLite, models.DriverMySQL}, c.DBDriver) {
		return fmt.Errorf("%w, got %q", ErrDriverInvalid, c.DBDriver)
	}

	if c.MaxUploadSize <= 0 {
		return ErrUploadSizeLimit
	}

	c.Location, err = time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.DBDSN == "" && c.DBDriver == models.DriverSQLite {
		c.DBDSN = filepath.Join(c.DataDir, "thaishare.db")
	}

	if c.UploadDir == "" {
		c.UploadDir = filepath.Join(c.DataDir, "uploads")
	}

	if c.QRDir == "" {
		c.QRDir = filepath.Join(c.DataDir, "qrcodes")
	}

	return nil
}

// fields splits all entries on whitespace.
func fields(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.Fields(s)...)
	}

	return out
}
