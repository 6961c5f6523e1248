// Package config loads process configuration from the environment
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Defaults keep a development checkout runnable without a .env file
const (
	DefaultPort     = "3030"
	DefaultTimezone = "Australia/Sydney"
	DefaultAssets   = "assets"
)

// SMTP holds the mail relay settings and the clinic recipient address
type SMTP struct {
	Host        string
	Port        int
	User        string
	Password    string
	ClinicEmail string
}

// Config is the process-wide configuration, constructed once at startup and
// passed to the components that need it. Core packages never read the
// environment themselves.
type Config struct {
	Port           string
	FrontendOrigin string
	AssetsDir      string
	Timezone       *time.Location
	SMTP           SMTP
}

// Load reads configuration from the environment, after loading .env and
// .env.local if present. SMTP settings are required so a misconfigured
// deployment fails at startup rather than on the first submission.
func Load() (*Config, error) {
	// Values already in the environment win over file contents
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{
		Port:           envOr("SERVER_PORT", DefaultPort),
		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
		AssetsDir:      envOr("ASSETS_DIR", DefaultAssets),
	}

	tzName := envOr("CLINIC_TIMEZONE", DefaultTimezone)
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	smtp, err := loadSMTP()
	if err != nil {
		return nil, err
	}
	cfg.SMTP = smtp

	return cfg, nil
}

func loadSMTP() (SMTP, error) {
	smtp := SMTP{
		Host:        os.Getenv("SMTP_HOST"),
		User:        os.Getenv("SMTP_USER"),
		Password:    os.Getenv("SMTP_PSWD"),
		ClinicEmail: os.Getenv("RECIPIENT_EMAIL"),
	}

	for name, value := range map[string]string{
		"SMTP_HOST":       smtp.Host,
		"SMTP_USER":       smtp.User,
		"SMTP_PSWD":       smtp.Password,
		"RECIPIENT_EMAIL": smtp.ClinicEmail,
	} {
		if value == "" {
			return SMTP{}, fmt.Errorf("%s is required", name)
		}
	}

	portStr := envOr("SMTP_PORT", "587")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return SMTP{}, fmt.Errorf("invalid SMTP_PORT %q: %w", portStr, err)
	}
	smtp.Port = port

	return smtp, nil
}

// FormsDir returns the directory holding per-form-type templates
func (c *Config) FormsDir() string {
	return filepath.Join(c.AssetsDir, "forms")
}

// FontsDir returns the directory holding font files and the font config
func (c *Config) FontsDir() string {
	return filepath.Join(c.AssetsDir, "fonts")
}

// FontConfig returns the path of the role-to-font mapping file
func (c *Config) FontConfig() string {
	return filepath.Join(c.FontsDir(), "font_config.json")
}

// LogoPath returns the path of the clinic logo image
func (c *Config) LogoPath() string {
	return filepath.Join(c.AssetsDir, "logo", "logo.png")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
