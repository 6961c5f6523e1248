package config

import (
	"testing"
)

func setSMTPEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "forms@example.com")
	t.Setenv("SMTP_PSWD", "secret")
	t.Setenv("RECIPIENT_EMAIL", "clinic@example.com")
}

func TestLoad(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("FRONTEND_ORIGIN", "http://localhost:3000")
	t.Setenv("ASSETS_DIR", "/srv/consent/assets")
	t.Setenv("CLINIC_TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Unexpected port: %s", cfg.Port)
	}
	if cfg.FrontendOrigin != "http://localhost:3000" {
		t.Errorf("Unexpected frontend origin: %s", cfg.FrontendOrigin)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("Unexpected SMTP port: %d", cfg.SMTP.Port)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Unexpected timezone: %s", cfg.Timezone)
	}
	if cfg.FormsDir() != "/srv/consent/assets/forms" {
		t.Errorf("Unexpected forms dir: %s", cfg.FormsDir())
	}
	if cfg.FontConfig() != "/srv/consent/assets/fonts/font_config.json" {
		t.Errorf("Unexpected font config path: %s", cfg.FontConfig())
	}
}

func TestLoad_Defaults(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CLINIC_TIMEZONE", "")
	t.Setenv("ASSETS_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Expected default port %s, got %s", DefaultPort, cfg.Port)
	}
	if cfg.Timezone.String() != DefaultTimezone {
		t.Errorf("Expected default timezone, got %s", cfg.Timezone)
	}
	if cfg.AssetsDir != DefaultAssets {
		t.Errorf("Expected default assets dir, got %s", cfg.AssetsDir)
	}
}

func TestLoad_MissingSMTP(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("SMTP_HOST", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing SMTP_HOST")
	}
}

func TestLoad_BadSMTPPort(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("SMTP_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid SMTP_PORT")
	}
}

func TestLoad_BadTimezone(t *testing.T) {
	setSMTPEnv(t)
	t.Setenv("CLINIC_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown timezone")
	}
}
