package config

import "testing"

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("default port = %q, want 3001", cfg.Port)
	}
	if cfg.JWTExpirationMinutes != 15 {
		t.Errorf("default access ttl = %d, want 15", cfg.JWTExpirationMinutes)
	}
	if cfg.JWTRefreshExpirationHours != 168 {
		t.Errorf("default refresh ttl = %d, want 168", cfg.JWTRefreshExpirationHours)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("default admin username = %q, want admin", cfg.AdminUsername)
	}
	if cfg.Database.DSN == "" {
		t.Error("DSN must be built from the database settings")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "override-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "hospital_prod")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTSecret != "override-secret" {
		t.Errorf("jwt secret not overridden")
	}
	want := "root:@tcp(db.internal:3306)/hospital_prod?charset=utf8mb4&parseTime=True&loc=Local"
	if cfg.Database.DSN != want {
		t.Errorf("DSN = %q, want %q", cfg.Database.DSN, want)
	}
}

func TestLoadConfig_BadNumbersRejected(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Error("non-numeric JWT_EXPIRATION_MINUTES must fail")
	}
}
