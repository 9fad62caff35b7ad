package config

import "testing"

func TestLoadReportsMissingRequiredVars(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg, missing := Load()
	want := map[string]bool{"DB_HOST": true, "DB_USER": true, "DB_NAME": true, "JWT_SECRET": true}
	for _, m := range missing {
		if !want[m] {
			t.Errorf("unexpected missing var %q", m)
		}
		delete(want, m)
	}
	for m := range want {
		t.Errorf("%q not reported as missing", m)
	}

	if !cfg.IsDev() {
		t.Error("default environment should be development")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q", cfg.Server.Port)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{
		Host: "db.local", Port: "5433", User: "edims", Password: "pw", Name: "edims",
	}}
	want := "host=db.local user=edims password=pw dbname=edims port=5433 sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
