package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "qna-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "qna-auth")
	}
	if cfg.JWTAudience != "qna-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "qna-api")
	}
	if cfg.SessionTTLRaw != "8h" {
		t.Errorf("SessionTTLRaw = %q, want %q", cfg.SessionTTLRaw, "8h")
	}
	if cfg.PBKDF2Iterations != 120000 {
		t.Errorf("PBKDF2Iterations = %d, want 120000", cfg.PBKDF2Iterations)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("SESSION_TTL", "30m")
	os.Setenv("PBKDF2_ITERATIONS", "200000")
	os.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.SessionTTL() != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL())
	}
	if cfg.PBKDF2Iterations != 200000 {
		t.Errorf("PBKDF2Iterations = %d, want 200000", cfg.PBKDF2Iterations)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
}

func TestLoad_InvalidIterations(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("PBKDF2_ITERATIONS", "10")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted PBKDF2_ITERATIONS below minimum")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted unknown LOG_FORMAT")
	}
}

func TestSessionTTL_Fallback(t *testing.T) {
	cfg := &Config{SessionTTLRaw: "not-a-duration"}
	if cfg.SessionTTL() != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want 8h", cfg.SessionTTL())
	}
	cfg = &Config{SessionTTLRaw: "-1h"}
	if cfg.SessionTTL() != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want 8h for negative duration", cfg.SessionTTL())
	}
}
