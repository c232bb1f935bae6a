package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WELCOME_BONUS_CREDITS", "")
	t.Setenv("PAYMENT_SIMULATED_DELAY", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()

	if cfg.WelcomeBonusCredits != 5 {
		t.Fatalf("expected welcome bonus 5, got %d", cfg.WelcomeBonusCredits)
	}
	if cfg.PaymentSimulatedDelay != 2*time.Second {
		t.Fatalf("expected 2s payment delay, got %s", cfg.PaymentSimulatedDelay)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %#v", cfg.AllowedOrigins)
	}
}

func TestUseR2RequiresCredentials(t *testing.T) {
	cfg := &Config{R2AccountID: "acc"}
	if cfg.UseR2() {
		t.Fatal("expected local storage without R2 keys")
	}
	cfg.R2AccessKeyID, cfg.R2AccessKeySecret = "id", "secret"
	if !cfg.UseR2() {
		t.Fatal("expected R2 storage with full credentials")
	}
}
