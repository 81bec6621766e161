package config

import "testing"

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateBonusRateBounds(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/pieceledger"
	cfg.BonusRatePercent = 120
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bonus rate above 100")
	}

	cfg.BonusRatePercent = 16.66
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.BonusRatePercent != 16.66 {
		t.Fatalf("expected default bonus rate 16.66, got %v", cfg.BonusRatePercent)
	}
	if cfg.Addr == "" {
		t.Fatal("expected default listen address")
	}
}
