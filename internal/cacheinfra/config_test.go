package cacheinfra

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeDeep {
		t.Errorf("expected Mode to be deep, got %s", cfg.Mode)
	}

	if cfg.Expiration != 0 {
		t.Errorf("expected Expiration to be 0, got %v", cfg.Expiration)
	}

	if cfg.Hashed {
		t.Error("expected Hashed to be false")
	}

	if cfg.Clock == nil {
		t.Error("expected a default clock")
	}
}

func TestConfig_Validate(t *testing.T) {
	equal := reflect.DeepEqual
	canonical := func(v any) string { return "" }

	tests := []struct {
		name      string
		cfg       Config
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid deep config",
			cfg:       Config{Mode: ModeDeep, Equal: equal},
			wantError: false,
		},
		{
			name:      "valid shallow config without predicate",
			cfg:       Config{Mode: ModeShallow},
			wantError: false,
		},
		{
			name:      "valid hashed config",
			cfg:       Config{Mode: ModeDeep, Equal: equal, Hashed: true, Canonical: canonical},
			wantError: false,
		},
		{
			name:      "unknown mode",
			cfg:       Config{Mode: Mode(7), Equal: equal},
			wantError: true,
			errorMsg:  "config error in field Mode: must be deep or shallow",
		},
		{
			name:      "negative expiration",
			cfg:       Config{Mode: ModeShallow, Expiration: -time.Second},
			wantError: true,
			errorMsg:  "config error in field Expiration: must be non-negative",
		},
		{
			name:      "deep without predicate",
			cfg:       DefaultConfig(),
			wantError: true,
			errorMsg:  "config error in field Equal: is required for deep equality stores",
		},
		{
			name:      "hashed shallow",
			cfg:       Config{Mode: ModeShallow, Hashed: true, Canonical: canonical},
			wantError: true,
			errorMsg:  "config error in field Hashed: only applies to deep equality stores",
		},
		{
			name:      "hashed without canonical",
			cfg:       Config{Mode: ModeDeep, Equal: equal, Hashed: true},
			wantError: true,
			errorMsg:  "config error in field Canonical: is required for hashed stores",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("expected validation error but got none")
				}
				if err.Error() != tt.errorMsg {
					t.Errorf("expected error message %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("expected no validation error but got: %v", err)
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "TestField",
		Message: "test message",
	}

	expected := "config error in field TestField: test message"
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}

func TestNewStore(t *testing.T) {
	canonical := func(v any) string { return "k" }

	tests := []struct {
		name     string
		cfg      Config
		wantType string
	}{
		{
			name:     "shallow",
			cfg:      Config{Mode: ModeShallow},
			wantType: "*cacheinfra.shallowStore",
		},
		{
			name:     "deep",
			cfg:      Config{Mode: ModeDeep, Equal: reflect.DeepEqual},
			wantType: "*cacheinfra.deepStore",
		},
		{
			name:     "hashed",
			cfg:      Config{Mode: ModeDeep, Equal: reflect.DeepEqual, Hashed: true, Canonical: canonical},
			wantType: "*cacheinfra.hashedStore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.cfg)
			if err != nil {
				t.Fatalf("expected no error but got: %v", err)
			}
			if got := reflect.TypeOf(store).String(); got != tt.wantType {
				t.Errorf("expected store type %s, got %s", tt.wantType, got)
			}
		})
	}

	t.Run("invalid config", func(t *testing.T) {
		store, err := NewStore(Config{Mode: ModeShallow, Expiration: -1})
		if err == nil {
			t.Fatal("expected error but got none")
		}
		if store != nil {
			t.Error("expected store to be nil when error occurs")
		}
		if !strings.Contains(err.Error(), "Expiration") {
			t.Errorf("expected error to name the Expiration field, got %q", err.Error())
		}
	})
}

func TestModeAndOutcomeStrings(t *testing.T) {
	if ModeDeep.String() != "deep" || ModeShallow.String() != "shallow" || Mode(9).String() != "unknown" {
		t.Error("unexpected mode names")
	}
	if Hit.String() != "hit" || Miss.String() != "miss" || Stale.String() != "stale" {
		t.Error("unexpected outcome names")
	}
}
