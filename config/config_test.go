package config

import (
	"reflect"
	"testing"
)

func TestGetString(t *testing.T) {
	cfg := map[string]string{"PORT": "8080", "EMPTY": ""}

	if got := GetString(cfg, "PORT", "3000"); got != "8080" {
		t.Errorf("GetString(PORT) = %q, want %q", got, "8080")
	}
	if got := GetString(cfg, "EMPTY", "fallback"); got != "" {
		t.Errorf("GetString(EMPTY) = %q, want empty string", got)
	}
	if got := GetString(cfg, "MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString(MISSING) = %q, want %q", got, "fallback")
	}
	if got := GetString(nil, "PORT", "fallback"); got != "fallback" {
		t.Errorf("GetString(nil map) = %q, want %q", got, "fallback")
	}
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"PORT": "8080", "BAD": "eight"}

	if got := GetInt(cfg, "PORT", 3000); got != 8080 {
		t.Errorf("GetInt(PORT) = %d, want 8080", got)
	}
	if got := GetInt(cfg, "BAD", 3000); got != 3000 {
		t.Errorf("GetInt(BAD) = %d, want default 3000", got)
	}
	if got := GetInt(cfg, "MISSING", 3000); got != 3000 {
		t.Errorf("GetInt(MISSING) = %d, want default 3000", got)
	}
}

func TestGetBool(t *testing.T) {
	cfg := map[string]string{"ON": "true", "OFF": "false", "BAD": "yep"}

	if !GetBool(cfg, "ON", false) {
		t.Error("GetBool(ON) = false, want true")
	}
	if GetBool(cfg, "OFF", true) {
		t.Error("GetBool(OFF) = true, want false")
	}
	if !GetBool(cfg, "BAD", true) {
		t.Error("GetBool(BAD) should fall back to default true")
	}
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"single", "https://app.example.com", []string{"https://app.example.com"}},
		{"multiple", "http://localhost:5173,https://app.example.com", []string{"http://localhost:5173", "https://app.example.com"}},
		{"spaces and blanks", " a , ,b, ", []string{"a", "b"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := map[string]string{}
			if tt.value != "" {
				cfg["ACCEPTED_ORIGINS"] = tt.value
			}
			got := GetStringSlice(cfg, "ACCEPTED_ORIGINS")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetStringSlice(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
