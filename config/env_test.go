package config

import (
	"testing"
	"time"
)

func TestGetEnvAsString(t *testing.T) {
	if got := getEnvAsString("TEST_UNSET_STRING", "fallback"); got != "fallback" {
		t.Errorf("unset: got %q", got)
	}
	t.Setenv("TEST_SET_STRING", "value")
	if got := getEnvAsString("TEST_SET_STRING", "fallback"); got != "value" {
		t.Errorf("set: got %q", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"unset uses default", "", false, 42},
		{"parses integer", "7", true, 7},
		{"garbage uses default", "seven", true, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_INT", tt.value)
			}
			if got := getEnvAsInt("TEST_INT", 42); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{"unset uses default", "", false, 15 * time.Second},
		{"duration syntax", "5m", true, 5 * time.Minute},
		{"bare integer means seconds", "30", true, 30 * time.Second},
		{"garbage uses default", "soon", true, 15 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := getEnvAsTimeDuration("TEST_DURATION", 15*time.Second); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "false")
	if got := getEnvAsBool("TEST_BOOL", true); got {
		t.Error("expected explicit false to win over default")
	}
	t.Setenv("TEST_BOOL", "not-a-bool")
	if got := getEnvAsBool("TEST_BOOL", true); !got {
		t.Error("expected garbage to fall back to default")
	}
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", "a, b ,,c")
	got := getEnvAsSlice("TEST_SLICE", nil)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
