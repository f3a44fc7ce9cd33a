package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"No", false},
		{"maybe", true},
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestMillisOrDuration(t *testing.T) {
	cases := []struct {
		val  string
		want time.Duration
	}{
		{"", 3 * time.Second},
		{"10000", 10 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"0", 3 * time.Second},
		{"-5", 3 * time.Second},
		{"soon", 3 * time.Second},
	}
	for _, tc := range cases {
		t.Setenv("MS_TEST", tc.val)
		if got := millisOrDuration("MS_TEST", 3*time.Second); got != tc.want {
			t.Fatalf("millisOrDuration(%q) = %s, want %s", tc.val, got, tc.want)
		}
	}
}

func TestIntEnvOrDefaultRejectsNonPositive(t *testing.T) {
	t.Setenv("INT_TEST", "-1")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default on negative value, got %d", got)
	}
	t.Setenv("INT_TEST", "12")
	if got := intEnvOrDefault("INT_TEST", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}
