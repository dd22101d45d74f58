package config

import "testing"

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{"unset", "", 20, 20},
		{"valid", "5", 20, 5},
		{"garbage", "abc", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_ENV_INT", tt.value)
			}
			if got := getEnvInt("TEST_ENV_INT", tt.def); got != tt.expected {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.value, tt.def, got, tt.expected)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "true")
	if !getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool(true) = false")
	}
	t.Setenv("TEST_ENV_BOOL", "nope")
	if getEnvBool("TEST_ENV_BOOL", false) {
		t.Error("getEnvBool(garbage) should fall back to default")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"*", []string{"*"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{"a, b , c", []string{"a", "b", "c"}},
		{"a,,c,", []string{"a", "c"}},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}
