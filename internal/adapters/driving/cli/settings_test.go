package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty key",
			input:    "",
			expected: "(not set)",
		},
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty input returns default", input: "", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Valid choice within range", input: "1", maxVal: 3, defaultVal: 2, expected: 1},
		{name: "Maximum value is valid", input: "3", maxVal: 3, defaultVal: 2, expected: 3},
		{name: "Choice above maximum returns default", input: "4", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Choice below minimum returns default", input: "0", maxVal: 3, defaultVal: 2, expected: 2},
		{name: "Invalid input returns default", input: "abc", maxVal: 3, defaultVal: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal int
		expected   int
	}{
		{name: "Empty input returns default", input: "", defaultVal: 1000, expected: 1000},
		{name: "Valid value", input: "500", defaultVal: 1000, expected: 500},
		{name: "Zero returns default", input: "0", defaultVal: 1000, expected: 1000},
		{name: "Negative returns default", input: "-5", defaultVal: 1000, expected: 1000},
		{name: "Invalid input returns default", input: "many", defaultVal: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseInt(tt.input, tt.defaultVal))
		})
	}
}

func TestDefaultString(t *testing.T) {
	assert.Equal(t, "fallback", defaultString("", "fallback"))
	assert.Equal(t, "given", defaultString("given", "fallback"))
}
