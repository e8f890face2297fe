package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain integer", "60000", "60000", true},
		{"comma grouped decimal", "12,500.50", "12500.5", true},
		{"currency symbol", "₹45,000 per month", "45000", true},
		{"dollar prefix", "about $1,200.75", "1200.75", true},
		{"first number wins", "between 10 and 20", "10", true},
		{"surrounded by words", "I earn 75,000 after tax", "75000", true},
		{"zero", "0", "0", true},
		{"trailing dot is not a fraction", "12.", "12", true},
		{"only commas skipped", "well, 42", "42", true},
		{"no digits", "budget", "", false},
		{"empty", "", "", false},
		{"only punctuation", ",,, ...", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseNumber(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseNumber_NegativeSignIgnored(t *testing.T) {
	got, ok := ParseNumber("-5")
	if !ok {
		t.Fatal("expected a number")
	}
	if !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected 5, got %s", got)
	}
}

func TestParseSigned(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"-3", "-3", true},
		{"in -12 months", "-12", true},
		{"12", "12", true},
		{"3-4 months", "3", true},
		{"- 5", "5", true},
		{"never", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSigned(tt.input)
		if ok != tt.ok {
			t.Fatalf("ParseSigned(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
		if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseSigned(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
