package moderation

import (
	"strings"
	"testing"
)

func TestMask(t *testing.T) {
	m := NewMasker([]string{"scam", "fake"}, "****")

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "clean body untouched", body: "great product!", want: "great product!"},
		{name: "single term", body: "this is a scam", want: "this is a ****"},
		{name: "case insensitive", body: "SCAM alert", want: "**** alert"},
		{name: "mixed case inside word", body: "ScAm and FaKe", want: "**** and ****"},
		{name: "repeated occurrences", body: "scam scam scam", want: "**** **** ****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Mask(tt.body); got != tt.want {
				t.Errorf("Mask() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskDeterministic(t *testing.T) {
	m := NewMasker([]string{"spam"}, "####")
	body := "Spam spam SPAM"

	first := m.Mask(body)
	for i := 0; i < 10; i++ {
		if got := m.Mask(body); got != first {
			t.Fatalf("Mask() is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestMaskDoesNotAffectValidation(t *testing.T) {
	// Validation runs on the pre-mask trimmed body; a term near the length
	// limit being replaced by a longer mask must not change acceptance.
	m := NewMasker([]string{"no"}, "**********")
	body := strings.Repeat("x", 498) + "no" // exactly 500 pre-mask

	trimmed, err := Validate(body)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	masked := m.Mask(trimmed)
	if len([]rune(masked)) <= MaxBodyLength {
		t.Fatalf("expected masked body to exceed %d to prove ordering matters", MaxBodyLength)
	}
}

func TestNewMaskerNormalizesTerms(t *testing.T) {
	m := NewMasker([]string{"  Rude ", "", "   "}, "*")
	if got := m.Mask("rude comment"); got != "* comment" {
		t.Errorf("Mask() = %q, want %q", got, "* comment")
	}
}
