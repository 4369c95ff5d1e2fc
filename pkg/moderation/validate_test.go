package moderation

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "plain body", raw: "hello", want: "hello"},
		{name: "trims surrounding whitespace", raw: "  hi there \n", want: "hi there"},
		{name: "empty", raw: "", wantErr: ErrEmptyBody},
		{name: "whitespace only", raw: " \t\n ", wantErr: ErrEmptyBody},
		{name: "exactly max length", raw: strings.Repeat("a", 500), want: strings.Repeat("a", 500)},
		{name: "one over max length", raw: strings.Repeat("a", 501), wantErr: ErrBodyTooLong},
		{name: "padding does not count toward length", raw: "  " + strings.Repeat("a", 500) + "  ", want: strings.Repeat("a", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			if err != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate() = %q, want %q", got, tt.want)
			}
		})
	}
}
