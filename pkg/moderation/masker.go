package moderation

import "strings"

// Masker replaces configured banned terms with a fixed mask string. Matching
// is case-insensitive; the term list and mask come from configuration so the
// banned list can be updated without touching gateway code.
type Masker struct {
	terms []string
	mask  string
}

func NewMasker(terms []string, mask string) *Masker {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return &Masker{terms: cleaned, mask: mask}
}

func (m *Masker) Mask(body string) string {
	if len(m.terms) == 0 {
		return body
	}
	for _, term := range m.terms {
		body = maskTerm(body, term, m.mask)
	}
	return body
}

func maskTerm(body, term, mask string) string {
	lower := strings.ToLower(body)
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lower[start:], term)
		if idx < 0 {
			b.WriteString(body[start:])
			return b.String()
		}
		idx += start
		b.WriteString(body[start:idx])
		b.WriteString(mask)
		start = idx + len(term)
	}
}
