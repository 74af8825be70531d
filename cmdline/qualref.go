package cmdline

import (
	"strconv"
	"strings"
)

// QualRef is a qualifier token decomposed into its parts.
type QualRef struct {
	// Raw is the token as given.
	Raw string
	// Name is the lower-case base name, without instance number or master.
	Name string
	// Negated is set by the matcher when Name resolved through its "no"
	// prefix.
	Negated bool
	// Instance is the trailing parameter number, or 0.
	Instance int
	// Master names the master declaration after '_', or is empty.
	Master string
	// Value is the text after '=' when HasValue is set.
	Value    string
	HasValue bool
	// Doubled records a "--" marker.
	Doubled bool
}

// ParseQualRef decomposes tok. It reports false for tokens that are not
// qualifiers: those without a leading '-', a lone "-" or "--", and negative
// numbers.
func ParseQualRef(tok string) (QualRef, bool) {
	ref := QualRef{Raw: tok}

	body, ok := strings.CutPrefix(tok, "-")
	if !ok || body == "" {
		return ref, false
	}

	if _, err := strconv.ParseFloat(body, 64); err == nil {
		return ref, false
	}

	if rest, ok := strings.CutPrefix(body, "-"); ok {
		if rest == "" {
			return ref, false
		}

		body, ref.Doubled = rest, true
	}

	if name, value, ok := strings.Cut(body, "="); ok {
		body, ref.Value, ref.HasValue = name, value, true
	}

	body = strings.ToLower(body)

	if i := strings.LastIndexByte(body, '_'); i > 0 && i < len(body)-1 {
		body, ref.Master = body[:i], body[i+1:]
	}

	end := len(body)
	for end > 0 && body[end-1] >= '0' && body[end-1] <= '9' {
		end--
	}

	if end > 0 && end < len(body) {
		n, err := strconv.Atoi(body[end:])
		if err == nil && n > 0 {
			body, ref.Instance = body[:end], n
		}
	}

	ref.Name = body

	return ref, ref.Name != ""
}

// Full returns the name with its instance number, as typed.
func (r QualRef) Full() string {
	if r.Instance > 0 {
		return r.Name + strconv.Itoa(r.Instance)
	}

	return r.Name
}

// Unnegated returns r without a leading "no", and whether there was one.
func (r QualRef) Unnegated() (QualRef, bool) {
	base, ok := strings.CutPrefix(r.Name, "no")
	if !ok || base == "" {
		return r, false
	}

	r.Name, r.Negated = base, true

	return r, true
}
