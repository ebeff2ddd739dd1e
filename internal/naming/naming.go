// Package naming provides domain-name helpers shared by the classifier, the
// termination policy and the zone fix planner: normalization, apex derivation
// and ignore-list matching. Keeping the logic here keeps every task using the
// same notion of "apex".
package naming

import (
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ApexMode selects how the apex of a domain is derived.
type ApexMode string

const (
	// ApexLabels keeps the last two labels (example.co.uk -> co.uk).
	ApexLabels ApexMode = "labels"
	// ApexPublicSuffix uses the public suffix list (example.co.uk -> example.co.uk).
	ApexPublicSuffix ApexMode = "publicsuffix"
)

var lookupProfile = idna.New(idna.MapForLookup(), idna.Transitional(false))

// Normalize lowercases a domain, trims whitespace and the trailing dot and
// converts IDN labels to their ASCII form. Names that fail IDNA mapping are
// returned lowercased and trimmed.
func Normalize(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimRight(d, ".")
	if d == "" {
		return ""
	}
	if ascii, err := lookupProfile.ToASCII(d); err == nil {
		d = ascii
	}
	return strings.ToLower(d)
}

// Apex returns the last two labels of domain.
func Apex(domain string) string {
	return ApexLabels.Apex(domain)
}

// Apex returns the apex of domain according to the mode. Unknown modes and
// public suffix lookup failures fall back to the last two labels.
func (m ApexMode) Apex(domain string) string {
	d := Normalize(domain)
	if m == ApexPublicSuffix {
		if etld1, err := publicsuffix.EffectiveTLDPlusOne(d); err == nil {
			return etld1
		}
	}
	labels := strings.Split(d, ".")
	if len(labels) <= 2 {
		return d
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// ApexSet is a set of apex domains used for ignore lists.
type ApexSet struct {
	mode  ApexMode
	items map[string]struct{}
}

// NewApexSet builds a set from configured entries. Entries are normalized and
// empty strings are dropped.
func NewApexSet(mode ApexMode, entries ...string) ApexSet {
	s := ApexSet{mode: mode, items: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if n := Normalize(e); n != "" {
			s.items[n] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the apex of domain is in the set.
func (s ApexSet) Contains(domain string) bool {
	if len(s.items) == 0 {
		return false
	}
	_, ok := s.items[s.mode.Apex(domain)]
	return ok
}

// Len returns the number of entries.
func (s ApexSet) Len() int { return len(s.items) }

// SameName reports whether two host names are equal after normalization.
func SameName(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// MailHost returns mail.<domain>.
func MailHost(domain string) string {
	return "mail." + Normalize(domain)
}
