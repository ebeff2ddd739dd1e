package model

import (
	"fmt"
	"strings"
)

// LookupState distinguishes resolver failure from an answer with no records.
type LookupState int

const (
	// LookupAbsent means the query produced no usable answer (NXDOMAIN, SERVFAIL, timeout).
	LookupAbsent LookupState = iota
	// LookupEmpty means the resolver answered but returned no records of the type.
	LookupEmpty
	// LookupPresent means at least one record was returned.
	LookupPresent
)

func (s LookupState) String() string {
	switch s {
	case LookupEmpty:
		return "empty"
	case LookupPresent:
		return "present"
	default:
		return "absent"
	}
}

// HostAddr pairs a referenced host (MX exchange, NS server) with its resolved A address.
type HostAddr struct {
	Host string `json:"host"`
	IP   string `json:"ip"`
}

func (h HostAddr) String() string { return h.Host + " (" + h.IP + ")" }

// Lookup is the tri-state result of one record-type query.
type Lookup[T any] struct {
	State  LookupState `json:"state"`
	Values []T         `json:"values,omitempty"`
	Err    string      `json:"error,omitempty"`
}

// Found returns a present lookup, or an empty one when no values are given.
func Found[T any](values ...T) Lookup[T] {
	if len(values) == 0 {
		return Lookup[T]{State: LookupEmpty}
	}
	return Lookup[T]{State: LookupPresent, Values: values}
}

// NoRecords returns an answered-but-empty lookup.
func NoRecords[T any]() Lookup[T] { return Lookup[T]{State: LookupEmpty} }

// Failed returns an absent lookup carrying the failure text.
func Failed[T any](err error) Lookup[T] {
	l := Lookup[T]{State: LookupAbsent}
	if err != nil {
		l.Err = err.Error()
	}
	return l
}

// Present reports whether the lookup holds at least one value.
func (l Lookup[T]) Present() bool { return l.State == LookupPresent && len(l.Values) > 0 }

func (l Lookup[T]) String() string {
	switch {
	case l.Present():
		parts := make([]string, 0, len(l.Values))
		for _, v := range l.Values {
			parts = append(parts, fmt.Sprint(v))
		}
		return strings.Join(parts, ", ")
	case l.State == LookupEmpty:
		return "none"
	default:
		if l.Err != "" {
			return "unresolved: " + l.Err
		}
		return "unresolved"
	}
}

// DomainRecordSet is the per-domain DNS snapshot taken once per run.
// NS values are sorted by host name.
type DomainRecordSet struct {
	Domain string           `json:"domain"`
	A      Lookup[string]   `json:"a"`
	MX     Lookup[HostAddr] `json:"mx"`
	NS     Lookup[HostAddr] `json:"ns"`
	TXT    Lookup[string]   `json:"txt"`
}

// MXIPs returns the resolved addresses of the MX targets in preference order.
func (r DomainRecordSet) MXIPs() []string {
	out := make([]string, 0, len(r.MX.Values))
	for _, mx := range r.MX.Values {
		out = append(out, mx.IP)
	}
	return out
}

// Summary renders A, MX and NS on indented lines for reports.
func (r DomainRecordSet) Summary(indent string) string {
	return fmt.Sprintf("%sA: %s\n%sMX: %s\n%sNS: %s", indent, r.A, indent, r.MX, indent, r.NS)
}
