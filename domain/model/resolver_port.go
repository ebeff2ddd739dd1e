package model

import "context"

// ResolverPort is the domain port for live DNS lookups. Lookups never return
// errors; failures are reported through the tri-state Lookup.
type ResolverPort interface {
	// A returns the A records of name.
	A(ctx context.Context, name string) Lookup[string]
	// MX returns MX exchanges in preference order, each resolved to its first A address.
	// Exchanges without an A address are dropped.
	MX(ctx context.Context, domain string) Lookup[HostAddr]
	// NS returns name servers sorted by host name, each resolved to its first A address.
	NS(ctx context.Context, domain string) Lookup[HostAddr]
	// TXT returns TXT strings, multi-string records joined.
	TXT(ctx context.Context, domain string) Lookup[string]
}

// ResolveAll takes the full snapshot of a domain.
func ResolveAll(ctx context.Context, r ResolverPort, domain string) DomainRecordSet {
	return DomainRecordSet{
		Domain: domain,
		A:      r.A(ctx, domain),
		MX:     r.MX(ctx, domain),
		NS:     r.NS(ctx, domain),
		TXT:    r.TXT(ctx, domain),
	}
}
