package mocks

import (
	"context"

	"github.com/hostmaint/hostmaint/domain/model"
)

// Resolver serves fixed record sets. Unknown domains resolve to nothing with
// a failed NS lookup.
type Resolver struct {
	Records map[string]model.DomainRecordSet
	// Queries counts lookups per domain.
	Queries map[string]int
}

var _ model.ResolverPort = (*Resolver)(nil)

// NewResolver builds a resolver over the given record sets.
func NewResolver(sets ...model.DomainRecordSet) *Resolver {
	r := &Resolver{Records: map[string]model.DomainRecordSet{}, Queries: map[string]int{}}
	for _, rs := range sets {
		r.Records[rs.Domain] = rs
	}
	return r
}

func (r *Resolver) get(name string) (model.DomainRecordSet, bool) {
	if r.Queries == nil {
		r.Queries = map[string]int{}
	}
	r.Queries[name]++
	rs, ok := r.Records[name]
	return rs, ok
}

func (r *Resolver) A(_ context.Context, name string) model.Lookup[string] {
	if rs, ok := r.get(name); ok {
		return rs.A
	}
	return model.Failed[string](nil)
}

func (r *Resolver) MX(_ context.Context, domain string) model.Lookup[model.HostAddr] {
	if rs, ok := r.get(domain); ok {
		return rs.MX
	}
	return model.Failed[model.HostAddr](nil)
}

func (r *Resolver) NS(_ context.Context, domain string) model.Lookup[model.HostAddr] {
	if rs, ok := r.get(domain); ok {
		return rs.NS
	}
	return model.Failed[model.HostAddr](nil)
}

func (r *Resolver) TXT(_ context.Context, domain string) model.Lookup[string] {
	if rs, ok := r.get(domain); ok {
		return rs.TXT
	}
	return model.Failed[string](nil)
}

// MXHere returns a record set whose single MX and A point at ip.
func MXHere(domain, ip string, ns ...model.HostAddr) model.DomainRecordSet {
	return model.DomainRecordSet{
		Domain: domain,
		A:      model.Found(ip),
		MX:     model.Found(model.HostAddr{Host: "mail." + domain, IP: ip}),
		NS:     model.Found(ns...),
		TXT:    model.NoRecords[string](),
	}
}
