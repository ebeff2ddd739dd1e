// Package resolver implements model.ResolverPort with live queries through
// github.com/miekg/dns. Every lookup goes to the network; nothing is cached
// across calls.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
)

const (
	DefaultTimeout    = 5 * time.Second
	DefaultResolvConf = "/etc/resolv.conf"
)

// Options configures a Resolver.
type Options struct {
	// Servers are host or host:port addresses queried in order. When empty
	// the servers of ResolvConf are used.
	Servers    []string
	ResolvConf string
	Timeout    time.Duration
}

// Resolver queries recursive servers over UDP, retrying over TCP on truncation.
type Resolver struct {
	servers []string
	udp     *dns.Client
	tcp     *dns.Client
}

var _ model.ResolverPort = (*Resolver)(nil)

// New creates a resolver from opts.
func New(opts Options) (*Resolver, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	servers := make([]string, 0, len(opts.Servers))
	for _, s := range opts.Servers {
		servers = append(servers, withPort(s, "53"))
	}
	if len(servers) == 0 {
		path := opts.ResolvConf
		if path == "" {
			path = DefaultResolvConf
		}
		cfg, err := dns.ClientConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("read resolver config %s: %w", path, err)
		}
		for _, s := range cfg.Servers {
			servers = append(servers, net.JoinHostPort(s, cfg.Port))
		}
	}
	if len(servers) == 0 {
		return nil, errors.New("no DNS servers configured")
	}
	return &Resolver{
		servers: servers,
		udp:     &dns.Client{Net: "udp", Timeout: timeout},
		tcp:     &dns.Client{Net: "tcp", Timeout: timeout},
	}, nil
}

func withPort(s, port string) string {
	if _, _, err := net.SplitHostPort(s); err == nil {
		return s
	}
	return net.JoinHostPort(strings.Trim(s, "[]"), port)
}

// errNoAnswer marks an answered query without records of the requested type.
var errNoAnswer = errors.New("no records")

func (r *Resolver) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		resp, _, err := r.udp.ExchangeContext(ctx, msg, server)
		if err == nil && resp != nil && resp.Truncated {
			resp, _, err = r.tcp.ExchangeContext(ctx, msg, server)
		}
		if err != nil {
			lastErr = fmt.Errorf("%s %s via %s: %w", dns.TypeToString[qtype], name, server, err)
			logging.FromContext(ctx).Debug(ctx, "dns query failed", "name", name, "type", dns.TypeToString[qtype], "server", server, "error", err)
			continue
		}
		switch resp.Rcode {
		case dns.RcodeSuccess:
		case dns.RcodeServerFailure:
			// another server may still answer
			lastErr = fmt.Errorf("%s %s: %s", dns.TypeToString[qtype], name, dns.RcodeToString[resp.Rcode])
			continue
		default:
			return nil, fmt.Errorf("%s %s: %s", dns.TypeToString[qtype], name, dns.RcodeToString[resp.Rcode])
		}
		var out []dns.RR
		for _, rr := range resp.Answer {
			if rr.Header().Rrtype == qtype {
				out = append(out, rr)
			}
		}
		if len(out) == 0 {
			return nil, errNoAnswer
		}
		return out, nil
	}
	return nil, lastErr
}

func lookup[T any](rrs []dns.RR, err error, conv func(dns.RR) (T, bool)) model.Lookup[T] {
	if errors.Is(err, errNoAnswer) {
		return model.NoRecords[T]()
	}
	if err != nil {
		return model.Failed[T](err)
	}
	values := make([]T, 0, len(rrs))
	for _, rr := range rrs {
		if v, ok := conv(rr); ok {
			values = append(values, v)
		}
	}
	return model.Found(values...)
}

func (r *Resolver) A(ctx context.Context, name string) model.Lookup[string] {
	rrs, err := r.query(ctx, name, dns.TypeA)
	return lookup(rrs, err, func(rr dns.RR) (string, bool) {
		a, ok := rr.(*dns.A)
		if !ok {
			return "", false
		}
		return a.A.String(), true
	})
}

// firstA returns the first A address of host, or "" when none resolves.
func (r *Resolver) firstA(ctx context.Context, host string) string {
	if l := r.A(ctx, host); l.Present() {
		return l.Values[0]
	}
	return ""
}

func (r *Resolver) MX(ctx context.Context, domain string) model.Lookup[model.HostAddr] {
	rrs, err := r.query(ctx, domain, dns.TypeMX)
	mxs := make([]*dns.MX, 0, len(rrs))
	for _, rr := range rrs {
		if mx, ok := rr.(*dns.MX); ok {
			mxs = append(mxs, mx)
		}
	}
	sort.SliceStable(mxs, func(i, j int) bool { return mxs[i].Preference < mxs[j].Preference })
	sorted := make([]dns.RR, 0, len(mxs))
	for _, mx := range mxs {
		sorted = append(sorted, mx)
	}
	return lookup(sorted, err, func(rr dns.RR) (model.HostAddr, bool) {
		host := strings.TrimSuffix(rr.(*dns.MX).Mx, ".")
		ip := r.firstA(ctx, host)
		return model.HostAddr{Host: host, IP: ip}, ip != ""
	})
}

func (r *Resolver) NS(ctx context.Context, domain string) model.Lookup[model.HostAddr] {
	rrs, err := r.query(ctx, domain, dns.TypeNS)
	hosts := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		if ns, ok := rr.(*dns.NS); ok {
			hosts = append(hosts, strings.ToLower(strings.TrimSuffix(ns.Ns, ".")))
		}
	}
	sort.Strings(hosts)
	if errors.Is(err, errNoAnswer) {
		return model.NoRecords[model.HostAddr]()
	}
	if err != nil {
		return model.Failed[model.HostAddr](err)
	}
	values := make([]model.HostAddr, 0, len(hosts))
	for _, h := range hosts {
		values = append(values, model.HostAddr{Host: h, IP: r.firstA(ctx, h)})
	}
	return model.Found(values...)
}

func (r *Resolver) TXT(ctx context.Context, domain string) model.Lookup[string] {
	rrs, err := r.query(ctx, domain, dns.TypeTXT)
	return lookup(rrs, err, func(rr dns.RR) (string, bool) {
		t, ok := rr.(*dns.TXT)
		if !ok {
			return "", false
		}
		return strings.Join(t.Txt, ""), true
	})
}
