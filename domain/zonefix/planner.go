// Package zonefix computes the corrective edits that bring a domain zone in
// line with the SPF and mail host policy. Plans are computed against one zone
// snapshot and applying a plan yields a zone for which Plan returns no edits.
package zonefix

import (
	"sort"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/naming"
)

const (
	// TTL used for rewritten MX and mail host records.
	MailRecordTTL uint32 = 300
	// TTL used for TXT rewrites and added records.
	DefaultTTL uint32 = 14400
)

// Planner holds the settings of the zone fix policy.
type Planner struct {
	// SPFInclude is the mechanism every SPF record must carry, e.g. include:spf.example.com.
	SPFInclude string
}

// Plan returns the edits for the zone of domain. SPF edits come first in zone
// order, followed by the mail host edits.
func (p Planner) Plan(domain, localIP string, zone []model.ZoneRecord) model.ZoneFixPlan {
	domain = naming.Normalize(domain)
	plan := model.ZoneFixPlan{Domain: domain}
	plan.Edits = append(plan.Edits, p.planSPF(zone)...)
	plan.Edits = append(plan.Edits, planMailHost(domain, localIP, zone)...)
	return plan
}

func (p Planner) planSPF(zone []model.ZoneRecord) []model.ZoneEdit {
	var edits []model.ZoneEdit
	for _, rec := range zone {
		if rec.Type != model.RecordTXT || !IsSPF(rec.TxtData) {
			continue
		}
		txt, notes := RewriteSPF(rec.TxtData, p.SPFInclude)
		if len(notes) == 0 {
			continue
		}
		n := rec
		n.TxtData = txt
		n.TTL = DefaultTTL
		n.Class = "IN"
		edits = append(edits, model.ZoneEdit{
			Kind: model.EditRewriteSPF,
			Line: rec.Line,
			Old:  ptr.To(rec),
			New:  n,
			Note: strings.Join(notes, ", "),
		})
	}
	return edits
}

func planMailHost(domain, localIP string, zone []model.ZoneRecord) []model.ZoneEdit {
	var edits []model.ZoneEdit
	mailHost := naming.MailHost(domain)
	mailExists := false
	needMailHost := false

	for _, rec := range zone {
		name := naming.Normalize(rec.Name)
		switch {
		case rec.Type == model.RecordMX && name == domain && naming.SameName(rec.Exchange, domain):
			n := rec
			n.Name = domain + "."
			n.Exchange = mailHost
			n.TTL = MailRecordTTL
			n.Class = "IN"
			edits = append(edits, model.ZoneEdit{
				Kind: model.EditRetargetMX,
				Line: rec.Line,
				Old:  ptr.To(rec),
				New:  n,
				Note: "MX points at the bare domain",
			})
			needMailHost = true
		case rec.Type == model.RecordMX && naming.SameName(rec.Exchange, mailHost):
			needMailHost = true
		}

		if name != mailHost {
			continue
		}
		mailExists = true
		if rec.Type == model.RecordCNAME && naming.SameName(rec.CName, domain) {
			edits = append(edits, model.ZoneEdit{
				Kind: model.EditCNAMEToA,
				Line: rec.Line,
				Old:  ptr.To(rec),
				New: model.ZoneRecord{
					Line:    rec.Line,
					Type:    model.RecordA,
					Name:    rec.Name,
					Class:   "IN",
					TTL:     MailRecordTTL,
					Address: localIP,
				},
				Note: "mail host is a CNAME to the bare domain",
			})
		}
	}

	if needMailHost && !mailExists {
		edits = append(edits, model.ZoneEdit{
			Kind: model.EditAddMailA,
			New: model.ZoneRecord{
				Type:    model.RecordA,
				Name:    mailHost + ".",
				Class:   "IN",
				TTL:     DefaultTTL,
				Address: localIP,
			},
			Note: "mail host missing from zone",
		})
	}
	return edits
}

// IsSPF reports whether a TXT value is an SPF record.
func IsSPF(txt string) bool {
	return strings.Contains(strings.ToLower(txt), "v=spf1")
}

// RewriteSPF tightens the neutral all qualifier to soft fail and inserts the
// required include before the trailing all mechanism, stripping permissive
// '+' qualifiers. It returns the new value and one note per applied rule; no
// notes means the record is conformant and txt is returned unchanged.
func RewriteSPF(txt, include string) (string, []string) {
	tokens := strings.Fields(txt)
	var notes []string

	for i, tok := range tokens {
		if strings.EqualFold(tok, "?all") {
			tokens[i] = "~all"
			if len(notes) == 0 {
				notes = append(notes, "soft fail")
			}
		}
	}

	include = strings.TrimSpace(include)
	if include != "" && !hasMechanism(tokens, include) {
		pos := len(tokens)
		for i := len(tokens) - 1; i >= 0; i-- {
			if isAll(tokens[i]) {
				pos = i
				break
			}
		}
		tokens = append(tokens[:pos], append([]string{include}, tokens[pos:]...)...)
		for i, tok := range tokens {
			tokens[i] = strings.TrimPrefix(tok, "+")
		}
		notes = append(notes, "include "+include)
	}

	if len(notes) == 0 {
		return txt, nil
	}
	return strings.Join(tokens, " "), notes
}

func hasMechanism(tokens []string, mech string) bool {
	mech = strings.TrimPrefix(strings.ToLower(mech), "+")
	for _, tok := range tokens {
		if strings.TrimPrefix(strings.ToLower(tok), "+") == mech {
			return true
		}
	}
	return false
}

func isAll(tok string) bool {
	tok = strings.ToLower(tok)
	if len(tok) == 4 && strings.ContainsAny(tok[:1], "+-~?") {
		tok = tok[1:]
	}
	return tok == "all"
}

// Apply returns a copy of zone with the plan applied the way the account API
// applies it: edits replace their line and additions are appended after the
// highest line.
func Apply(zone []model.ZoneRecord, plan model.ZoneFixPlan) []model.ZoneRecord {
	out := make([]model.ZoneRecord, len(zone))
	copy(out, zone)
	last := 0
	for _, r := range out {
		if r.Line > last {
			last = r.Line
		}
	}
	for _, e := range plan.Edits {
		if e.IsAdd() {
			last++
			n := e.New
			n.Line = last
			out = append(out, n)
			continue
		}
		for i := range out {
			if out[i].Line == e.Line {
				n := e.New
				n.Line = e.Line
				out[i] = n
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
