package model

import (
	"fmt"
	"strings"
)

// RecordType is a zone record type as reported by the account API.
type RecordType string

const (
	RecordA     RecordType = "A"
	RecordAAAA  RecordType = "AAAA"
	RecordCNAME RecordType = "CNAME"
	RecordMX    RecordType = "MX"
	RecordNS    RecordType = "NS"
	RecordTXT   RecordType = "TXT"
	RecordSOA   RecordType = "SOA"
	RecordSRV   RecordType = "SRV"
)

// ZoneRecord is one line of a zone dump. Names keep the trailing dot as dumped.
type ZoneRecord struct {
	Line       int        `json:"line" yaml:"Line"`
	Type       RecordType `json:"type" yaml:"type"`
	Name       string     `json:"name,omitempty" yaml:"name"`
	Class      string     `json:"class,omitempty" yaml:"class"`
	TTL        uint32     `json:"ttl,omitempty" yaml:"ttl"`
	Address    string     `json:"address,omitempty" yaml:"address"`
	CName      string     `json:"cname,omitempty" yaml:"cname"`
	Exchange   string     `json:"exchange,omitempty" yaml:"exchange"`
	Preference int        `json:"preference,omitempty" yaml:"preference"`
	TxtData    string     `json:"txtdata,omitempty" yaml:"txtdata"`
}

// Value returns the type-specific data of the record.
func (r ZoneRecord) Value() string {
	switch r.Type {
	case RecordA, RecordAAAA:
		return r.Address
	case RecordCNAME:
		return r.CName
	case RecordMX:
		return fmt.Sprintf("%d %s", r.Preference, r.Exchange)
	case RecordTXT:
		return r.TxtData
	default:
		return ""
	}
}

func (r ZoneRecord) String() string {
	return fmt.Sprintf("line %d: %s %s %s", r.Line, strings.TrimSuffix(r.Name, "."), r.Type, r.Value())
}

// ZoneEditKind identifies the corrective rule behind an edit.
type ZoneEditKind string

const (
	EditRetargetMX ZoneEditKind = "mx-retarget"
	EditCNAMEToA   ZoneEditKind = "mail-cname-to-a"
	EditAddMailA   ZoneEditKind = "mail-add-a"
	EditRewriteSPF ZoneEditKind = "spf-rewrite"
)

// ZoneEdit is one planned change. Line is zero for additions.
type ZoneEdit struct {
	Kind ZoneEditKind `json:"kind"`
	Line int          `json:"line,omitempty"`
	Old  *ZoneRecord  `json:"old,omitempty"`
	New  ZoneRecord   `json:"new"`
	Note string       `json:"note,omitempty"`
}

// IsAdd reports whether the edit adds a new record instead of editing a line.
func (e ZoneEdit) IsAdd() bool { return e.Line == 0 }

// Verify reports whether got carries the intended type and value of the edit.
func (e ZoneEdit) Verify(got ZoneRecord) bool {
	if got.Type != e.New.Type {
		return false
	}
	switch e.New.Type {
	case RecordMX:
		return strings.TrimSuffix(got.Exchange, ".") == strings.TrimSuffix(e.New.Exchange, ".")
	default:
		return got.Value() == e.New.Value()
	}
}

// ZoneFixPlan is the ordered list of edits computed against one zone snapshot.
type ZoneFixPlan struct {
	Domain string     `json:"domain"`
	Edits  []ZoneEdit `json:"edits"`
}

// Empty reports whether the zone is already conformant.
func (p ZoneFixPlan) Empty() bool { return len(p.Edits) == 0 }
