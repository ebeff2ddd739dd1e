package resolving

import (
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/naming"
)

// Finding is the actionable outcome of comparing a verdict with the declared hosting mode.
type Finding int

const (
	// FindingNone means the declaration agrees with live DNS or the domain is undeclared.
	FindingNone Finding = iota
	// FindingMoveLocal means the domain resolves here but is declared remote.
	FindingMoveLocal
	// FindingMoveRemote means the domain resolves elsewhere but is declared local.
	FindingMoveRemote
	// FindingCheck means the verdict is ambiguous and must be reviewed.
	FindingCheck
)

func (f Finding) String() string {
	switch f {
	case FindingMoveLocal:
		return "local"
	case FindingMoveRemote:
		return "remote"
	case FindingCheck:
		return "check"
	default:
		return "ok"
	}
}

// Declared is the configured split of domains into local and remote hosting.
type Declared struct {
	local  map[string]struct{}
	remote map[string]struct{}
}

// NewDeclared builds the declaration from the two domain lists.
func NewDeclared(local, remote []string) Declared {
	d := Declared{local: make(map[string]struct{}, len(local)), remote: make(map[string]struct{}, len(remote))}
	for _, n := range local {
		if n = naming.Normalize(n); n != "" {
			d.local[n] = struct{}{}
		}
	}
	for _, n := range remote {
		if n = naming.Normalize(n); n != "" {
			d.remote[n] = struct{}{}
		}
	}
	return d
}

// IsLocal reports whether domain is declared local.
func (d Declared) IsLocal(domain string) bool {
	_, ok := d.local[naming.Normalize(domain)]
	return ok
}

// IsRemote reports whether domain is declared remote.
func (d Declared) IsRemote(domain string) bool {
	_, ok := d.remote[naming.Normalize(domain)]
	return ok
}

// Compare returns the finding for a verdict. Delegated verdicts count as remote.
func (d Declared) Compare(v model.Verdict) Finding {
	switch v.Kind {
	case model.VerdictAmbiguous:
		return FindingCheck
	case model.VerdictLocal:
		if d.IsRemote(v.Domain) {
			return FindingMoveLocal
		}
	case model.VerdictRemote, model.VerdictDelegated:
		if d.IsLocal(v.Domain) {
			return FindingMoveRemote
		}
	}
	return FindingNone
}
