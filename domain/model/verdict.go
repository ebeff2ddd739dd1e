package model

// VerdictKind is the closed set of classifier outcomes.
type VerdictKind int

const (
	// VerdictLocal means live DNS points at this server.
	VerdictLocal VerdictKind = iota + 1
	// VerdictRemote means live DNS does not point at this server.
	VerdictRemote
	// VerdictAmbiguous needs human review and is never acted on.
	VerdictAmbiguous
	// VerdictDelegated means the domain uses this cluster's name servers but is hosted elsewhere.
	VerdictDelegated
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictLocal:
		return "local"
	case VerdictRemote:
		return "remote"
	case VerdictAmbiguous:
		return "check"
	case VerdictDelegated:
		return "delegated"
	default:
		return "unknown"
	}
}

// Verdict is the classification of one domain.
type Verdict struct {
	Kind    VerdictKind     `json:"kind"`
	Domain  string          `json:"domain"`
	Reason  string          `json:"reason,omitempty"`
	Records DomainRecordSet `json:"records"`
}

func LocalVerdict(rs DomainRecordSet, reason string) Verdict {
	return Verdict{Kind: VerdictLocal, Domain: rs.Domain, Reason: reason, Records: rs}
}

func RemoteVerdict(rs DomainRecordSet, reason string) Verdict {
	return Verdict{Kind: VerdictRemote, Domain: rs.Domain, Reason: reason, Records: rs}
}

func AmbiguousVerdict(rs DomainRecordSet, reason string) Verdict {
	return Verdict{Kind: VerdictAmbiguous, Domain: rs.Domain, Reason: reason, Records: rs}
}

func DelegatedVerdict(rs DomainRecordSet, reason string) Verdict {
	return Verdict{Kind: VerdictDelegated, Domain: rs.Domain, Reason: reason, Records: rs}
}

// ResolvesHere reports whether the verdict is Local.
func (v Verdict) ResolvesHere() bool { return v.Kind == VerdictLocal }

// NeedsReview reports whether the verdict must go to a human.
func (v Verdict) NeedsReview() bool { return v.Kind == VerdictAmbiguous }

// NSOwnership is the tri-state outcome of matching NS addresses against the cluster ranges.
type NSOwnership int

const (
	// NSNoData means no NS answer was available.
	NSNoData NSOwnership = iota
	// NSNoMatch means NS records exist but none resolves into the cluster ranges.
	NSNoMatch
	// NSMatch means at least one NS resolves into the cluster ranges.
	NSMatch
)

func (o NSOwnership) String() string {
	switch o {
	case NSNoMatch:
		return "external"
	case NSMatch:
		return "ours"
	default:
		return "no-data"
	}
}
