package model

// AccountIdentity is one hosting account.
type AccountIdentity struct {
	User    string   `json:"user"`
	Owner   string   `json:"owner"`
	LocalIP string   `json:"ip"`
	Domain  string   `json:"domain"` // main domain as listed by the account API
	Domains []string `json:"domains,omitempty"`
}

// AccountDomains is the domain inventory of one account.
type AccountDomains struct {
	Main   string   `json:"main_domain" yaml:"main_domain"`
	Addon  []string `json:"addon_domains" yaml:"addon_domains"`
	Parked []string `json:"parked_domains" yaml:"parked_domains"`
	Sub    []string `json:"sub_domains" yaml:"sub_domains"`
}

// List returns the main domain followed by addon and parked domains, and
// sub-domains when includeSub is set. Empty names are skipped.
func (d AccountDomains) List(includeSub bool) []string {
	out := make([]string, 0, 1+len(d.Addon)+len(d.Parked)+len(d.Sub))
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				out = append(out, n)
			}
		}
	}
	add(d.Main)
	add(d.Addon...)
	add(d.Parked...)
	if includeSub {
		add(d.Sub...)
	}
	return out
}

// SearchType selects the account listing filter.
type SearchType string

const (
	SearchOwner   SearchType = "owner"
	SearchUser    SearchType = "user"
	SearchDomain  SearchType = "domain"
	SearchIP      SearchType = "ip"
	SearchPackage SearchType = "package"
)

// AccountFilter narrows an account listing. A zero filter lists every account.
type AccountFilter struct {
	Search     string
	SearchType SearchType
}

// DomainUserData is the vhost configuration of a domain.
type DomainUserData struct {
	Domain       string `json:"domain"`
	User         string `json:"user"`
	DocumentRoot string `json:"documentroot"`
	IP           string `json:"ip"`
}

// Bandwidth is the current-month usage and limit of an account.
type Bandwidth struct {
	User       string `json:"user"`
	TotalBytes int64  `json:"totalbytes"`
	LimitBytes int64  `json:"limit"`
}

// MailboxUsage is the disk usage of one mailbox in MB.
type MailboxUsage struct {
	Email  string  `json:"email"`
	UsedMB float64 `json:"diskused"`
}
