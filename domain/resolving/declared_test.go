package resolving

import (
	"testing"

	"github.com/hostmaint/hostmaint/domain/model"
)

func TestDeclaredCompare(t *testing.T) {
	d := NewDeclared([]string{"local.tld", "Both.tld"}, []string{"remote.tld", "both.tld."})

	cases := []struct {
		name string
		v    model.Verdict
		want Finding
	}{
		{name: "local declared remote", v: model.Verdict{Kind: model.VerdictLocal, Domain: "remote.tld"}, want: FindingMoveLocal},
		{name: "local declared local", v: model.Verdict{Kind: model.VerdictLocal, Domain: "local.tld"}, want: FindingNone},
		{name: "remote declared local", v: model.Verdict{Kind: model.VerdictRemote, Domain: "local.tld"}, want: FindingMoveRemote},
		{name: "remote declared remote", v: model.Verdict{Kind: model.VerdictRemote, Domain: "remote.tld"}, want: FindingNone},
		{name: "delegated declared local", v: model.Verdict{Kind: model.VerdictDelegated, Domain: "local.tld"}, want: FindingMoveRemote},
		{name: "ambiguous", v: model.Verdict{Kind: model.VerdictAmbiguous, Domain: "local.tld"}, want: FindingCheck},
		{name: "undeclared", v: model.Verdict{Kind: model.VerdictLocal, Domain: "new.tld"}, want: FindingNone},
		{name: "normalized names", v: model.Verdict{Kind: model.VerdictLocal, Domain: "REMOTE.tld."}, want: FindingMoveLocal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.Compare(tc.v); got != tc.want {
				t.Errorf("Compare() = %s, want %s", got, tc.want)
			}
		})
	}
}
