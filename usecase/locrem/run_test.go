package locrem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/domain/resolving"
	"github.com/hostmaint/hostmaint/internal/mocks"
	"github.com/hostmaint/hostmaint/internal/naming"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

const ip = "10.0.0.5"

func fixture() (*mocks.AccountPort, *mocks.Resolver) {
	port := &mocks.AccountPort{
		ListAccountsFunc: func(context.Context, model.AccountFilter) ([]model.AccountIdentity, error) {
			return []model.AccountIdentity{
				{User: "alice", Owner: "root", LocalIP: ip},
				{User: "bob", Owner: "root", LocalIP: ip},
			}, nil
		},
		AccountDomainsFunc: func(_ context.Context, user string) (*model.AccountDomains, error) {
			switch user {
			case "alice":
				return &model.AccountDomains{Main: "here.tld", Addon: []string{"gone.tld", "mixed.tld", "skip.ignored.tld"}}, nil
			default:
				return &model.AccountDomains{Main: "bob.tld"}, nil
			}
		},
		ListSuspendedFunc: func(context.Context) ([]model.SuspensionRecord, error) {
			return []model.SuspensionRecord{{User: "bob", Owner: "root", Reason: "Moved to new host"}}, nil
		},
	}
	res := mocks.NewResolver(
		mocks.MXHere("here.tld", ip),
		model.DomainRecordSet{Domain: "gone.tld", A: model.Found("192.0.2.1"), MX: model.Found(model.HostAddr{Host: "mx.other.net", IP: "192.0.2.1"})},
		model.DomainRecordSet{Domain: "mixed.tld", MX: model.Found(model.HostAddr{Host: "mail.mixed.tld", IP: ip}, model.HostAddr{Host: "mx.other.net", IP: "192.0.2.1"})},
		model.DomainRecordSet{Domain: "bob.tld", A: model.Found("192.0.2.9")},
	)
	return port, res
}

func newUseCase(port *mocks.AccountPort, res *mocks.Resolver) *UseCase {
	return &UseCase{AccountPort: port, Resolver: res, Inventory: &inventory.UseCase{AccountPort: port}, Host: "srv1"}
}

func entriesFor(run *model.Run, c model.Category) []string {
	var out []string
	for _, e := range run.Entries {
		if e.Category == c {
			out = append(out, e.Subject)
		}
	}
	return out
}

func TestRun(t *testing.T) {
	port, res := fixture()
	uc := newUseCase(port, res)
	in := &RunInput{
		Classifier: resolving.Classifier{IgnoredDomains: naming.NewApexSet(naming.ApexLabels, "ignored.tld")},
		Declared:   resolving.NewDeclared([]string{"gone.tld", "mixed.tld", "bob.tld"}, []string{"here.tld"}),
	}
	out, err := uc.Run(context.Background(), in)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	run := out.Run

	if got := entriesFor(run, model.CategoryLocal); len(got) != 1 || got[0] != "here.tld" {
		t.Errorf("LOCAL = %v", got)
	}
	if got := entriesFor(run, model.CategoryRemote); len(got) != 2 || got[0] != "gone.tld" || got[1] != "bob.tld" {
		t.Errorf("REMOTE = %v", got)
	}
	if got := entriesFor(run, model.CategoryCheck); len(got) != 1 || got[0] != "mixed.tld" {
		t.Errorf("CHECK = %v", got)
	}
	if got := entriesFor(run, model.CategoryIgnored); len(got) != 1 || got[0] != "skip.ignored.tld" {
		t.Errorf("IGNORED = %v", got)
	}
	if res.Queries["skip.ignored.tld"] != 0 {
		t.Errorf("ignored domain must not be resolved")
	}

	want := []string{
		"setmxcheck alice here.tld local",
		"setmxcheck alice gone.tld remote",
		"unsuspend bob",
		"setmxcheck bob bob.tld remote",
		"suspend bob Moved to new host",
	}
	if len(port.Calls) != len(want) {
		t.Fatalf("calls = %v, want %v", port.Calls, want)
	}
	for i := range want {
		if port.Calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, port.Calls[i], want[i])
		}
	}
}

func TestRun_ResuspendOnFixFailure(t *testing.T) {
	port, res := fixture()
	port.SetMXCheckFunc = func(_ context.Context, user, _ string, _ model.MXCheck) error {
		if user == "bob" {
			return model.ErrTransportRejected
		}
		return nil
	}
	out, err := newUseCase(port, res).Run(context.Background(), &RunInput{
		Declared: resolving.NewDeclared([]string{"bob.tld"}, nil),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := port.CallsWithPrefix("suspend bob"); len(got) != 1 {
		t.Errorf("bob must be suspended again, calls: %v", port.Calls)
	}
	if got := entriesFor(out.Run, model.CategoryError); len(got) != 1 || got[0] != "bob.tld" {
		t.Errorf("ERROR = %v", got)
	}
}

func TestRun_DryRunDetail(t *testing.T) {
	port, res := fixture()
	port.DryRunMode = true
	out, _ := newUseCase(port, res).Run(context.Background(), &RunInput{
		Declared: resolving.NewDeclared(nil, []string{"here.tld"}),
	})
	if !out.Run.DryRun {
		t.Errorf("run must be marked dry-run")
	}
	for _, e := range out.Run.Entries {
		if e.Category == model.CategoryLocal && !strings.HasPrefix(e.Detail, "DRY RUN") {
			t.Errorf("dry-run detail = %q", e.Detail)
		}
	}
}

func TestRun_InventoryFailure(t *testing.T) {
	port := &mocks.AccountPort{
		ListAccountsFunc: func(context.Context, model.AccountFilter) ([]model.AccountIdentity, error) {
			return nil, errors.New("whmapi1 missing")
		},
	}
	out, err := newUseCase(port, mocks.NewResolver()).Run(context.Background(), &RunInput{})
	if !errors.Is(err, model.ErrInventory) {
		t.Fatalf("expected inventory error, got %v", err)
	}
	if out == nil || !out.Run.Failed() {
		t.Fatalf("failed run must still be returned")
	}
}

func TestLoadDeclared(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "localdomains")
	remote := filepath.Join(dir, "remotedomains")
	os.WriteFile(local, []byte("a.tld\n\n# comment\nB.tld \n"), 0o644)
	os.WriteFile(remote, []byte("c.tld\n"), 0o644)

	d, err := LoadDeclared(local, remote)
	if err != nil {
		t.Fatalf("LoadDeclared: %v", err)
	}
	if !d.IsLocal("a.tld") || !d.IsLocal("b.tld") || !d.IsRemote("c.tld") || d.IsLocal("comment") {
		t.Errorf("unexpected declaration: %+v", d)
	}
	if _, err := LoadDeclared(filepath.Join(dir, "missing"), remote); err == nil {
		t.Errorf("expected error for missing file")
	}
}
