package locrem

import (
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

// UseCase reconciles the declared local/remote mail routing of every domain
// with its live DNS.
type UseCase struct {
	AccountPort model.AccountPort
	Resolver    model.ResolverPort
	Inventory   *inventory.UseCase
	// Host is the server name used in reports.
	Host string
}
