package resolving

import (
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

// UseCase produces the per-account resolving report.
type UseCase struct {
	AccountPort model.AccountPort
	Resolver    model.ResolverPort
	Inventory   *inventory.UseCase
	Host        string
}
