package mailusage

import (
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

// UseCase audits mailbox disk usage.
type UseCase struct {
	AccountPort model.AccountPort
	Inventory   *inventory.UseCase
	Host        string
}
