package inventory

import "github.com/hostmaint/hostmaint/domain/model"

// UseCase builds the per-run account inventory.
type UseCase struct {
	AccountPort model.AccountPort
}
