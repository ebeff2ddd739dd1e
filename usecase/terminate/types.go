package terminate

import (
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

// UseCase applies the suspension policy to suspended accounts.
type UseCase struct {
	AccountPort model.AccountPort
	Resolver    model.ResolverPort
	Inventory   *inventory.UseCase
	Host        string
	// Now is the clock used for suspension age and the bandwidth projection.
	// Defaults to time.Now.
	Now func() time.Time
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
