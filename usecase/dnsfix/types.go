package dnsfix

import (
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/inventory"
)

// UseCase applies the zone fix policy to local domains served by the cluster
// name servers.
type UseCase struct {
	AccountPort model.AccountPort
	Resolver    model.ResolverPort
	Inventory   *inventory.UseCase
	Host        string
}
