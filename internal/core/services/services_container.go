package services

import (
	portsrepo "github.com/goldloom/jewelshop_backend/internal/core/ports/repositories"
	portssvc "github.com/goldloom/jewelshop_backend/internal/core/ports/services"
	"github.com/goldloom/jewelshop_backend/internal/platform/config"
	"github.com/goldloom/jewelshop_backend/internal/tally"
	"github.com/goldloom/jewelshop_backend/pkg/crypto"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, secrets *crypto.SecretBox) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The sync orchestrator comes first; the business services fire it after
	// every successful create.
	container.Tally = NewTallySyncService(
		repos.SyncLogRepo,
		repos.SyncConfigRepo,
		repos.SalesRepo,
		repos.PurchaseRepo,
		repos.CashRepo,
		tally.NewClient(nil),
		secrets,
	)

	container.Sales = NewSalesService(repos.SalesRepo, container.Tally)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, container.Tally)
	container.Cash = NewCashService(repos.CashRepo, container.Tally)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)

	return container
}
