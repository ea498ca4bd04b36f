package services

import (
	portsrepo "github.com/SscSPs/invoice_drafter/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_drafter/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafter/internal/observability"
	"github.com/SscSPs/invoice_drafter/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, metrics *observability.Metrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Invoice: NewInvoiceService(
			WithDraftRepository(repos.DraftRepo),
			WithMetrics(metrics),
			WithSessionTTL(cfg.SessionTTL),
		),
	}
}
