package services

import (
	portsrepo "github.com/storeops/pos_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/storeops/pos_lifecycle_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.DayLedger = NewDayService(
		repos.DayRepo,
		repos.SessionRepo,
		repos.LocationRepo,
		repos.UserRepo,
	)
	container.SessionLedger = NewSessionService(
		repos.SessionRepo,
		repos.DayRepo,
		repos.TerminalRepo,
		repos.LocationRepo,
		repos.UserRepo,
	)
	container.TerminalRegistry = NewTerminalService(repos.TerminalRepo)

	container.Lifecycle = NewLifecycleService(
		container.DayLedger,
		container.SessionLedger,
		container.TerminalRegistry,
		publisher,
	)

	return container
}
