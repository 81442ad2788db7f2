package repositories

// RepositoryProvider aggregates all repository implementations for wiring
// into the service container.
type RepositoryProvider struct {
	DayRepo      DayRepositoryWithTx
	SessionRepo  SessionRepositoryWithTx
	TerminalRepo TerminalRepositoryFacade
	LocationRepo LocationReader
	UserRepo     UserReader
}
