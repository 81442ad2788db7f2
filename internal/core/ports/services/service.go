package services

// ServiceContainer aggregates all service implementations for handler wiring
type ServiceContainer struct {
	DayLedger        DayLedgerSvcFacade
	SessionLedger    SessionLedgerSvcFacade
	TerminalRegistry TerminalRegistrySvc
	Lifecycle        LifecycleSvcFacade
}
