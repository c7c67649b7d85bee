// Package services implements the business logic layer of the PCN portal.
// It provides a clean separation between HTTP handlers and data access,
// ensuring that business rules are centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error handling and transformation
//
// # Common Service Pattern
//
// Services typically follow this structure:
//
//	type ServiceName struct {
//	    repo   Repository
//	    logger *slog.Logger
//	}
//
//	func NewServiceName(repo Repository, logger *slog.Logger) *ServiceName {
//	    return &ServiceName{
//	        repo:   repo,
//	        logger: logger,
//	    }
//	}
//
// The ingestion driver itself lives in package ingestion; this package holds
// the supporting services wired into the HTTP layer, such as health checks.
package services
