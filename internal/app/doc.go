// Package app provides application initialization and lifecycle management for
// the PCN portal. It handles the orchestration of all major components
// including configuration loading, service initialization, and graceful
// shutdown procedures.
//
// # Architecture
//
// The app package follows a dependency injection pattern where all components
// are wired together at startup. This ensures loose coupling and testability.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging
//	3. Connect the record store and blob container
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//	7. Set up graceful shutdown handlers
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals to ensure:
//
//	- Active requests are completed
//	- Database connections are closed
//
// # Error Handling
//
// All initialization errors are returned to the caller for proper
// handling. The app does not call os.Exit() directly, allowing
// the main function to control the exit process.
package app
