// Package interfaces records which concrete types back the abstractions the
// application is wired through.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore, BookReader, StatsReader: the reading log (internal/http/stores.go)
//   - OrphanAuthorsCleaner: author cleanup job (internal/tasks/cleanup_authors.go)
//   - BookReader: markdown export (internal/exporters/generic.go)
//
// ## Audit Interfaces
//
//   - AuditLogger, AuditEventReader, BookHistoryReader (internal/http)
//   - Reporter, AuditEventCleaner (internal/tasks)
//
// ## Background Work
//
//   - TaskQueue (internal/http/tasks.go) and Enqueuer (internal/scheduler)
//
// # Adding a New Maintenance Job
//
//  1. Define the task and its processor in internal/tasks/, following
//     cleanup_authors.go, and add it to MaintenanceTypes and NewMaintenanceTask.
//
//  2. Register the queue in entrypoint.go.
//
//  3. The scheduler and POST /api/tasks/:type/run pick it up by name.
//
// # Compile-Time Interface Checks
//
// Every implementation is checked here so a missing method fails the build
// rather than the first request:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
package interfaces
