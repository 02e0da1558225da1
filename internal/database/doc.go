// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, schema creation
//	├── schema.go        # DDL for the reading log tables
//	├── books/           # Book, author and review CRUD, search and sorting
//	└── audit/           # Audit event persistence
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./gelezen_boeken.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	rows, err := booksRepo.SearchBooks(ctx, "herbert", books.SortTitleDesc)
//
// # Transactions
//
// Every operation that writes more than one row (create, update, delete) runs
// inside a single gorm transaction, so a failure halfway leaves no partial
// book behind.
package database
