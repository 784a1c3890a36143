// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of database connections, the embedded goose schema
// migrations, query execution, and data mapping between domain entities and
// database records.
//
// Every board and task query is scoped to the requesting owner, so records
// belonging to other users are reported as not found.
package postgres
