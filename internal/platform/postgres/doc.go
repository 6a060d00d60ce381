// Package postgres implements the internal/store data mappers on PostgreSQL
// through database/sql and the pgx stdlib driver, translates PostgreSQL error
// codes into store errors, and embeds the goose schema migrations.
package postgres
