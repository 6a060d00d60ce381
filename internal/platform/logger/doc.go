// Package logger provides structured logging functionality for the application.
//
// It configures log/slog with a JSON handler and carries request-scoped
// loggers through context.Context so that trace IDs and component names follow
// a request from the router down to the data mappers.
package logger
