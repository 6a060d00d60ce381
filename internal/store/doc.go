// Package store defines the data-mapper interfaces for users and products,
// the errors they return, and the transaction helper shared by services.
// Implementations live under internal/platform.
package store
