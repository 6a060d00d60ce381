// Package service contains the application's use cases. It sits between the
// web interface (internal/api) and the data mappers (internal/store),
// coordinating domain objects, transactions and the read cache.
//
// Services translate storage outcomes into business errors: a missing user
// becomes a USER_NOT_FOUND domain.BusinessError, an availability check that
// cannot be satisfied becomes PRODUCT_OUT_OF_STOCK. Infrastructure failures
// are wrapped with operation context and passed through unchanged in kind, so
// the API layer can still classify them with errors.Is.
//
// Services depend on store interfaces, never on a concrete database package.
package service
