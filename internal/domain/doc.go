// Package domain holds the entities of the store front (users and products)
// together with the business error taxonomy that the rest of the application
// uses to signal expected failures to clients.
//
// Nothing in this package touches a database, the network, or a logger.
package domain
