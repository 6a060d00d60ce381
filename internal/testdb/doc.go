// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using this package are skipped unless ECOM_TEST_DATABASE_URL (or
// DATABASE_URL) is set. The schema is migrated once per process from the
// embedded goose migrations, and each test runs inside a transaction that
// is rolled back afterwards:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDB(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			userStore := postgres.NewPostgresUserStore(tx, logger)
//			// ...
//		})
//	}
package testdb
