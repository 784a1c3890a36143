// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests using it are built with the "integration" tag and skip themselves
// when no database URL is configured:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDB(t)
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			// exercise stores against tx
//		})
//	}
//
// The schema is brought up to date with the same embedded goose migrations
// the server runs, and every WithTx call is rolled back afterwards.
package testdb
