package database

import pgxmock "github.com/pashagolub/pgxmock/v3"

// NewMockPool returns a pgxmock pool that satisfies DBTX, so repository
// tests run without a database. Verify with ExpectationsWereMet.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}
