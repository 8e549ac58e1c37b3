package dbbadger

import (
	"testing"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

func newTestDb(t *testing.T) (
	*DbManager, domain.AccountRepository, domain.LedgerRepository,
) {
	dbManager, err := NewDbManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		//nolint:errcheck
		dbManager.Close()
	})

	return dbManager,
		NewAccountRepositoryImpl(dbManager),
		NewLedgerRepositoryImpl(dbManager)
}
