package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// newMockStockMovementRepository creates a GormStockMovementRepository with a mocked SQL connection
func newMockStockMovementRepository(t *testing.T) (*GormStockMovementRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockMovementRepository(gormDB), mock, mockDB
}

func TestGormStockMovementRepository_Append(t *testing.T) {
	t.Run("inserts movement into the log", func(t *testing.T) {
		repo, mock, mockDB := newMockStockMovementRepository(t)
		defer mockDB.Close()

		level, err := inventory.NewStockLevel(uuid.New(), uuid.New(), "Banana Chips 200g")
		require.NoError(t, err)
		movement, err := level.AddStock(valueobject.MustNewQuantity(50), "GRN-17", "opening stock")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "stock_movements"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Append(context.Background(), movement)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockMovementRepository_SumDeltas(t *testing.T) {
	t.Run("folds signed deltas for the pair", func(t *testing.T) {
		repo, mock, mockDB := newMockStockMovementRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		locationID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN type = \$1 THEN -quantity ELSE quantity END\), 0\) FROM "stock_movements" WHERE product_id = \$2 AND location_id = \$3`).
			WithArgs(inventory.MovementTypeOut, productID, locationID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(42))

		sum, err := repo.SumDeltas(context.Background(), productID, locationID)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), sum)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
