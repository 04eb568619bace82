package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	t.Run("accepts ASC in any case", func(t *testing.T) {
		assert.Equal(t, "ASC", ValidateSortOrder("asc"))
		assert.Equal(t, "ASC", ValidateSortOrder("ASC"))
		assert.Equal(t, "ASC", ValidateSortOrder("  Asc  "))
	})

	t.Run("defaults to DESC", func(t *testing.T) {
		assert.Equal(t, "DESC", ValidateSortOrder("desc"))
		assert.Equal(t, "DESC", ValidateSortOrder(""))
		assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
	})
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "invoice_date", ValidateSortField("invoice_date", InvoiceSortFields, "created_at"))
		assert.Equal(t, "total_amount", ValidateSortField("total_amount", SalesOrderSortFields, "created_at"))
	})

	t.Run("falls back to default for unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("payments; DROP TABLE invoices", InvoiceSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("", InvoiceSortFields, "created_at"))
	})
}
