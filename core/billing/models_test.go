package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestNewStatement(t *testing.T) {
	day := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	orders := []Order{
		{Date: day, Cart: &Cart{Amount: decimal.RequireFromString("120.50"), ProductTitle: null.StringFrom("Ballet")}, Payment: &Payment{}},
		{Date: day, Cart: &Cart{Amount: decimal.RequireFromString("30"), Description: null.StringFrom("Trial lesson")}},
		{Date: day, Cart: &Cart{Amount: decimal.RequireFromString("45")}, Payment: &Payment{RefundID: null.StringFrom("re_1")}},
		{Date: day},
	}

	st := NewStatement(orders)
	require.Len(t, st.Invoices, 4)

	assert.Equal(t, "INV-001", st.Invoices[0].InvoiceID)
	assert.Equal(t, "INV-004", st.Invoices[3].InvoiceID)
	assert.Equal(t, "2025-03-14", st.Invoices[0].Date)
	assert.Equal(t, "Ballet", st.Invoices[0].Description)
	assert.Equal(t, "Trial lesson", st.Invoices[1].Description)
	assert.Equal(t, defaultDescription, st.Invoices[2].Description)

	assert.Equal(t, InvoicePaid, st.Invoices[0].Status)
	assert.Equal(t, InvoicePending, st.Invoices[1].Status)
	assert.Equal(t, InvoicePending, st.Invoices[2].Status, "refunded payments do not count")

	assert.Equal(t, 4, st.Summary.TotalInvoices)
	assert.True(t, st.Summary.TotalPaid.Equal(decimal.RequireFromString("120.5")))
	assert.True(t, st.Summary.Due.Equal(decimal.RequireFromString("75")))
}

func TestNewStatementEmpty(t *testing.T) {
	st := NewStatement(nil)
	assert.NotNil(t, st.Invoices)
	assert.Zero(t, st.Summary.TotalInvoices)
}
