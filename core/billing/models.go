// Package billing holds the orders, carts & payments written by the checkout flow.
// They are only read here, for revenue and family statements.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

const (
	InvoicePaid    = "Paid"
	InvoicePending = "Pending"

	defaultDescription = "Class Enrollment"
)

type Cart struct {
	ID           int             `json:"id" gorm:"primaryKey"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	ProductTitle null.String     `json:"productTitle"`
	Description  null.String     `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Order struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	CartID    *int      `json:"cartId"`
	Cart      *Cart     `json:"cart,omitempty" gorm:"foreignKey:CartID"`
	Payment   *Payment  `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Paid reports whether the order has a payment that was not refunded.
func (o Order) Paid() bool {
	return o.Payment != nil && !o.Payment.RefundID.Valid
}

func (o Order) Amount() decimal.Decimal {
	if o.Cart == nil {
		return decimal.Zero
	}
	return o.Cart.Amount
}

func (o Order) Description() string {
	if o.Cart != nil {
		if o.Cart.ProductTitle.Valid && o.Cart.ProductTitle.String != "" {
			return o.Cart.ProductTitle.String
		}
		if o.Cart.Description.Valid && o.Cart.Description.String != "" {
			return o.Cart.Description.String
		}
	}
	return defaultDescription
}

type Payment struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	OrderID   int             `json:"orderId" gorm:"uniqueIndex;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	RefundID  null.String     `json:"refundId"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Invoice struct {
	InvoiceID   string          `json:"invoiceId"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
}

type Summary struct {
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalInvoices int             `json:"totalInvoices"`
	Due           decimal.Decimal `json:"due"`
}

type Statement struct {
	Summary  Summary   `json:"summary"`
	Invoices []Invoice `json:"invoices"`
}

// NewStatement numbers orders as invoices INV-001, INV-002... in the given order.
func NewStatement(orders []Order) Statement {
	st := Statement{
		Summary:  Summary{TotalPaid: decimal.Zero, Due: decimal.Zero, TotalInvoices: len(orders)},
		Invoices: make([]Invoice, 0, len(orders)),
	}
	for i, o := range orders {
		inv := Invoice{
			InvoiceID:   fmt.Sprintf("INV-%03d", i+1),
			Date:        o.Date.UTC().Format("2006-01-02"),
			Description: o.Description(),
			Amount:      o.Amount(),
			Status:      InvoicePending,
		}
		if o.Paid() {
			inv.Status = InvoicePaid
			st.Summary.TotalPaid = st.Summary.TotalPaid.Add(inv.Amount)
		} else {
			st.Summary.Due = st.Summary.Due.Add(inv.Amount)
		}
		st.Invoices = append(st.Invoices, inv)
	}
	return st
}
