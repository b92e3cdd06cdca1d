package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the closed set of lifecycle states an invoice can be in.
// No transition rules are enforced beyond the automatic ones on the write
// path (overdue sweep, payment settlement).
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusPending   InvoiceStatus = "pending"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	// Display-only; not unique across users.
	InvoiceNumber string        `gorm:"not null" json:"invoiceNumber"`
	Status        InvoiceStatus `gorm:"type:varchar(20);default:'draft';not null" json:"status"`

	IssueDate time.Time `gorm:"not null" json:"issueDate"`
	DueDate   time.Time `gorm:"not null" json:"dueDate"`
	Subject   string    `json:"subject"`
	Notes     string    `json:"notes"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"taxRate"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"taxAmount"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`

	Description string          `gorm:"not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LineAmount is quantity × unit price rounded to 2 fraction digits.
func (it *InvoiceItem) LineAmount() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice).Round(2)
}

// ComputeTotals derives subtotal, tax amount and total from the invoice
// items and tax rate. Handlers call this instead of trusting submitted
// totals; item amounts are recomputed as a side effect.
func (inv *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Amount = inv.Items[i].LineAmount()
		subtotal = subtotal.Add(inv.Items[i].Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
}

// PaidAmount sums the recorded payments.
func (inv *Invoice) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for i := range inv.Payments {
		paid = paid.Add(inv.Payments[i].Amount)
	}
	return paid
}
