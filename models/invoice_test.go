package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{"whole units", "3", "25.00", "75.00"},
		{"fractional quantity", "2.50", "19.99", "49.98"},
		{"rounds half up", "1.50", "0.03", "0.05"},
		{"zero quantity", "0", "100.00", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InvoiceItem{Quantity: dec(tt.quantity), UnitPrice: dec(tt.unitPrice)}
			if got := item.LineAmount(); !got.Equal(dec(tt.want)) {
				t.Errorf("LineAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("derives subtotal, tax and total", func(t *testing.T) {
		inv := Invoice{
			TaxRate: dec("8.25"),
			Items: []InvoiceItem{
				{Quantity: dec("2"), UnitPrice: dec("150.00")},
				{Quantity: dec("5"), UnitPrice: dec("20.00")},
			},
		}
		inv.ComputeTotals()

		if !inv.Subtotal.Equal(dec("400.00")) {
			t.Errorf("Subtotal = %s, want 400.00", inv.Subtotal)
		}
		if !inv.TaxAmount.Equal(dec("33.00")) {
			t.Errorf("TaxAmount = %s, want 33.00", inv.TaxAmount)
		}
		if !inv.Total.Equal(dec("433.00")) {
			t.Errorf("Total = %s, want 433.00", inv.Total)
		}
	})

	t.Run("total always equals subtotal plus tax", func(t *testing.T) {
		inv := Invoice{
			TaxRate: dec("7.77"),
			Items: []InvoiceItem{
				{Quantity: dec("1.33"), UnitPrice: dec("99.99")},
				{Quantity: dec("0.25"), UnitPrice: dec("12.49")},
			},
		}
		inv.ComputeTotals()

		if !inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount)) {
			t.Errorf("Total %s != Subtotal %s + TaxAmount %s", inv.Total, inv.Subtotal, inv.TaxAmount)
		}
	})

	t.Run("item amounts are rewritten", func(t *testing.T) {
		inv := Invoice{
			Items: []InvoiceItem{
				// Amount deliberately wrong; ComputeTotals must not trust it
				{Quantity: dec("2"), UnitPrice: dec("10.00"), Amount: dec("999.99")},
			},
		}
		inv.ComputeTotals()

		if !inv.Items[0].Amount.Equal(dec("20.00")) {
			t.Errorf("item Amount = %s, want 20.00", inv.Items[0].Amount)
		}
		if !inv.Subtotal.Equal(dec("20.00")) {
			t.Errorf("Subtotal = %s, want 20.00", inv.Subtotal)
		}
	})

	t.Run("zero tax rate", func(t *testing.T) {
		inv := Invoice{
			Items: []InvoiceItem{{Quantity: dec("1"), UnitPrice: dec("50.00")}},
		}
		inv.ComputeTotals()

		if !inv.TaxAmount.IsZero() {
			t.Errorf("TaxAmount = %s, want 0", inv.TaxAmount)
		}
		if !inv.Total.Equal(dec("50.00")) {
			t.Errorf("Total = %s, want 50.00", inv.Total)
		}
	})

	t.Run("no items yields zero totals", func(t *testing.T) {
		inv := Invoice{TaxRate: dec("10")}
		inv.ComputeTotals()

		if !inv.Subtotal.IsZero() || !inv.TaxAmount.IsZero() || !inv.Total.IsZero() {
			t.Errorf("expected zero totals, got subtotal=%s tax=%s total=%s",
				inv.Subtotal, inv.TaxAmount, inv.Total)
		}
	})
}

func TestPaidAmount(t *testing.T) {
	inv := Invoice{
		Payments: []Payment{
			{Amount: dec("100.00")},
			{Amount: dec("49.50")},
		},
	}
	if got := inv.PaidAmount(); !got.Equal(dec("149.50")) {
		t.Errorf("PaidAmount() = %s, want 149.50", got)
	}

	empty := Invoice{}
	if !empty.PaidAmount().IsZero() {
		t.Errorf("PaidAmount() on no payments = %s, want 0", empty.PaidAmount())
	}
}

func TestInvoiceStatusValid(t *testing.T) {
	for _, s := range []InvoiceStatus{StatusDraft, StatusPending, StatusPaid, StatusOverdue, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []InvoiceStatus{"", "unpaid", "PAID", "void"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}
