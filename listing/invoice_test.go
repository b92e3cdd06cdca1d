package listing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func invoiceFixtures() []InvoiceRow {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return []InvoiceRow{
		{
			ID:            uuid.New(),
			InvoiceNumber: "INV-2025-001",
			Client:        "Acme Inc.",
			Amount:        decimal.RequireFromString("1250.75"),
			Status:        "paid",
			IssueDate:     base,
			DueDate:       base.AddDate(0, 0, 14),
		},
		{
			ID:            uuid.New(),
			InvoiceNumber: "INV-2025-002",
			Client:        "Globex Corp",
			Amount:        decimal.RequireFromString("3420.00"),
			Status:        "overdue",
			IssueDate:     base.AddDate(0, 0, 3),
			DueDate:       base.AddDate(0, 0, 10),
		},
		{
			ID:            uuid.New(),
			InvoiceNumber: "INV-2025-003",
			Client:        "Initech LLC",
			Amount:        decimal.RequireFromString("870.25"),
			Status:        "paid",
			IssueDate:     base.AddDate(0, 0, 6),
			DueDate:       base.AddDate(0, 0, 20),
		},
	}
}

func numbersOf(rows []InvoiceRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.InvoiceNumber
	}
	return out
}

func TestInvoicesStatusFilter(t *testing.T) {
	rows := invoiceFixtures()

	t.Run("all sentinel keeps everything", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Status: StatusAll, Sort: DefaultInvoiceSort()})
		if len(got) != 3 {
			t.Fatalf("got %d rows, want 3", len(got))
		}
	})

	t.Run("empty status keeps everything", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Sort: DefaultInvoiceSort()})
		if len(got) != 3 {
			t.Fatalf("got %d rows, want 3", len(got))
		}
	})

	t.Run("paid keeps only paid and preserves relative order", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Status: "paid", Sort: SortState{Key: "status", Direction: Ascending}})
		if len(got) != 2 {
			t.Fatalf("got %d rows, want 2", len(got))
		}
		for _, r := range got {
			if r.Status != "paid" {
				t.Fatalf("non-paid row leaked: %v", r.InvoiceNumber)
			}
		}
		// Equal status keys, so the stable sort keeps input order
		if got[0].InvoiceNumber != "INV-2025-001" || got[1].InvoiceNumber != "INV-2025-003" {
			t.Fatalf("relative order not preserved: %v", numbersOf(got))
		}
	})

	t.Run("status conjoined with search", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Search: "globex", Status: "paid", Sort: DefaultInvoiceSort()})
		if len(got) != 0 {
			t.Fatalf("got %v, want empty", numbersOf(got))
		}
	})
}

func TestInvoicesSearch(t *testing.T) {
	rows := invoiceFixtures()

	t.Run("invoice number substring", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Search: "2025-002", Sort: DefaultInvoiceSort()})
		if len(got) != 1 || got[0].Client != "Globex Corp" {
			t.Fatalf("got %v", numbersOf(got))
		}
	})

	t.Run("client name case-insensitive", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Search: "INITECH", Sort: DefaultInvoiceSort()})
		if len(got) != 1 || got[0].InvoiceNumber != "INV-2025-003" {
			t.Fatalf("got %v", numbersOf(got))
		}
	})
}

func TestInvoicesSort(t *testing.T) {
	rows := invoiceFixtures()

	t.Run("default is issueDate descending", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Sort: DefaultInvoiceSort()})
		want := []string{"INV-2025-003", "INV-2025-002", "INV-2025-001"}
		for i, num := range want {
			if got[i].InvoiceNumber != num {
				t.Fatalf("got order %v, want %v", numbersOf(got), want)
			}
		}
	})

	t.Run("amount ascending", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Sort: SortState{Key: "amount", Direction: Ascending}})
		want := []string{"INV-2025-003", "INV-2025-001", "INV-2025-002"}
		for i, num := range want {
			if got[i].InvoiceNumber != num {
				t.Fatalf("got order %v, want %v", numbersOf(got), want)
			}
		}
	})

	t.Run("dueDate ascending", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Sort: SortState{Key: "dueDate", Direction: Ascending}})
		for i := 1; i < len(got); i++ {
			if got[i].DueDate.Before(got[i-1].DueDate) {
				t.Fatalf("rows not in ascending dueDate order: %v", numbersOf(got))
			}
		}
	})

	t.Run("client locale-aware ascending", func(t *testing.T) {
		got := Invoices(rows, InvoiceQuery{Sort: SortState{Key: "client", Direction: Ascending}})
		want := []string{"Acme Inc.", "Globex Corp", "Initech LLC"}
		for i, name := range want {
			if got[i].Client != name {
				t.Fatalf("got client order %v", numbersOf(got))
			}
		}
	})
}

func TestValidInvoiceSortKey(t *testing.T) {
	for _, key := range []string{"invoiceNumber", "client", "status", "amount", "issueDate", "dueDate"} {
		if !ValidInvoiceSortKey(key) {
			t.Errorf("%q should be a valid sort key", key)
		}
	}
	if ValidInvoiceSortKey("total") {
		t.Error("unexpected sort key accepted")
	}
}
