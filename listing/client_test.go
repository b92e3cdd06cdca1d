package listing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func clientFixtures() []ClientRow {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []ClientRow{
		{
			ID:           uuid.New(),
			Name:         "Bravo",
			Email:        "hello@bravo.io",
			CompanyName:  "Bravo Studios",
			Phone:        "+14155550100",
			CreatedAt:    base.AddDate(0, 0, -1),
			InvoiceCount: 3,
			TotalSpent:   decimal.RequireFromString("1500.00"),
		},
		{
			ID:           uuid.New(),
			Name:         "alpha",
			Email:        "billing@alpha.dev",
			CompanyName:  "Alpha Labs",
			Phone:        "+442071838750",
			CreatedAt:    base.AddDate(0, 0, -2),
			InvoiceCount: 1,
			TotalSpent:   decimal.RequireFromString("200.50"),
		},
		{
			ID:           uuid.New(),
			Name:         "Hank Scorpio",
			Email:        "hank@globex.com",
			CompanyName:  "Globex Corp",
			Phone:        "555-0199",
			CreatedAt:    base,
			InvoiceCount: 7,
			TotalSpent:   decimal.RequireFromString("9400.00"),
		},
	}
}

func namesOf(rows []ClientRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestClientsSearch(t *testing.T) {
	rows := clientFixtures()

	t.Run("empty term matches everything", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: DefaultClientSort()})
		if len(got) != len(rows) {
			t.Fatalf("got %d rows, want %d", len(got), len(rows))
		}
	})

	t.Run("case-insensitive company name substring", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Search: "globex", Sort: DefaultClientSort()})
		if len(got) != 1 || got[0].CompanyName != "Globex Corp" {
			t.Fatalf("search globex: got %v", namesOf(got))
		}
	})

	t.Run("no match on unrelated company", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Search: "acme", Sort: DefaultClientSort()})
		if len(got) != 0 {
			t.Fatalf("search acme: got %v, want empty", namesOf(got))
		}
	})

	t.Run("email substring", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Search: "ALPHA.DEV", Sort: DefaultClientSort()})
		if len(got) != 1 || got[0].Name != "alpha" {
			t.Fatalf("got %v", namesOf(got))
		}
	})

	t.Run("phone matches verbatim", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Search: "4155550100", Sort: DefaultClientSort()})
		if len(got) != 1 || got[0].Name != "Bravo" {
			t.Fatalf("got %v", namesOf(got))
		}
	})

	t.Run("no match yields empty non-nil slice", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Search: "zzzzz", Sort: DefaultClientSort()})
		if got == nil || len(got) != 0 {
			t.Fatalf("got %v, want empty slice", got)
		}
	})
}

func TestClientsSort(t *testing.T) {
	rows := clientFixtures()

	t.Run("name ascending is locale-aware and case-insensitive", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: SortState{Key: "name", Direction: Ascending}})
		want := []string{"alpha", "Bravo", "Hank Scorpio"}
		for i, name := range want {
			if got[i].Name != name {
				t.Fatalf("got order %v, want %v", namesOf(got), want)
			}
		}
	})

	t.Run("name descending reverses", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: SortState{Key: "name", Direction: Descending}})
		if got[0].Name != "Hank Scorpio" || got[2].Name != "alpha" {
			t.Fatalf("got order %v", namesOf(got))
		}
	})

	t.Run("createdAt descending puts newest first", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: DefaultClientSort()})
		for i := 1; i < len(got); i++ {
			if got[i].CreatedAt.After(got[i-1].CreatedAt) {
				t.Fatalf("rows not in descending createdAt order: %v", namesOf(got))
			}
		}
	})

	t.Run("totalSpent ascending compares numerically", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: SortState{Key: "totalSpent", Direction: Ascending}})
		want := []string{"alpha", "Bravo", "Hank Scorpio"}
		for i, name := range want {
			if got[i].Name != name {
				t.Fatalf("got order %v, want %v", namesOf(got), want)
			}
		}
	})

	t.Run("invoiceCount descending", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: SortState{Key: "invoiceCount", Direction: Descending}})
		if got[0].InvoiceCount != 7 || got[2].InvoiceCount != 1 {
			t.Fatalf("got order %v", namesOf(got))
		}
	})

	t.Run("unknown key falls back to default", func(t *testing.T) {
		got := Clients(rows, ClientQuery{Sort: SortState{Key: "nope", Direction: Descending}})
		def := Clients(rows, ClientQuery{Sort: SortState{Key: "createdAt", Direction: Descending}})
		for i := range got {
			if got[i].ID != def[i].ID {
				t.Fatalf("fallback order differs from default at %d", i)
			}
		}
	})
}

func TestClientsStability(t *testing.T) {
	ts := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []ClientRow{
		{ID: uuid.New(), Name: "first", CreatedAt: ts},
		{ID: uuid.New(), Name: "second", CreatedAt: ts},
		{ID: uuid.New(), Name: "third", CreatedAt: ts},
	}
	got := Clients(rows, ClientQuery{Sort: SortState{Key: "createdAt", Direction: Ascending}})
	want := []string{"first", "second", "third"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("equal keys reordered: got %v, want %v", namesOf(got), want)
		}
	}
}

func TestClientsDoesNotMutateInput(t *testing.T) {
	rows := clientFixtures()
	firstBefore := rows[0].Name
	Clients(rows, ClientQuery{Sort: SortState{Key: "name", Direction: Ascending}})
	if rows[0].Name != firstBefore {
		t.Fatalf("input slice was reordered")
	}
}

func TestValidClientSortKey(t *testing.T) {
	for _, key := range []string{"name", "email", "companyName", "phone", "createdAt", "invoiceCount", "totalSpent"} {
		if !ValidClientSortKey(key) {
			t.Errorf("%q should be a valid sort key", key)
		}
	}
	if ValidClientSortKey("password") {
		t.Error("unexpected sort key accepted")
	}
}
