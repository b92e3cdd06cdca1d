package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
)

// ClientRow is one renderable row of the client list: the client's contact
// fields plus aggregates derived upstream.
type ClientRow struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	CompanyName  string          `json:"companyName"`
	Phone        string          `json:"phone"`
	CreatedAt    time.Time       `json:"createdAt"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
}

type ClientQuery struct {
	Search string
	Sort   SortState
}

func DefaultClientSort() SortState {
	return SortState{Key: "createdAt", Direction: Descending}
}

// clientSortKeys is the allow-list of sortable client columns, each bound
// to a comparator of the right semantic type.
var clientSortKeys = map[string]func(*collate.Collator, ClientRow, ClientRow) int{
	"name":         byString(func(r ClientRow) string { return r.Name }),
	"email":        byString(func(r ClientRow) string { return r.Email }),
	"companyName":  byString(func(r ClientRow) string { return r.CompanyName }),
	"phone":        byString(func(r ClientRow) string { return r.Phone }),
	"createdAt":    byTime(func(r ClientRow) time.Time { return r.CreatedAt }),
	"invoiceCount": byInt(func(r ClientRow) int { return r.InvoiceCount }),
	"totalSpent":   byDecimal(func(r ClientRow) decimal.Decimal { return r.TotalSpent }),
}

func ValidClientSortKey(key string) bool {
	_, ok := clientSortKeys[key]
	return ok
}

// matchesClient reports whether the search term appears in any searchable
// field. Text fields are case-folded; phone is matched verbatim.
func matchesClient(r ClientRow, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), lower) ||
		strings.Contains(strings.ToLower(r.Email), lower) ||
		strings.Contains(strings.ToLower(r.CompanyName), lower) ||
		strings.Contains(r.Phone, term)
}

// Clients returns the ordered subsequence of rows matching the query.
func Clients(rows []ClientRow, q ClientQuery) []ClientRow {
	out := make([]ClientRow, 0, len(rows))
	for _, r := range rows {
		if matchesClient(r, q.Search) {
			out = append(out, r)
		}
	}

	cmp, ok := clientSortKeys[q.Sort.Key]
	if !ok {
		cmp = clientSortKeys[DefaultClientSort().Key]
	}
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return ordered(cmp(col, out[i], out[j]), q.Sort.Direction)
	})
	return out
}
