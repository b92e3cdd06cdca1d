package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
)

// StatusAll is the sentinel that disables status filtering.
const StatusAll = "all"

// InvoiceRow is one renderable row of the invoice list. Client carries the
// client's display name, Amount the invoice total.
type InvoiceRow struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Client        string          `json:"client"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
}

type InvoiceQuery struct {
	Search string
	Status string
	Sort   SortState
}

func DefaultInvoiceSort() SortState {
	return SortState{Key: "issueDate", Direction: Descending}
}

var invoiceSortKeys = map[string]func(*collate.Collator, InvoiceRow, InvoiceRow) int{
	"invoiceNumber": byString(func(r InvoiceRow) string { return r.InvoiceNumber }),
	"client":        byString(func(r InvoiceRow) string { return r.Client }),
	"status":        byString(func(r InvoiceRow) string { return r.Status }),
	"amount":        byDecimal(func(r InvoiceRow) decimal.Decimal { return r.Amount }),
	"issueDate":     byTime(func(r InvoiceRow) time.Time { return r.IssueDate }),
	"dueDate":       byTime(func(r InvoiceRow) time.Time { return r.DueDate }),
}

func ValidInvoiceSortKey(key string) bool {
	_, ok := invoiceSortKeys[key]
	return ok
}

func matchesInvoice(r InvoiceRow, q InvoiceQuery) bool {
	lower := strings.ToLower(q.Search)
	matchesSearch := strings.Contains(strings.ToLower(r.InvoiceNumber), lower) ||
		strings.Contains(strings.ToLower(r.Client), lower)

	matchesStatus := q.Status == "" || q.Status == StatusAll || r.Status == q.Status

	return matchesSearch && matchesStatus
}

// Invoices returns the ordered subsequence of rows matching the query.
func Invoices(rows []InvoiceRow, q InvoiceQuery) []InvoiceRow {
	out := make([]InvoiceRow, 0, len(rows))
	for _, r := range rows {
		if matchesInvoice(r, q) {
			out = append(out, r)
		}
	}

	cmp, ok := invoiceSortKeys[q.Sort.Key]
	if !ok {
		cmp = invoiceSortKeys[DefaultInvoiceSort().Key]
	}
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return ordered(cmp(col, out[i], out[j]), q.Sort.Direction)
	})
	return out
}
