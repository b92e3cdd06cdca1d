// Package listing implements the in-memory filter/sort/search engine behind
// the client and invoice list views. It is pure: every call takes a snapshot
// of rows plus the active query and returns a fresh, ordered slice without
// touching its input.
package listing

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortState is the column-header state machine: clicking the active key
// flips the direction, clicking a new key resets to ascending.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

func (s SortState) Click(key string) SortState {
	if s.Key == key && s.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// newCollator returns a case-insensitive collator for locale-aware string
// ordering. Collators keep internal iterator state, so each engine pass
// gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// ordered applies the sort direction to a three-way comparison result.
func ordered(cmp int, dir Direction) bool {
	if dir == Descending {
		return cmp > 0
	}
	return cmp < 0
}

func byString[T any](get func(T) string) func(*collate.Collator, T, T) int {
	return func(col *collate.Collator, a, b T) int {
		return col.CompareString(get(a), get(b))
	}
}

func byTime[T any](get func(T) time.Time) func(*collate.Collator, T, T) int {
	return func(_ *collate.Collator, a, b T) int {
		return get(a).Compare(get(b))
	}
}

func byInt[T any](get func(T) int) func(*collate.Collator, T, T) int {
	return func(_ *collate.Collator, a, b T) int {
		switch va, vb := get(a), get(b); {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		return 0
	}
}

func byDecimal[T any](get func(T) decimal.Decimal) func(*collate.Collator, T, T) int {
	return func(_ *collate.Collator, a, b T) int {
		return get(a).Cmp(get(b))
	}
}
