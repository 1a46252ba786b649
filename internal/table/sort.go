package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByQuantity SortKey = "quantity"
	SortBySubtotal SortKey = "subtotal"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{SortByName, SortByPrice, SortByQuantity, SortBySubtotal}

// Valid reports whether k is one of SortKeys.
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys, k)
}

// Label returns the column header text, capitalized.
func (k SortKey) Label() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Valid reports whether d is Ascending or Descending.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortState is the active sort key and direction.
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// InitialSortState is the state of a freshly created Store.
var InitialSortState = SortState{Key: SortByName, Direction: Ascending}

// ParseSortKey validates a textual sort key.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", errInvalidArgument("unknown sort key %q", s)
	}
	return k, nil
}

// ParseDirection validates a textual direction. "ascending" and
// "descending" are accepted as aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", errInvalidArgument("unknown sort direction %q", s)
}

// Compare is the three-way comparison used for sorting: names compare
// lexicographically, numeric columns numerically. The sign flips for
// Descending.
//
// Compare panics if key is not one of SortKeys. Validate untrusted keys with
// SortKey.Valid or ParseSortKey first; Store.ApplySort does this and returns
// an INVALID_ARGUMENT error instead.
func Compare(a, b Row, key SortKey, dir Direction) int {
	var c int
	switch key {
	case SortByName:
		c = strings.Compare(a.Name, b.Name)
	case SortByPrice:
		c = cmp.Compare(a.Price, b.Price)
	case SortByQuantity:
		c = cmp.Compare(a.Quantity, b.Quantity)
	case SortBySubtotal:
		c = cmp.Compare(a.Subtotal, b.Subtotal)
	default:
		panic(fmt.Sprintf("table: unknown sort key %q", key))
	}
	if dir == Descending {
		return -c
	}
	return c
}

// Sorted returns a stably sorted copy of rows. The input is not modified.
// Like Compare, it panics on an unknown key unless rows has fewer than two
// elements.
func Sorted(rows []Row, key SortKey, dir Direction) []Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		return Compare(a, b, key, dir)
	})
	return out
}
