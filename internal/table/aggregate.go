package table

// Totals are the column sums shown in the table footer.
type Totals struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Aggregate sums price, quantity and subtotal over rows.
// An empty slice yields zero totals.
func Aggregate(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		t.Price += r.Price
		t.Quantity += r.Quantity
		t.Subtotal += r.Subtotal
	}
	return t
}
