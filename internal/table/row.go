package table

// Row is a single product line.
type Row struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// NewRow builds a row with its subtotal derived from price and quantity.
func NewRow(id, name string, price float64, quantity int) Row {
	return Row{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Subtotal: subtotal(price, quantity),
	}
}

func subtotal(price float64, quantity int) float64 {
	return price * float64(quantity)
}
