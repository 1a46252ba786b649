package table

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/text/unicode/norm"
)

//go:embed schema.cue
var datasetSchema string

// Product is a dataset entry before it becomes a row. ID is optional; rows
// without one get an id from the generator.
type Product struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// DefaultProducts is the built-in dataset.
var DefaultProducts = []Product{
	{Name: "Nintendo switch", Price: 250},
	{Name: "Nintendo 3DS", Price: 199},
	{Name: "playstation 4", Price: 300},
}

// BuildRows turns products into rows, assigning ids from gen where missing.
// Names are NFC-normalized so that visually identical names compare equal.
func BuildRows(products []Product, gen IDGenerator) []Row {
	rows := make([]Row, len(products))
	for i, p := range products {
		id := p.ID
		if id == "" {
			id = gen.Generate()
		}
		rows[i] = NewRow(id, norm.NFC.String(p.Name), p.Price, p.Quantity)
	}
	return rows
}

// DefaultRows returns the built-in dataset as rows.
func DefaultRows(gen IDGenerator) []Row {
	return BuildRows(DefaultProducts, gen)
}

// LoadDataset reads a CUE dataset file and validates it against the
// embedded #Product schema. The file must define a top-level products list:
//
//	products: [
//		{name: "Nintendo switch", price: 250},
//		{name: "Nintendo 3DS", price: 199, quantity: 2},
//	]
func LoadDataset(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ParseDataset(data, path)
}

// ParseDataset is LoadDataset for in-memory CUE source. filename is used in
// error positions only.
func ParseDataset(data []byte, filename string) ([]Product, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(datasetSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	var out struct {
		Products []Product `json:"products"`
	}
	if err := unified.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	if len(out.Products) == 0 {
		return nil, fmt.Errorf("validate dataset: %s defines no products", filename)
	}

	seen := make(map[string]bool, len(out.Products))
	for _, p := range out.Products {
		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("validate dataset: duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}

	return out.Products, nil
}
