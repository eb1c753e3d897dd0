package receipt

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rxscan/medsearch/core"
	"github.com/rxscan/medsearch/storage"
)

var (
	// ErrRepositoryRequired is returned when a medicine repository is not provided.
	ErrRepositoryRequired = errors.New("medicine repository required")

	// ErrInvalidQuantity is returned for a line with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Line is one confirmed prescription line: a record the operator has
// accepted, with its dispensed quantity.
type Line struct {
	RecordId core.ID
	Quantity int
}

// Item is one hydrated receipt row.
type Item struct {
	Record   *core.MedicineRecord
	Quantity int
	Amount   float64
}

// Receipt is the priced output for one prescription.
type Receipt struct {
	Items []Item
	Total float64
}

// Build hydrates confirmed lines from the record store into a receipt.
// A line referencing a record absent from the current generation fails
// with storage.ErrNotFound.
func Build(ctx context.Context, repo storage.MedicineRepository, lines []Line) (*Receipt, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	r := &Receipt{Items: make([]Item, 0, len(lines))}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		rec, err := repo.GetMedicine(ctx, line.RecordId)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		amount := rec.Price * float64(line.Quantity)
		r.Items = append(r.Items, Item{Record: rec, Quantity: line.Quantity, Amount: amount})
		r.Total += amount
	}
	return r, nil
}

// WriteCSV writes the receipt as CSV rows with a header.
func (r *Receipt) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{
		"medicine_name", "ingredient_name", "specification",
		"classification", "manufacturer", "price", "quantity", "amount",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, item := range r.Items {
		row := []string{
			item.Record.MedicineName,
			item.Record.IngredientName,
			item.Record.Specification,
			item.Record.Classification.String(),
			item.Record.Manufacturer,
			strconv.FormatFloat(item.Record.Price, 'f', -1, 64),
			strconv.Itoa(item.Quantity),
			strconv.FormatFloat(item.Amount, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
