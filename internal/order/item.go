package order

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/ginzalimited/orderdesk/internal/pricing"
)

var (
	ErrCategoryRequired = errors.New("category is required")
	ErrItemNameRequired = errors.New("item name is required")
	ErrUOMRequired      = errors.New("unit of measure is required")
	ErrQuantityInvalid  = errors.New("quantity must be a positive number")
	ErrRateInvalid      = errors.New("rate must be a positive number")
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Resolve validates the draft and freezes it into an Item with a fresh
// identifier and a computed total. pendingSearch is the catalog search
// text, used as the item name when none was chosen from the catalog.
// Any validation failure returns before any state is produced.
func (d ItemDraft) Resolve(pendingSearch string) (Item, error) {
	name := strings.TrimSpace(d.ItemName)
	if name == "" {
		name = strings.TrimSpace(pendingSearch)
	}

	if d.Category == "" {
		return Item{}, ErrCategoryRequired
	}
	if name == "" {
		return Item{}, ErrItemNameRequired
	}
	if d.UOM == "" {
		return Item{}, ErrUOMRequired
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(d.Quantity), 64)
	if err != nil || quantity <= 0 {
		return Item{}, ErrQuantityInvalid
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(d.Rate), 64)
	if err != nil || rate <= 0 {
		return Item{}, ErrRateInvalid
	}
	// Absent or non-numeric discount means no discount.
	discount, err := strconv.ParseFloat(strings.TrimSpace(d.Discount), 64)
	if err != nil {
		discount = 0
	}

	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = StdSentinel
	}
	width := strings.TrimSpace(d.Width)
	if width == "" {
		width = StdSentinel
	}

	id, err := uuid.NewV4()
	if err != nil {
		return Item{}, err
	}

	return Item{
		ID:           id,
		Category:     d.Category,
		ItemName:     name,
		ManualItem:   d.ManualItem,
		Color:        color,
		Width:        width,
		UOM:          d.UOM,
		Quantity:     quantity,
		Rate:         rate,
		Discount:     discount,
		DispatchDate: d.DispatchDate,
		Remark:       d.Remark,
		Total:        pricing.Total(quantity, rate, discount),
	}, nil
}
