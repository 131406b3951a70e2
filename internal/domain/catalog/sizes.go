package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// SizeStock holds the available quantity for a single size label.
type SizeStock struct {
	Quantity int `json:"quantity"`
}

// UnmarshalJSON accepts both the canonical object form {"quantity": n}
// and a bare number, which legacy data sources still emit.
func (s *SizeStock) UnmarshalJSON(data []byte) error {
	var qty int
	if err := json.Unmarshal(data, &qty); err == nil {
		s.Quantity = qty
		return nil
	}

	var obj struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Quantity = obj.Quantity
	return nil
}

// SizeChart maps size labels (e.g. "42", "42.5") to their stock.
// It is stored as a JSONB column.
type SizeChart map[string]SizeStock

// Value implements driver.Valuer for GORM
func (c SizeChart) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM
func (c *SizeChart) Scan(value interface{}) error {
	if value == nil {
		*c = SizeChart{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported size chart column type %T", value)
	}

	if len(data) == 0 {
		*c = SizeChart{}
		return nil
	}
	return json.Unmarshal(data, c)
}

// Normalize returns a copy with negative quantities clamped to zero.
func (c SizeChart) Normalize() SizeChart {
	out := make(SizeChart, len(c))
	for label, stock := range c {
		if stock.Quantity < 0 {
			stock.Quantity = 0
		}
		out[label] = stock
	}
	return out
}

// TotalQuantity returns the stock summed across all sizes.
func (c SizeChart) TotalQuantity() int {
	total := 0
	for _, stock := range c {
		total += stock.Quantity
	}
	return total
}

// DefaultSizeLabels is the size run assigned to products imported without
// per-size stock.
var DefaultSizeLabels = []string{"46", "47", "48", "49", "50", "51", "52", "53", "54", "55", "56", "57"}

// SpreadQuantity distributes a legacy total quantity evenly over the given
// size labels. Each label receives total/len(labels); the remainder is handed
// out one unit at a time to the leading labels. Invalid totals yield all
// zeros.
func SpreadQuantity(total int, labels []string) (SizeChart, error) {
	if len(labels) == 0 {
		return nil, errors.New("at least one size label is required")
	}

	if total < 0 {
		total = 0
	}

	base := total / len(labels)
	remainder := total % len(labels)

	chart := make(SizeChart, len(labels))
	for i, label := range labels {
		qty := base
		if i < remainder {
			qty++
		}
		chart[label] = SizeStock{Quantity: qty}
	}
	return chart, nil
}
