package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one product/size line in a cart.
type Item struct {
	ProductID     uuid.UUID        `json:"product_id"`
	Name          string           `json:"name"`
	Size          string           `json:"size,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Quantity      int              `json:"quantity"`
	ImageURL      string           `json:"image_url,omitempty"`
}

// Key identifies a line inside the cart. The same product in two sizes is
// two separate lines.
func (i Item) Key() string {
	return i.ProductID.String() + ":" + i.Size
}

// Cart is the per-user shopping cart.
type Cart struct {
	UserID uuid.UUID `json:"user_id"`
	Items  []Item    `json:"items"`
}

// New returns an empty cart for the user
func New(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID, Items: []Item{}}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem adds a line to the cart. A line for the same product and size
// merges quantities instead of duplicating. Quantities below one are
// raised to one.
func (c *Cart) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].Key() == item.Key() {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the quantity of the line with the given key. A quantity
// of zero or less removes the line. Returns false when no line matches.
func (c *Cart) SetQuantity(key string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Key() != key {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return true
	}
	return false
}

// RemoveItem removes the line with the given key. Returns false when no
// line matches.
func (c *Cart) RemoveItem(key string) bool {
	return c.SetQuantity(key, 0)
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// TotalQuantity returns the number of units in the cart
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Totals summarizes the cart's pricing.
type Totals struct {
	Total           decimal.Decimal `json:"total"`
	OriginalTotal   decimal.Decimal `json:"original_total"`
	Savings         decimal.Decimal `json:"savings"`
	DiscountPercent int64           `json:"discount_percent"`
}

// ComputeTotals derives the cart totals. Lines without an original price
// count their unit price on both sides, so savings only accrue from
// discounted lines.
func (c *Cart) ComputeTotals() Totals {
	total := decimal.Zero
	originalTotal := decimal.Zero

	for _, item := range c.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(item.UnitPrice.Mul(qty))

		unitOriginal := item.UnitPrice
		if item.OriginalPrice != nil {
			unitOriginal = *item.OriginalPrice
		}
		originalTotal = originalTotal.Add(unitOriginal.Mul(qty))
	}

	savings := originalTotal.Sub(total)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	var discountPercent int64
	if originalTotal.IsPositive() {
		discountPercent = savings.Div(originalTotal).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	return Totals{
		Total:           total,
		OriginalTotal:   originalTotal,
		Savings:         savings,
		DiscountPercent: discountPercent,
	}
}
