package checkout

import "github.com/Jeffrey-hendell/shaypos/internal/domain"

// Line is one row of the cart. UnitPrice is a snapshot taken when the
// product is first added; a later catalog price change does not rewrite an
// existing line. MaxStock starts as the add-time stock and follows the
// freshest stock seen on later mutations, so Quantity <= MaxStock always
// holds.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	MaxStock  int     `json:"max_stock"`
}

// Cart holds the line items of a single checkout session. At most one line
// exists per product id.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Find(productID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// AddItem adds one unit of the product. A product already in the cart gets
// its quantity incremented instead of a second line. The product carries the
// freshest known stock, which bounds the resulting quantity.
// Returns true when a new line was created.
func (c *Cart) AddItem(p domain.Product) (bool, error) {
	line := c.Find(p.ID)
	if line == nil {
		if p.Stock < 1 {
			return false, ErrOutOfStock
		}
		c.Lines = append(c.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice(),
			ImageURL:  p.ImageURL,
			Quantity:  1,
			MaxStock:  p.Stock,
		})
		return true, nil
	}

	if line.Quantity >= p.Stock {
		return false, ErrOutOfStock
	}
	line.Quantity++
	line.MaxStock = p.Stock
	return false, nil
}

// UpdateQuantity sets a line's quantity to exactly quantity. Anything below 1
// removes the line. The stock argument is the freshest known stock for the
// product and bounds the new quantity.
func (c *Cart) UpdateQuantity(productID string, quantity, stock int) error {
	if quantity < 1 {
		return c.RemoveItem(productID)
	}

	line := c.Find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	if quantity > stock {
		return ErrOutOfStock
	}
	line.Quantity = quantity
	line.MaxStock = stock
	return nil
}

func (c *Cart) RemoveItem(productID string) error {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Subtotal sums unit price times quantity over all lines. No rounding is
// applied; presentation decides how to format amounts.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// DiscountAmount is the checkout-level discount taken off the subtotal. It is
// independent of any per-product discount already folded into unit prices.
func (c *Cart) DiscountAmount(discountPercent float64) float64 {
	return c.Subtotal() * discountPercent / 100
}

func (c *Cart) Total(discountPercent float64) float64 {
	return c.Subtotal() - c.DiscountAmount(discountPercent)
}
