package pos

import (
	"github.com/sodaplabs/sodap-go/instruction"
	"github.com/sodaplabs/sodap-go/ledger"
)

// AddItem adds a product to the cart, or raises the quantity of an existing
// line item. A zero quantity is rejected: removal goes through SetQuantity.
func (c *Coordinator) AddItem(item ledger.CartEntry) error {
	if item.Quantity == 0 {
		return ErrInvalidQuantity
	}
	cart, err := c.ledger.LoadCart()
	if err != nil {
		return err
	}
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity += item.Quantity
			return c.ledger.SaveCart(cart)
		}
	}
	return c.ledger.SaveCart(append(cart, item))
}

// SetQuantity sets the quantity of a cart line item. A quantity of zero
// removes the item; every retained line item has quantity at least one.
func (c *Coordinator) SetQuantity(productID string, quantity uint64) error {
	cart, err := c.ledger.LoadCart()
	if err != nil {
		return err
	}
	for i := range cart {
		if cart[i].ProductID != productID {
			continue
		}
		if quantity == 0 {
			cart = append(cart[:i], cart[i+1:]...)
		} else {
			cart[i].Quantity = quantity
		}
		return c.ledger.SaveCart(cart)
	}
	return nil
}

// RemoveItem removes a product from the cart entirely.
func (c *Coordinator) RemoveItem(productID string) error {
	return c.SetQuantity(productID, 0)
}

// Cart returns the current cart contents.
func (c *Coordinator) Cart() ([]ledger.CartEntry, error) {
	return c.ledger.LoadCart()
}

// ClearCart empties the cart.
func (c *Coordinator) ClearCart() error {
	return c.ledger.ClearCart()
}

// CartTotal returns the cart total in lamports, computed with checked
// arithmetic.
func (c *Coordinator) CartTotal() (uint64, error) {
	cart, err := c.ledger.LoadCart()
	if err != nil {
		return 0, err
	}
	prices := make([]uint64, len(cart))
	quantities := make([]uint64, len(cart))
	for i, entry := range cart {
		prices[i] = entry.Price
		quantities[i] = entry.Quantity
	}
	return instruction.CartTotal(prices, quantities)
}
