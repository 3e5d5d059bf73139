package ledger

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

// CartEntry is one line of the in-progress cart. Quantity is always at
// least one; removing a product removes its entry.
type CartEntry struct {
	ProductID string `json:"product_id"` // UUID string
	Name      string `json:"name"`
	Price     uint64 `json:"price"` // lamports per unit
	Quantity  uint64 `json:"quantity"`
}

// SetSelectedStore records the store PDA the session is shopping at.
// An empty address clears the selection.
func (s *Store) SetSelectedStore(addr string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if addr == "" {
			return b.Delete(keySelectedStore)
		}
		return b.Put(keySelectedStore, []byte(addr))
	})
}

// SelectedStore returns the selected store address, or "" when none is set.
func (s *Store) SelectedStore() (string, error) {
	var addr string
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(keySelectedStore); v != nil {
			addr = string(v)
		}
		return nil
	})
	return addr, err
}

// SaveCart persists the cart contents. An empty cart clears the key.
func (s *Store) SaveCart(entries []CartEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if len(entries) == 0 {
			return b.Delete(keyCart)
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("ledger: encode cart: %w", err)
		}
		return b.Put(keyCart, data)
	})
}

// LoadCart returns the persisted cart, or nil when empty.
func (s *Store) LoadCart() ([]CartEntry, error) {
	var entries []CartEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSession).Get(keyCart)
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &entries); err != nil {
			return fmt.Errorf("ledger: decode cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearCart removes the persisted cart.
func (s *Store) ClearCart() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyCart)
	})
}
