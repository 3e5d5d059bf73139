// Package ledger persists the client-side view of purchases, return
// requests, and session state in a local bbolt database. The ledgers are
// process-local caches: chain truth lives in the program's accounts, and
// nothing here is synchronized across devices.
//
// Values are stored as JSON so a write followed by a read yields an equal
// value.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketPurchases = []byte("purchases")
	bucketReturns   = []byte("return_requests")
	bucketSession   = []byte("session")
)

// Session bucket keys.
var (
	keySelectedStore = []byte("selected_store")
	keyCart          = []byte("cart")
)

// Store wraps a bbolt database holding the local ledgers.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the ledger database at dbPath. The parent directory
// is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketPurchases, bucketReturns, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Item is one purchased line item as recorded locally.
type Item struct {
	ProductID string `json:"product_id"` // UUID string
	Name      string `json:"name"`
	Price     uint64 `json:"price"` // lamports per unit
	Quantity  uint64 `json:"quantity"`
}

// PurchaseRecord is the local record of a confirmed purchase. It is created
// only after the purchase transaction reaches a terminal success state, and
// mutated only to flag a completed return.
type PurchaseRecord struct {
	ID                   string `json:"id"` // transaction signature
	StoreID              string `json:"store_id"`
	BuyerAddress         string `json:"buyer_address"`
	Items                []Item `json:"items"`
	TotalAmount          uint64 `json:"total_amount"` // lamports
	Timestamp            int64  `json:"timestamp"`    // unix seconds
	TransactionSignature string `json:"transaction_signature"`
	IsReturned           bool   `json:"is_returned,omitempty"`
}

// ReturnStatus is the lifecycle state of a return request. It is advanced by
// an out-of-band admin flow, never re-derived from chain.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "Pending"
	ReturnApproved ReturnStatus = "Approved"
	ReturnRejected ReturnStatus = "Rejected"
)

// ReturnRequest is the purely local record of a requested return.
type ReturnRequest struct {
	ID                   string       `json:"id"`
	PurchaseID           string       `json:"purchase_id"`
	Items                []Item       `json:"items"`
	Reason               string       `json:"reason"`
	Status               ReturnStatus `json:"status"`
	TransactionSignature string       `json:"transaction_signature,omitempty"` // refund tx, once issued
}

// PutPurchase stores a new purchase record. The id must be unique.
func (s *Store) PutPurchase(rec *PurchaseRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: purchase id", ErrInvalidRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPurchases)
		if b.Get([]byte(rec.ID)) != nil {
			return fmt.Errorf("%w: purchase %s", ErrDuplicateRecord, rec.ID)
		}
		return putJSON(b, []byte(rec.ID), rec)
	})
}

// Purchase returns the purchase record with the given id.
func (s *Store) Purchase(id string) (*PurchaseRecord, error) {
	var rec PurchaseRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketPurchases), []byte(id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Purchases returns all purchase records in key order.
func (s *Store) Purchases() ([]*PurchaseRecord, error) {
	var out []*PurchaseRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPurchases).ForEach(func(_, v []byte) error {
			var rec PurchaseRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("ledger: decode purchase: %w", err)
			}
			out = append(out, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkReturned flags a purchase as returned. Returns ErrAlreadyReturned if
// the flag is already set.
func (s *Store) MarkReturned(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPurchases)
		var rec PurchaseRecord
		if err := getJSON(b, []byte(id), &rec); err != nil {
			return err
		}
		if rec.IsReturned {
			return fmt.Errorf("%w: purchase %s", ErrAlreadyReturned, id)
		}
		rec.IsReturned = true
		return putJSON(b, []byte(id), &rec)
	})
}

// PutReturnRequest stores a new return request.
func (s *Store) PutReturnRequest(req *ReturnRequest) error {
	if req == nil || req.ID == "" || req.PurchaseID == "" {
		return fmt.Errorf("%w: return request ids", ErrInvalidRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketReturns)
		if b.Get([]byte(req.ID)) != nil {
			return fmt.Errorf("%w: return request %s", ErrDuplicateRecord, req.ID)
		}
		return putJSON(b, []byte(req.ID), req)
	})
}

// ReturnRequestByID returns the return request with the given id.
func (s *Store) ReturnRequestByID(id string) (*ReturnRequest, error) {
	var req ReturnRequest
	err := s.db.View(func(tx *bbolt.Tx) error {
		return getJSON(tx.Bucket(bucketReturns), []byte(id), &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ReturnRequests returns all return requests in key order.
func (s *Store) ReturnRequests() ([]*ReturnRequest, error) {
	var out []*ReturnRequest
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketReturns).ForEach(func(_, v []byte) error {
			var req ReturnRequest
			if err := json.Unmarshal(v, &req); err != nil {
				return fmt.Errorf("ledger: decode return request: %w", err)
			}
			out = append(out, &req)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReturnRequestsForPurchase returns the requests referencing a purchase.
func (s *Store) ReturnRequestsForPurchase(purchaseID string) ([]*ReturnRequest, error) {
	all, err := s.ReturnRequests()
	if err != nil {
		return nil, err
	}
	var out []*ReturnRequest
	for _, req := range all {
		if req.PurchaseID == purchaseID {
			out = append(out, req)
		}
	}
	return out, nil
}

// SetReturnStatus advances a return request's status, optionally attaching
// the refund transaction signature.
func (s *Store) SetReturnStatus(id string, status ReturnStatus, refundSig string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketReturns)
		var req ReturnRequest
		if err := getJSON(b, []byte(id), &req); err != nil {
			return err
		}
		req.Status = status
		if refundSig != "" {
			req.TransactionSignature = refundSig
		}
		return putJSON(b, []byte(id), &req)
	})
}

func putJSON(b *bbolt.Bucket, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ledger: encode: %w", err)
	}
	return b.Put(key, data)
}

func getJSON(b *bbolt.Bucket, key []byte, v interface{}) error {
	data := b.Get(key)
	if data == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ledger: decode: %w", err)
	}
	return nil
}
