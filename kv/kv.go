package kv

import (
	"context"
	"encoding/json"
	"errors"
)

// Key namespaces. Prefix scanning is the only list primitive; every entity
// kind lives under its own colon-delimited prefix.
const (
	OrderPrefix     = "order:"
	MenuPrefix      = "menu:"
	LoyaltyPrefix   = "loyalty:"
	InventoryPrefix = "inventory:"
	RatingPrefix    = "rating:"
)

// ErrNotFound signals an absent key. Callers treat it as "no record yet",
// not as a failure.
var ErrNotFound = errors.New("kv: key not found")

// Entry is a single scanned key/value pair.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Store is the persistence gateway. Implementations guarantee
// read-after-write consistency per key for a single caller, and nothing
// across keys: ScanPrefix may observe a partial or stale view relative to
// concurrent writers, and returns entries in no particular order.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

// GetJSON loads key and decodes it into out. Returns ErrNotFound when the
// key is absent.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
