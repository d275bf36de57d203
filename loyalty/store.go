package loyalty

import (
	"context"
	"errors"

	"brewhouse/kv"
)

// LoadBalance reads the persisted balance for a user. An absent record
// means no points yet, not an error.
func LoadBalance(ctx context.Context, store kv.Store, userID string) (int, error) {
	var points int
	err := kv.GetJSON(ctx, store, kv.LoyaltyPrefix+userID, &points)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return points, nil
}

// SaveBalance overwrites the persisted balance. Idempotent; a retry after a
// partial checkout failure converges on the same value.
func SaveBalance(ctx context.Context, store kv.Store, userID string, points int) error {
	return store.Set(ctx, kv.LoyaltyPrefix+userID, points)
}
