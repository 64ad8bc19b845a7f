package users

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/avoronov/blogkeeper/internal/repositories/kv"
)

// KVRepository implements Repository over the key/value port.
type KVRepository struct {
	kv kv.Repository
}

func NewKVRepository(store kv.Repository) *KVRepository {
	return &KVRepository{kv: store}
}

func userKey(email string) string {
	return "user_" + strings.ToLower(strings.TrimSpace(email))
}

func (r *KVRepository) GetByEmail(ctx context.Context, email string) (*Record, error) {
	if r.kv == nil {
		return nil, common.ErrAccountNotFound
	}

	raw, err := r.kv.Get(ctx, userKey(email))
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}
	if raw == nil {
		return nil, common.ErrAccountNotFound
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}
	return &rec, nil
}

func (r *KVRepository) Create(ctx context.Context, rec *Record) error {
	if r.kv == nil {
		return nil
	}

	existing, err := r.kv.Get(ctx, userKey(rec.Email))
	if err != nil {
		return fmt.Errorf("failed to check user record: %w", err)
	}
	if existing != nil {
		return common.ErrAccountExists
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := r.kv.Set(ctx, userKey(rec.Email), raw); err != nil {
		return fmt.Errorf("failed to store user record: %w", err)
	}
	return nil
}
