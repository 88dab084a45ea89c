package models

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadSnapshot decodes the JSON value stored under key into v.
// It returns ErrKeyNotFound when nothing is stored and ErrCorruptState when
// the stored bytes do not decode.
func LoadSnapshot(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptState, key, err)
	}
	return nil
}

// SaveSnapshot stores v under key as JSON.
func SaveSnapshot(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
