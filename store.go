package mealform

import (
	"github.com/goliatone/go-mealform/internal/host"
	"github.com/goliatone/go-mealform/pkg/entity"
)

// Store aliases the host container that owns entries and mounted components.
type Store = host.Container

// Entry aliases entity.Entry.
type Entry = entity.Entry

// NewStore builds an empty store.
func NewStore(options ...StoreOption) *Store {
	return host.New(options...)
}

// NewStoreFromPayloads decodes raw store payloads (meals and workouts in the
// flat map format) and seeds a new store with them.
func NewStoreFromPayloads(raws []map[string]any, options ...StoreOption) (*Store, error) {
	entries, err := entity.DecodeAll(raws)
	if err != nil {
		return nil, err
	}
	store := host.New(options...)
	if err := store.Seed(entries...); err != nil {
		return nil, err
	}
	return store, nil
}

// StoreOption aliases host.Option.
type StoreOption = host.Option
