package likes

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Key is the storage key holding the JSON array of liked reel IDs.
const Key = "likedReels"

// Store is the durable set of reel IDs the local user has liked.
// Implementations never panic; read failures degrade to "not liked".
type Store interface {
	LikedIDs(ctx context.Context) []string
	SetLikedIDs(ctx context.Context, ids []string) error
	AddLikedID(ctx context.Context, id string) error
	RemoveLikedID(ctx context.Context, id string) error
	IsLiked(ctx context.Context, id string) bool
	Clear(ctx context.Context) error
}

// KV is the single-key storage the store writes through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type PersistedStore struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewPersistedStore(kv KV, logger *log.Logger) *PersistedStore {
	if logger == nil {
		logger = log.Default()
	}
	return &PersistedStore{kv: kv, key: Key, logger: logger.With("component", "likes")}
}

func (s *PersistedStore) LikedIDs(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("read liked reels", "err", err)
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Error("decode liked reels", "err", err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

func (s *PersistedStore) SetLikedIDs(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Error("encode liked reels", "err", err)
		return fmt.Errorf("encode liked reels: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error("save liked reels", "count", len(ids), "err", err)
		return fmt.Errorf("save liked reels: %w", err)
	}
	return nil
}

func (s *PersistedStore) AddLikedID(ctx context.Context, id string) error {
	current := s.LikedIDs(ctx)
	if slices.Contains(current, id) {
		return nil
	}
	return s.SetLikedIDs(ctx, append(current, id))
}

func (s *PersistedStore) RemoveLikedID(ctx context.Context, id string) error {
	current := s.LikedIDs(ctx)
	if !slices.Contains(current, id) {
		return nil
	}
	return s.SetLikedIDs(ctx, slices.DeleteFunc(current, func(v string) bool { return v == id }))
}

func (s *PersistedStore) IsLiked(ctx context.Context, id string) bool {
	return slices.Contains(s.LikedIDs(ctx), id)
}

func (s *PersistedStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Error("clear liked reels", "err", err)
		return fmt.Errorf("clear liked reels: %w", err)
	}
	return nil
}
