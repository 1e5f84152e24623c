package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/likes"
	"github.com/glabrego/reels-cli/internal/reels"
)

type ReelsClient interface {
	ListReels(ctx context.Context, cursor string, limit int) (reels.Page, error)
	GetReel(ctx context.Context, reelID string) (reels.Details, error)
}

type Service struct {
	client ReelsClient
	likes  likes.Store
	loader *feed.Loader
	report feed.Reporter
}

func NewService(client ReelsClient, store likes.Store, pageSize int, logger *log.Logger) *Service {
	report := feed.LogReporter(logger)
	return &Service{
		client: client,
		likes:  store,
		loader: feed.NewLoader(client, store, pageSize, report),
		report: report,
	}
}

// Load runs one feed load cycle. It never fails; see feed.Snapshot.
func (s *Service) Load(ctx context.Context) feed.Snapshot {
	return s.loader.Load(ctx)
}

func (s *Service) LoadMore(ctx context.Context, cursor string) feed.Snapshot {
	return s.loader.LoadMore(ctx, cursor)
}

func (s *Service) ReelDetails(ctx context.Context, reelID string) (reels.Details, error) {
	details, err := s.client.GetReel(ctx, reelID)
	if err != nil {
		return reels.Details{}, fmt.Errorf("fetch reel details: %w", err)
	}
	details.IsLiked = s.likes.IsLiked(ctx, details.ID)
	return details, nil
}

// NewController returns an engagement controller that persists through the
// service's like store and reports through its logger.
func (s *Service) NewController() *feed.Controller {
	return feed.NewController(s.likes, s.report)
}

func (s *Service) Likes() likes.Store {
	return s.likes
}
