package feed

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/glabrego/reels-cli/internal/reels"
)

// Source is the remote reel feed.
type Source interface {
	ListReels(ctx context.Context, cursor string, limit int) (reels.Page, error)
}

// LikedIDReader is the read half of the like store used during a load.
type LikedIDReader interface {
	LikedIDs(ctx context.Context) []string
}

// Reporter receives failures that are recovered locally and never surfaced
// to the caller.
type Reporter func(op string, err error)

// LogReporter reports failures at error level on logger.
func LogReporter(logger *log.Logger) Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return func(op string, err error) {
		logger.Error("recovered failure", "op", op, "err", err)
	}
}

// Snapshot is the result of one load cycle. Reels and LikedIDs are applied
// to screen state together. Err is informational: a failed fetch is an
// empty Reels slice, never a returned error.
type Snapshot struct {
	Reels    []reels.Reel
	LikedIDs []string
	Cursor   string
	HasMore  bool
	Err      error
}

type Loader struct {
	source   Source
	likes    LikedIDReader
	pageSize int
	report   Reporter
}

func NewLoader(source Source, likes LikedIDReader, pageSize int, report Reporter) *Loader {
	if pageSize < 1 {
		pageSize = reels.DefaultPageSize
	}
	if report == nil {
		report = LogReporter(nil)
	}
	return &Loader{source: source, likes: likes, pageSize: pageSize, report: report}
}

// Load fetches the first page and the liked-ID set in one cycle.
func (l *Loader) Load(ctx context.Context) Snapshot {
	return l.load(ctx, "")
}

// LoadMore fetches the page after cursor. The liked-ID set is read again so
// the appended reels carry current flags.
func (l *Loader) LoadMore(ctx context.Context, cursor string) Snapshot {
	if cursor == "" {
		return Snapshot{Reels: []reels.Reel{}, LikedIDs: l.likedIDs(ctx)}
	}
	return l.load(ctx, cursor)
}

func (l *Loader) load(ctx context.Context, cursor string) (snap Snapshot) {
	snap.Reels = []reels.Reel{}
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("load reels panicked: %v", r)
			l.report("load", err)
			snap = Snapshot{Reels: []reels.Reel{}, LikedIDs: l.likedIDs(ctx), Err: err}
		}
	}()

	page, err := l.source.ListReels(ctx, cursor, l.pageSize)
	snap.LikedIDs = l.likedIDs(ctx)
	if err != nil {
		err = fmt.Errorf("load reels: %w", err)
		l.report("load", err)
		snap.Err = err
		return snap
	}

	if page.Reels != nil {
		snap.Reels = page.Reels
	}
	snap.Cursor = page.Cursor
	snap.HasMore = page.HasMore
	markLiked(snap.Reels, snap.LikedIDs)
	return snap
}

func (l *Loader) likedIDs(ctx context.Context) []string {
	if l.likes == nil {
		return []string{}
	}
	return l.likes.LikedIDs(ctx)
}

func markLiked(items []reels.Reel, likedIDs []string) {
	liked := make(map[string]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for i := range items {
		_, items[i].IsLiked = liked[items[i].ID]
	}
}
