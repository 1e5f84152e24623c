package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/reels"
)

type Service interface {
	Load(ctx context.Context) feed.Snapshot
	LoadMore(ctx context.Context, cursor string) feed.Snapshot
	ReelDetails(ctx context.Context, reelID string) (reels.Details, error)
}

// Committer persists like mutations; *feed.Controller implements it.
type Committer interface {
	Commit(ctx context.Context, mut feed.Mutation) error
}

type LoadedMsg struct {
	Generation int
	Snapshot   feed.Snapshot
	Duration   time.Duration
	Source     string
}

type LoadMoreMsg struct {
	Generation int
	Snapshot   feed.Snapshot
}

type LikePersistedMsg struct {
	ReelID string
	Liked  bool
}

type LikePersistErrorMsg struct {
	ReelID string
	Err    error
}

type DetailsLoadedMsg struct {
	ReelID  string
	Details reels.Details
}

type DetailsErrorMsg struct {
	ReelID string
	Err    error
}

type HookDoneMsg struct {
	Status string
}

type HookErrorMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

// LoadCmd runs one load cycle. The snapshot is returned as is even when the
// fetch failed; see feed.Snapshot.
func LoadCmd(service Service, generation int, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		snap := service.Load(ctx)
		return LoadedMsg{Generation: generation, Snapshot: snap, Duration: time.Since(start), Source: source}
	}
}

func LoadMoreCmd(service Service, generation int, cursor string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()

		return LoadMoreMsg{Generation: generation, Snapshot: service.LoadMore(ctx, cursor)}
	}
}

func PersistLikeCmd(committer Committer, mut feed.Mutation) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := committer.Commit(ctx, mut); err != nil {
			return LikePersistErrorMsg{ReelID: mut.ReelID, Err: err}
		}
		return LikePersistedMsg{ReelID: mut.ReelID, Liked: mut.Liked}
	}
}

func LoadDetailsCmd(service Service, reelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		details, err := service.ReelDetails(ctx, reelID)
		if err != nil {
			return DetailsErrorMsg{ReelID: reelID, Err: err}
		}
		return DetailsLoadedMsg{ReelID: reelID, Details: details}
	}
}

// HookCmd runs a caller-supplied reel action such as comment or check-in.
func HookCmd(name string, reel reels.Reel, fn func(reels.Reel) error) tea.Cmd {
	return func() tea.Msg {
		if fn == nil {
			return HookErrorMsg{Err: fmt.Errorf("%s is not available", name)}
		}
		if err := fn(reel); err != nil {
			return HookErrorMsg{Err: fmt.Errorf("%s for reel %s: %w", name, reel.ID, err)}
		}
		return HookDoneMsg{Status: fmt.Sprintf("%s: %s", name, reel.Title)}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened video in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Video link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
