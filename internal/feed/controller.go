package feed

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/glabrego/reels-cli/internal/reels"
)

// LikedIDWriter is the write half of the like store.
type LikedIDWriter interface {
	SetLikedIDs(ctx context.Context, ids []string) error
}

// Mutation is one optimistic like toggle waiting to be persisted.
type Mutation struct {
	ReelID   string
	Liked    bool
	Delta    int
	LikedIDs []string
	seq      uint64
}

// Controller owns the in-memory feed and the mirror of the liked-ID set.
// All methods except Commit must be called from the UI goroutine.
//
// Like toggles are optimistic: the liked set and the reel's counter change
// immediately, and a failed Commit does not roll them back. The counter
// adjustment is display-only; the next Apply replaces it with server data.
type Controller struct {
	items []reels.Reel
	liked map[string]struct{}
	order []string
	seq   uint64

	store  LikedIDWriter
	report Reporter

	commitMu sync.Mutex
	written  uint64
}

func NewController(store LikedIDWriter, report Reporter) *Controller {
	if report == nil {
		report = LogReporter(nil)
	}
	return &Controller{
		items:  []reels.Reel{},
		liked:  make(map[string]struct{}),
		store:  store,
		report: report,
	}
}

// Apply replaces the feed with a load snapshot in one step. The snapshot's
// liked IDs seed the mirror only until the first toggle. After that the
// mirror holds every write this controller made, while the snapshot may have
// read storage before a concurrent Commit landed.
func (c *Controller) Apply(snap Snapshot) {
	if c.seq == 0 {
		c.order = append([]string(nil), snap.LikedIDs...)
		c.liked = make(map[string]struct{}, len(c.order))
		for _, id := range c.order {
			c.liked[id] = struct{}{}
		}
	}
	c.items = append(make([]reels.Reel, 0, len(snap.Reels)), snap.Reels...)
	c.syncFlags(c.items)
}

// Append adds the reels of a further page, skipping IDs already loaded. The
// in-memory liked set stays authoritative over the snapshot's copy because a
// toggle may still be persisting. It returns the number of reels added.
func (c *Controller) Append(snap Snapshot) int {
	seen := make(map[string]struct{}, len(c.items))
	for _, item := range c.items {
		seen[item.ID] = struct{}{}
	}
	added := 0
	for _, item := range snap.Reels {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		c.items = append(c.items, item)
		added++
	}
	c.syncFlags(c.items[len(c.items)-added:])
	return added
}

func (c *Controller) Len() int {
	return len(c.items)
}

func (c *Controller) Reel(index int) (reels.Reel, bool) {
	if index < 0 || index >= len(c.items) {
		return reels.Reel{}, false
	}
	return c.items[index], true
}

func (c *Controller) IndexOf(reelID string) int {
	return slices.IndexFunc(c.items, func(r reels.Reel) bool { return r.ID == reelID })
}

func (c *Controller) IsLiked(reelID string) bool {
	_, ok := c.liked[reelID]
	return ok
}

func (c *Controller) LikedIDs() []string {
	return slices.Clone(c.order)
}

// ToggleLike flips membership of reelID and patches the reel's like counter
// by one in the same direction. The returned mutation carries the list to
// persist with Commit.
func (c *Controller) ToggleLike(reelID string) Mutation {
	mut := Mutation{ReelID: reelID}
	if c.IsLiked(reelID) {
		delete(c.liked, reelID)
		c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == reelID })
		mut.Delta = -1
	} else {
		c.liked[reelID] = struct{}{}
		c.order = append(c.order, reelID)
		mut.Liked = true
		mut.Delta = 1
	}

	if i := c.IndexOf(reelID); i >= 0 {
		c.items[i].Likes += mut.Delta
		c.items[i].IsLiked = mut.Liked
	}

	c.seq++
	mut.seq = c.seq
	mut.LikedIDs = slices.Clone(c.order)
	return mut
}

// Commit persists a mutation. It is safe to call from a background
// goroutine. A commit older than one already attempted is skipped so that
// out-of-order completion cannot store a stale set. Failures are reported
// and returned; in-memory state is left as is.
func (c *Controller) Commit(ctx context.Context, mut Mutation) error {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	if mut.seq != 0 && mut.seq < c.written {
		return nil
	}
	if c.store == nil {
		return nil
	}
	c.written = mut.seq
	if err := c.store.SetLikedIDs(ctx, mut.LikedIDs); err != nil {
		err = fmt.Errorf("persist like for reel %s: %w", mut.ReelID, err)
		c.report("persist_like", err)
		return err
	}
	return nil
}

// ToggleLikeAndCommit toggles and persists synchronously.
func (c *Controller) ToggleLikeAndCommit(ctx context.Context, reelID string) (Mutation, error) {
	mut := c.ToggleLike(reelID)
	return mut, c.Commit(ctx, mut)
}

func (c *Controller) syncFlags(items []reels.Reel) {
	for i := range items {
		_, items[i].IsLiked = c.liked[items[i].ID]
	}
}
