package feed

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"sync"
	"testing"

	"github.com/glabrego/reels-cli/internal/likes"
	"github.com/glabrego/reels-cli/internal/reels"
)

type recordingWriter struct {
	mu     sync.Mutex
	writes [][]string
	err    error
}

func (w *recordingWriter) SetLikedIDs(_ context.Context, ids []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.writes = append(w.writes, append([]string(nil), ids...))
	return nil
}

func (w *recordingWriter) last() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.writes) == 0 {
		return nil
	}
	return w.writes[len(w.writes)-1]
}

func sampleSnapshot(liked ...string) Snapshot {
	return Snapshot{
		Reels: []reels.Reel{
			{ID: "R1", Likes: 10},
			{ID: "R2", Likes: 5},
		},
		LikedIDs: liked,
	}
}

func TestController_ApplySetsFlagsTogether(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot("R2"))

	r1, _ := c.Reel(0)
	r2, _ := c.Reel(1)
	if r1.IsLiked || !r2.IsLiked {
		t.Fatalf("expected R1 unliked and R2 liked, got %+v %+v", r1, r2)
	}
	if !c.IsLiked("R2") || c.IsLiked("R1") {
		t.Fatal("liked mirror disagrees with reel flags")
	}
}

func TestController_ToggleLikeScenario(t *testing.T) {
	kv := likes.NewMemoryKV()
	store := likes.NewPersistedStore(kv, nil)
	c := NewController(store, nil)
	c.Apply(sampleSnapshot())

	mut, err := c.ToggleLikeAndCommit(context.Background(), "R1")
	if err != nil {
		t.Fatalf("ToggleLikeAndCommit returned error: %v", err)
	}
	if !mut.Liked || mut.Delta != 1 {
		t.Fatalf("unexpected mutation: %+v", mut)
	}

	r1, _ := c.Reel(0)
	if r1.Likes != 11 || !r1.IsLiked {
		t.Fatalf("expected R1 liked with 11 likes, got %+v", r1)
	}
	if !store.IsLiked(context.Background(), "R1") {
		t.Fatal("expected persisted store to contain R1")
	}
}

func TestController_DoubleToggleIsNetZero(t *testing.T) {
	w := &recordingWriter{}
	c := NewController(w, nil)
	c.Apply(sampleSnapshot("R2"))
	ctx := context.Background()

	for _, id := range []string{"R2", "R2"} {
		if _, err := c.ToggleLikeAndCommit(ctx, id); err != nil {
			t.Fatalf("toggle returned error: %v", err)
		}
	}

	r2, _ := c.Reel(1)
	if r2.Likes != 5 || !r2.IsLiked {
		t.Fatalf("expected R2 restored, got %+v", r2)
	}
	if !reflect.DeepEqual(c.LikedIDs(), []string{"R2"}) {
		t.Fatalf("expected liked set restored, got %v", c.LikedIDs())
	}
	if !reflect.DeepEqual(w.last(), []string{"R2"}) {
		t.Fatalf("expected persisted set restored, got %v", w.last())
	}
}

func TestController_MembershipFollowsToggleParity(t *testing.T) {
	ids := []string{"R1", "R2", "R3", "R4"}
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 50; round++ {
		initial := map[string]bool{}
		var seed []string
		for _, id := range ids {
			if rng.IntN(2) == 1 {
				initial[id] = true
				seed = append(seed, id)
			}
		}

		c := NewController(&recordingWriter{}, nil)
		c.Apply(Snapshot{
			Reels:    []reels.Reel{{ID: "R1"}, {ID: "R2"}, {ID: "R3"}, {ID: "R4"}},
			LikedIDs: seed,
		})

		calls := map[string]int{}
		for i := rng.IntN(30); i > 0; i-- {
			id := ids[rng.IntN(len(ids))]
			calls[id]++
			c.ToggleLike(id)
		}

		for i, id := range ids {
			want := initial[id] != (calls[id]%2 == 1)
			if got := c.IsLiked(id); got != want {
				t.Fatalf("round %d: %s liked=%v want %v (initial=%v calls=%d)", round, id, got, want, initial[id], calls[id])
			}
			r, _ := c.Reel(i)
			if r.IsLiked != want {
				t.Fatalf("round %d: reel flag for %s disagrees with liked set", round, id)
			}
		}
	}
}

func TestController_PersistFailureKeepsOptimisticState(t *testing.T) {
	var reported []string
	w := &recordingWriter{err: errors.New("disk full")}
	c := NewController(w, func(op string, err error) { reported = append(reported, op) })
	c.Apply(sampleSnapshot())

	_, err := c.ToggleLikeAndCommit(context.Background(), "R1")
	if err == nil {
		t.Fatal("expected persist error")
	}
	r1, _ := c.Reel(0)
	if !r1.IsLiked || r1.Likes != 11 || !c.IsLiked("R1") {
		t.Fatalf("expected optimistic state to stand, got %+v", r1)
	}
	if len(reported) != 1 || reported[0] != "persist_like" {
		t.Fatalf("expected failure reported once, got %v", reported)
	}
}

func TestController_StaleCommitIsSkipped(t *testing.T) {
	w := &recordingWriter{}
	c := NewController(w, nil)
	c.Apply(sampleSnapshot())
	ctx := context.Background()

	first := c.ToggleLike("R1")
	second := c.ToggleLike("R2")

	if err := c.Commit(ctx, second); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if err := c.Commit(ctx, first); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}

	if len(w.writes) != 1 {
		t.Fatalf("expected the stale commit to be skipped, got writes %v", w.writes)
	}
	if !reflect.DeepEqual(w.last(), []string{"R1", "R2"}) {
		t.Fatalf("expected latest set persisted, got %v", w.last())
	}
}

func TestController_ToggleUnknownReelOnlyChangesMembership(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot())

	mut := c.ToggleLike("ghost")
	if !mut.Liked || !c.IsLiked("ghost") {
		t.Fatalf("expected ghost liked, got %+v", mut)
	}
	for i := 0; i < c.Len(); i++ {
		r, _ := c.Reel(i)
		if r.IsLiked {
			t.Fatalf("expected loaded reels untouched, got %+v", r)
		}
	}
}

func TestController_ReloadDiscardsLocalCounterDelta(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot())
	c.ToggleLike("R1")

	c.Apply(Snapshot{Reels: []reels.Reel{{ID: "R1", Likes: 10}}, LikedIDs: []string{"R1"}})

	r1, _ := c.Reel(0)
	if r1.Likes != 10 || !r1.IsLiked {
		t.Fatalf("expected server counter with persisted flag, got %+v", r1)
	}
}

func TestController_ReloadReadBeforeCommitKeepsLike(t *testing.T) {
	kv := likes.NewMemoryKV()
	store := likes.NewPersistedStore(kv, nil)
	c := NewController(store, nil)
	ctx := context.Background()
	c.Apply(sampleSnapshot())

	mut := c.ToggleLike("R1")
	// The reload reads storage before the toggle is persisted.
	stale := sampleSnapshot(store.LikedIDs(ctx)...)
	if err := c.Commit(ctx, mut); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	c.Apply(stale)

	r1, _ := c.Reel(0)
	if !c.IsLiked("R1") || !r1.IsLiked {
		t.Fatalf("expected R1 to stay liked after reload, got %+v", r1)
	}
	if r1.Likes != 10 {
		t.Fatalf("expected server counter after reload, got %d", r1.Likes)
	}

	if _, err := c.ToggleLikeAndCommit(ctx, "R2"); err != nil {
		t.Fatalf("ToggleLikeAndCommit returned error: %v", err)
	}
	if got := store.LikedIDs(ctx); !reflect.DeepEqual(got, []string{"R1", "R2"}) {
		t.Fatalf("expected both likes persisted, got %v", got)
	}
}

func TestController_ApplyBeforeAnyToggleSeedsFromSnapshot(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot("R1"))
	c.Apply(sampleSnapshot("R2"))

	if c.IsLiked("R1") || !c.IsLiked("R2") {
		t.Fatalf("expected liked set from latest snapshot, got %v", c.LikedIDs())
	}
}

func TestController_AppendSkipsDuplicatesAndUsesMirror(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot())
	c.ToggleLike("R3")

	added := c.Append(Snapshot{
		Reels:    []reels.Reel{{ID: "R2"}, {ID: "R3"}, {ID: "R4"}},
		LikedIDs: []string{},
	})
	if added != 2 || c.Len() != 4 {
		t.Fatalf("expected 2 appended reels, got added=%d len=%d", added, c.Len())
	}
	r3, _ := c.Reel(2)
	if r3.ID != "R3" || !r3.IsLiked {
		t.Fatalf("expected in-memory like to mark appended R3, got %+v", r3)
	}
	if got := c.IndexOf("R4"); got != 3 {
		t.Fatalf("expected R4 at 3, got %d", got)
	}
}

func TestController_ReelReturnsCopy(t *testing.T) {
	c := NewController(nil, nil)
	c.Apply(sampleSnapshot())

	out, _ := c.Reel(0)
	out.Likes = 999
	if r, _ := c.Reel(0); r.Likes != 10 {
		t.Fatalf("expected internal state untouched, got %d", r.Likes)
	}
	if _, ok := c.Reel(5); ok {
		t.Fatal("expected out of range lookup to fail")
	}
}
