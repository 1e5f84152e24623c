package feed

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/glabrego/reels-cli/internal/reels"
)

type fakeSource struct {
	pages      map[string]reels.Page
	err        error
	panicWith  any
	lastCursor string
	lastLimit  int
}

func (f *fakeSource) ListReels(_ context.Context, cursor string, limit int) (reels.Page, error) {
	f.lastCursor = cursor
	f.lastLimit = limit
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return reels.Page{}, f.err
	}
	return f.pages[cursor], nil
}

type fakeLikes struct {
	ids   []string
	reads int
}

func (f *fakeLikes) LikedIDs(context.Context) []string {
	f.reads++
	return append([]string(nil), f.ids...)
}

type reportLog struct {
	ops  []string
	errs []error
}

func (r *reportLog) reporter() Reporter {
	return func(op string, err error) {
		r.ops = append(r.ops, op)
		r.errs = append(r.errs, err)
	}
}

func TestLoader_LoadMergesLikedIDsIntoSnapshot(t *testing.T) {
	source := &fakeSource{pages: map[string]reels.Page{
		"": {Reels: []reels.Reel{{ID: "R1", Likes: 10}, {ID: "R2", Likes: 3}}, Cursor: "2", HasMore: true},
	}}
	store := &fakeLikes{ids: []string{"R2"}}

	snap := NewLoader(source, store, 7, nil).Load(context.Background())

	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if len(snap.Reels) != 2 || snap.Reels[0].ID != "R1" || snap.Reels[1].ID != "R2" {
		t.Fatalf("expected server order preserved, got %+v", snap.Reels)
	}
	if snap.Reels[0].IsLiked || !snap.Reels[1].IsLiked {
		t.Fatalf("expected R1 unliked and R2 liked, got %+v", snap.Reels)
	}
	if !reflect.DeepEqual(snap.LikedIDs, []string{"R2"}) {
		t.Fatalf("unexpected liked ids: %v", snap.LikedIDs)
	}
	if snap.Cursor != "2" || !snap.HasMore {
		t.Fatalf("unexpected paging: %+v", snap)
	}
	if source.lastLimit != 7 || source.lastCursor != "" {
		t.Fatalf("unexpected request: cursor=%q limit=%d", source.lastCursor, source.lastLimit)
	}
}

func TestLoader_FailureYieldsEmptyFeedAndReports(t *testing.T) {
	reports := &reportLog{}
	store := &fakeLikes{ids: []string{"R9"}}
	loader := NewLoader(&fakeSource{err: errors.New("network down")}, store, 10, reports.reporter())

	snap := loader.Load(context.Background())

	if snap.Reels == nil || len(snap.Reels) != 0 {
		t.Fatalf("expected empty non-nil reels, got %#v", snap.Reels)
	}
	if snap.Err == nil {
		t.Fatal("expected informational error on snapshot")
	}
	if !reflect.DeepEqual(snap.LikedIDs, []string{"R9"}) {
		t.Fatalf("expected liked ids still read on failure, got %v", snap.LikedIDs)
	}
	if len(reports.ops) != 1 || reports.ops[0] != "load" {
		t.Fatalf("expected one load report, got %v", reports.ops)
	}
}

func TestLoader_PanickingSourceDoesNotEscape(t *testing.T) {
	reports := &reportLog{}
	loader := NewLoader(&fakeSource{panicWith: "boom"}, &fakeLikes{}, 10, reports.reporter())

	snap := loader.Load(context.Background())

	if len(snap.Reels) != 0 || snap.Err == nil {
		t.Fatalf("expected empty failed snapshot, got %+v", snap)
	}
	if len(reports.ops) != 1 {
		t.Fatalf("expected failure to be reported, got %v", reports.ops)
	}
}

func TestLoader_NilReelsIsEmpty(t *testing.T) {
	source := &fakeSource{pages: map[string]reels.Page{}}
	snap := NewLoader(source, nil, 10, nil).Load(context.Background())

	if snap.Reels == nil || len(snap.Reels) != 0 || snap.Err != nil {
		t.Fatalf("expected empty successful snapshot, got %+v", snap)
	}
	if snap.LikedIDs == nil {
		t.Fatal("expected non-nil liked ids without a store")
	}
}

func TestLoader_LoadMoreUsesCursor(t *testing.T) {
	source := &fakeSource{pages: map[string]reels.Page{
		"10": {Reels: []reels.Reel{{ID: "R11"}}, Cursor: "", HasMore: false},
	}}
	store := &fakeLikes{ids: []string{"R11"}}
	loader := NewLoader(source, store, 10, nil)

	snap := loader.LoadMore(context.Background(), "10")
	if source.lastCursor != "10" {
		t.Fatalf("expected cursor 10, got %q", source.lastCursor)
	}
	if len(snap.Reels) != 1 || !snap.Reels[0].IsLiked || snap.HasMore {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	empty := loader.LoadMore(context.Background(), "")
	if len(empty.Reels) != 0 || empty.HasMore {
		t.Fatalf("expected no fetch without cursor, got %+v", empty)
	}
}
