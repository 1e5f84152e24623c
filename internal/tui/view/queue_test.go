package view

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glabrego/reels-cli/internal/reels"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

var updateViewGolden = flag.Bool("update-view-golden", false, "update view golden files")

func TestQueueRendering_Golden(t *testing.T) {
	th := tuitheme.Default()
	items := []reels.Reel{
		{ID: "R1", Title: "Sunrise over Lisbon", Likes: 1240},
		{ID: "R2", Title: "A very long title that will certainly need truncation here", Likes: 7},
	}
	liked := map[string]bool{"R1": true}

	got := RenderQueue(QueueRenderInput{
		Size:   len(items),
		Start:  0,
		End:    len(items),
		Active: 0,
		RenderLine: func(i int, active bool) string {
			return RenderQueueLine(QueueLineParams{
				Reel:   items[i],
				Pos:    i,
				Active: active,
				Liked:  liked[items[i].ID],
				Width:  40,
			}, th)
		},
	})
	assertViewGolden(t, "queue_rendering.golden", stripANSI(got))
}

func TestRenderQueue_RejectsBadWindow(t *testing.T) {
	in := QueueRenderInput{Size: 2, Start: 1, End: 3, RenderLine: func(int, bool) string { return "x" }}
	if got := RenderQueue(in); got != "" {
		t.Fatalf("expected empty render for out of range window, got %q", got)
	}
}

func assertViewGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if *updateViewGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	wantBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	want := strings.TrimRight(string(wantBytes), "\n")
	got = strings.TrimRight(got, "\n")
	if got != want {
		t.Fatalf("golden mismatch for %s\n--- got ---\n%s\n--- want ---\n%s", name, got, want)
	}
}
