package state

import "testing"

func TestClampIndex(t *testing.T) {
	if got := ClampIndex(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampIndex(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampIndex(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampIndex(4, 0); got != 0 {
		t.Fatalf("expected 0 for empty feed, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, false); got != 6 {
		t.Fatalf("expected step 6, got %d", got)
	}
	if got := PageStep(12, true); got != 4 {
		t.Fatalf("expected step 4 with status, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(2, 1, 5)
	if start != 0 || end != 2 {
		t.Fatalf("expected whole feed window, got start=%d end=%d", start, end)
	}
}

func TestSnapOffset(t *testing.T) {
	if got := SnapOffset(3, 20); got != 60 {
		t.Fatalf("expected offset 60, got %d", got)
	}
	if got := SnapOffset(-1, 20); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestShouldLoadMore(t *testing.T) {
	if !ShouldLoadMore(2, 3, true, false) {
		t.Fatal("expected load more on last reel")
	}
	if ShouldLoadMore(1, 3, true, false) {
		t.Fatal("expected no load more before last reel")
	}
	if ShouldLoadMore(2, 3, false, false) {
		t.Fatal("expected no load more when server has no more")
	}
	if ShouldLoadMore(2, 3, true, true) {
		t.Fatal("expected no load more while a load is running")
	}
}
