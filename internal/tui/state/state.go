package state

import (
)

// PageJump is how many reels pgup/pgdown skip.
const PageJump = 5

func ClampIndex(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	if index < 0 {
		return 0
	}
	return index
}

// PageStep is the scroll step of the details view for a terminal height.
func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of totalRows that keeps
// cursor near the middle of a window of height rows.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampIndex(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// SnapOffset is the scroll offset that pages reel index fully into view.
func SnapOffset(index, itemHeight int) int {
	if index < 0 || itemHeight <= 0 {
		return 0
	}
	return index * itemHeight
}

// ShouldLoadMore reports whether the pager sits on the last loaded reel of
// a feed the server says continues.
func ShouldLoadMore(active, size int, hasMore, loading bool) bool {
	if !hasMore || loading || size == 0 {
		return false
	}
	return active >= size-1
}
