package feed

// DefaultVisibleThreshold is the minimum percentage of an item's area that
// must be on screen for the item to count as viewable.
const DefaultVisibleThreshold = 50

// ActivationPolicy decides which viewable item becomes active.
type ActivationPolicy int

const (
	// FirstViewable activates the first viewable item in list order. It
	// assumes a single-column pager where at most one item passes the
	// threshold outside of fast flings; a multi-column layout needs a
	// different policy.
	FirstViewable ActivationPolicy = iota
)

// ViewToken describes one item that passed the visibility threshold.
// HasIndex distinguishes index 0 from an item without a position.
type ViewToken struct {
	Index          int
	HasIndex       bool
	Key            string
	PercentVisible int
}

// Viewport is a vertical list of equally sized items scrolled to Offset.
type Viewport struct {
	Offset     int
	Height     int
	ItemHeight int
	Count      int
}

// ViewableItems returns, in list order, the items whose on-screen area is at
// least threshold percent. keyFn may be nil.
func ViewableItems(vp Viewport, threshold int, keyFn func(int) string) []ViewToken {
	if vp.Count <= 0 || vp.Height <= 0 || vp.ItemHeight <= 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultVisibleThreshold
	}
	if threshold > 100 {
		threshold = 100
	}

	first := vp.Offset / vp.ItemHeight
	if first < 0 {
		first = 0
	}
	last := (vp.Offset + vp.Height - 1) / vp.ItemHeight
	if last >= vp.Count {
		last = vp.Count - 1
	}

	tokens := make([]ViewToken, 0, 2)
	for i := first; i <= last; i++ {
		top := i * vp.ItemHeight
		bottom := top + vp.ItemHeight
		visible := min(bottom, vp.Offset+vp.Height) - max(top, vp.Offset)
		if visible <= 0 {
			continue
		}
		percent := visible * 100 / vp.ItemHeight
		if percent < threshold {
			continue
		}
		token := ViewToken{Index: i, HasIndex: true, PercentVisible: percent}
		if keyFn != nil {
			token.Key = keyFn(i)
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Tracker holds the single active index of the feed.
type Tracker struct {
	policy ActivationPolicy
	index  int
	has    bool
}

func NewTracker() *Tracker {
	return &Tracker{policy: FirstViewable}
}

// OnViewableItemsChanged applies a viewability notification. An empty
// notification, or one where no token has an index, keeps the current
// index; the return value reports whether the active index changed.
func (t *Tracker) OnViewableItemsChanged(tokens []ViewToken) bool {
	index, ok := t.pick(tokens)
	if !ok {
		return false
	}
	changed := !t.has || t.index != index
	t.index = index
	t.has = true
	return changed
}

func (t *Tracker) pick(tokens []ViewToken) (int, bool) {
	switch t.policy {
	case FirstViewable:
		for _, token := range tokens {
			if token.HasIndex {
				return token.Index, true
			}
		}
	}
	return 0, false
}

// Active returns the active index and whether one is set.
func (t *Tracker) Active() (int, bool) {
	return t.index, t.has
}

// IsActive reports whether index is the active one.
func (t *Tracker) IsActive(index int) bool {
	return t.has && t.index == index
}

// Clamp keeps the active index inside a feed of size items; an empty feed
// has no active index.
func (t *Tracker) Clamp(size int) {
	if size <= 0 {
		t.Reset()
		return
	}
	if t.has && t.index >= size {
		t.index = size - 1
	}
}

func (t *Tracker) Reset() {
	t.index = 0
	t.has = false
}
