package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
	tuiactions "github.com/glabrego/reels-cli/internal/tui/actions"
	"github.com/glabrego/reels-cli/internal/tui/platform"
	tuistate "github.com/glabrego/reels-cli/internal/tui/state"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
	tuiview "github.com/glabrego/reels-cli/internal/tui/view"
)

type Service = tuiactions.Service

// Hooks are the reel actions the screen hands off to the host app.
type Hooks struct {
	Comment func(reels.Reel) error
	CheckIn func(reels.Reel) error
}

// queueSize is how many neighbouring reels the "up next" strip lists.
const queueSize = 5

type Model struct {
	service    Service
	controller *feed.Controller
	tracker    *feed.Tracker
	threshold  int

	generation  int
	closed      bool
	loading     bool
	loadingMore bool
	loaded      bool
	nextCursor  string
	hasMore     bool
	offset      int
	muted       bool

	showHelp      bool
	inDetail      bool
	detail        reels.Details
	detailLoading bool
	detailErr     string
	detailTop     int

	width  int
	height int
	status string
	err    error

	hooks     Hooks
	openURLFn func(string) error
	copyURLFn func(string) error
	nowFn     func() time.Time
	logger    *log.Logger
	theme     tuitheme.Theme
}

// NewModel builds the feed screen. The controller owns the feed state and
// persists likes; a nil controller keeps likes in memory only.
func NewModel(service Service, controller *feed.Controller, threshold int) Model {
	if controller == nil {
		controller = feed.NewController(nil, nil)
	}
	if threshold <= 0 {
		threshold = feed.DefaultVisibleThreshold
	}
	logger := log.Default().With("component", "tui")
	return Model{
		service:    service,
		controller: controller,
		tracker:    feed.NewTracker(),
		threshold:  threshold,
		generation: 1,
		loading:    service != nil,
		hooks: Hooks{
			Comment: logHook(logger, "comment"),
			CheckIn: logHook(logger, "check_in"),
		},
		openURLFn: platform.OpenURLInBrowser,
		copyURLFn: platform.CopyURLToClipboard,
		nowFn:     time.Now,
		logger:    logger,
		theme:     tuitheme.Default(),
	}
}

func (m *Model) SetHooks(h Hooks) {
	m.hooks = h
}

func (m *Model) SetLogger(logger *log.Logger) {
	if logger != nil {
		m.logger = logger.With("component", "tui")
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tuiactions.LoadCmd(m.service, m.generation, "init")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		active, _ := m.tracker.Active()
		m.width = msg.Width
		m.height = msg.Height
		m.offset = tuistate.SnapOffset(active, m.cardHeight())
		return m, nil
	case tuiactions.LoadedMsg:
		return m.applyLoad(msg)
	case tuiactions.LoadMoreMsg:
		return m.applyLoadMore(msg)
	case tuiactions.LikePersistedMsg:
		return m, nil
	case tuiactions.LikePersistErrorMsg:
		m.err = msg.Err
		return m, nil
	case tuiactions.DetailsLoadedMsg:
		if !m.inDetail || msg.ReelID != m.detail.ID {
			return m, nil
		}
		m.detailLoading = false
		m.detailErr = ""
		m.detail = msg.Details
		m.detail.IsLiked = m.controller.IsLiked(msg.ReelID)
		if reel, ok := m.controller.Reel(m.controller.IndexOf(msg.ReelID)); ok {
			m.detail.Likes = reel.Likes
		}
		return m, nil
	case tuiactions.DetailsErrorMsg:
		if !m.inDetail || msg.ReelID != m.detail.ID {
			return m, nil
		}
		m.detailLoading = false
		m.detailErr = msg.Err.Error()
		m.logger.Warn("reel details unavailable", "reel", msg.ReelID, "err", msg.Err)
		return m, nil
	case tuiactions.HookDoneMsg:
		m.status = msg.Status
		return m, nil
	case tuiactions.HookErrorMsg:
		m.err = msg.Err
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.err = nil
		return m, nil
	case tuiactions.OpenURLErrorMsg:
		m.err = msg.Err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if key == "ctrl+c" || key == "q" {
		m.closed = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	if m.inDetail {
		switch key {
		case "esc", "backspace":
			m.inDetail = false
			m.detailTop = 0
			m.detailErr = ""
			return m, nil
		case "up", "k":
			if m.detailTop > 0 {
				m.detailTop--
			}
			return m, nil
		case "down", "j":
			if m.detailTop < m.detailMaxTop() {
				m.detailTop++
			}
			return m, nil
		case "pgup", "ctrl+b":
			m.detailTop = max(0, m.detailTop-tuistate.PageStep(m.height, m.status != ""))
			return m, nil
		case "pgdown", "ctrl+f":
			m.detailTop = min(m.detailMaxTop(), m.detailTop+tuistate.PageStep(m.height, m.status != ""))
			return m, nil
		case "l":
			return m.toggleLike(m.detail.Reel)
		case "o":
			return m.openVideo(m.detail.Reel)
		case "s":
			return m.shareVideo(m.detail.Reel)
		case "c":
			return m, tuiactions.HookCmd("Comments", m.detail.Reel, m.hooks.Comment)
		}
		return m, nil
	}

	switch key {
	case "down", "j":
		return m.scrollBy(1)
	case "up", "k":
		return m.scrollBy(-1)
	case "pgdown", "ctrl+f":
		return m.scrollBy(tuistate.PageJump)
	case "pgup", "ctrl+b":
		return m.scrollBy(-tuistate.PageJump)
	case "g":
		return m.scrollTo(0)
	case "G":
		return m.scrollTo(m.controller.Len() - 1)
	case "r":
		return m.reload()
	case "n":
		return m.loadMore()
	case "m":
		m.muted = !m.muted
		if m.muted {
			m.status = "Sound muted"
		} else {
			m.status = "Sound on"
		}
		return m, nil
	}

	reel, ok := m.activeReel()
	if !ok {
		return m, nil
	}
	switch key {
	case "l":
		return m.toggleLike(reel)
	case "c":
		return m, tuiactions.HookCmd("Comments", reel, m.hooks.Comment)
	case "i":
		return m, tuiactions.HookCmd("Check-in", reel, m.hooks.CheckIn)
	case "s":
		return m.shareVideo(reel)
	case "o":
		return m.openVideo(reel)
	case "enter":
		return m.openDetails(reel)
	}
	return m, nil
}

func (m Model) applyLoad(msg tuiactions.LoadedMsg) (tea.Model, tea.Cmd) {
	if m.closed || msg.Generation != m.generation {
		return m, nil
	}
	snap := msg.Snapshot
	m.loading = false
	m.loaded = true
	m.controller.Apply(snap)
	m.nextCursor = snap.Cursor
	m.hasMore = snap.HasMore
	if snap.Err != nil {
		m.err = fmt.Errorf("load reels: %w", snap.Err)
		m.status = ""
	} else {
		m.err = nil
		m.status = fmt.Sprintf("Loaded %d reels in %dms", m.controller.Len(), msg.Duration.Milliseconds())
	}

	active, has := m.tracker.Active()
	m.tracker.Clamp(m.controller.Len())
	if has {
		m.offset = tuistate.SnapOffset(tuistate.ClampIndex(active, m.controller.Len()), m.cardHeight())
	} else {
		m.offset = 0
	}
	m.notifyViewable()
	cmd := m.autoLoadMore()
	return m, cmd
}

func (m Model) applyLoadMore(msg tuiactions.LoadMoreMsg) (tea.Model, tea.Cmd) {
	if m.closed || msg.Generation != m.generation {
		return m, nil
	}
	m.loadingMore = false
	snap := msg.Snapshot
	if snap.Err != nil {
		m.err = fmt.Errorf("load more reels: %w", snap.Err)
		return m, nil
	}
	added := m.controller.Append(snap)
	m.nextCursor = snap.Cursor
	m.hasMore = snap.HasMore
	m.err = nil
	m.status = fmt.Sprintf("Loaded %d more reels", added)
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	m.generation++
	m.loading = true
	m.loadingMore = false
	m.status = ""
	m.err = nil
	return m, tuiactions.LoadCmd(m.service, m.generation, "manual")
}

func (m Model) loadMore() (tea.Model, tea.Cmd) {
	if m.service == nil || m.loading || m.loadingMore {
		return m, nil
	}
	if !m.hasMore || m.nextCursor == "" {
		m.status = "No more reels"
		return m, nil
	}
	m.loadingMore = true
	m.status = "Loading more reels..."
	return m, tuiactions.LoadMoreCmd(m.service, m.generation, m.nextCursor)
}

func (m *Model) autoLoadMore() tea.Cmd {
	active, ok := m.tracker.Active()
	if !ok || m.service == nil || m.nextCursor == "" {
		return nil
	}
	if !tuistate.ShouldLoadMore(active, m.controller.Len(), m.hasMore, m.loading || m.loadingMore) {
		return nil
	}
	m.loadingMore = true
	return tuiactions.LoadMoreCmd(m.service, m.generation, m.nextCursor)
}

func (m Model) scrollBy(delta int) (tea.Model, tea.Cmd) {
	active, _ := m.tracker.Active()
	return m.scrollTo(active + delta)
}

// scrollTo pages the viewport so that index snaps into place and feeds the
// resulting viewability notification to the tracker.
func (m Model) scrollTo(index int) (tea.Model, tea.Cmd) {
	n := m.controller.Len()
	if n == 0 {
		return m, nil
	}
	m.offset = tuistate.SnapOffset(tuistate.ClampIndex(index, n), m.cardHeight())
	m.notifyViewable()
	cmd := m.autoLoadMore()
	return m, cmd
}

func (m *Model) notifyViewable() bool {
	n := m.controller.Len()
	if n == 0 {
		m.offset = 0
		m.tracker.Reset()
		return false
	}
	h := m.cardHeight()
	if maxOffset := (n - 1) * h; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
	tokens := feed.ViewableItems(feed.Viewport{
		Offset:     m.offset,
		Height:     h,
		ItemHeight: h,
		Count:      n,
	}, m.threshold, m.reelKey)
	return m.tracker.OnViewableItemsChanged(tokens)
}

func (m Model) reelKey(i int) string {
	reel, _ := m.controller.Reel(i)
	return reel.ID
}

func (m Model) activeReel() (reels.Reel, bool) {
	active, ok := m.tracker.Active()
	if !ok {
		return reels.Reel{}, false
	}
	return m.controller.Reel(active)
}

func (m Model) toggleLike(reel reels.Reel) (tea.Model, tea.Cmd) {
	if reel.ID == "" {
		return m, nil
	}
	mut := m.controller.ToggleLike(reel.ID)
	if m.inDetail && m.detail.ID == reel.ID {
		m.detail.IsLiked = mut.Liked
		m.detail.Likes += mut.Delta
	}
	if mut.Liked {
		m.status = "Liked " + caption.Truncate(reel.Title, 40)
	} else {
		m.status = "Removed like from " + caption.Truncate(reel.Title, 40)
	}
	return m, tuiactions.PersistLikeCmd(m.controller, mut)
}

func (m Model) openVideo(reel reels.Reel) (tea.Model, tea.Cmd) {
	url, err := platform.ValidateMediaURL(reel.VideoURL)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, tuiactions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) shareVideo(reel reels.Reel) (tea.Model, tea.Cmd) {
	url, err := platform.ValidateMediaURL(reel.VideoURL)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, tuiactions.CopyURLCmd(url, m.copyURLFn)
}

func (m Model) openDetails(reel reels.Reel) (tea.Model, tea.Cmd) {
	m.inDetail = true
	m.detailTop = 0
	m.detailErr = ""
	m.detail = reels.Details{Reel: reel}
	if m.service == nil {
		return m, nil
	}
	m.detailLoading = true
	return m, tuiactions.LoadDetailsCmd(m.service, reel.ID)
}

func (m Model) View() string {
	th := m.theme
	var b strings.Builder
	b.WriteString(th.Title.Render("Reels") + " " + th.ModePill.Render("For You") + "\n")
	b.WriteString(tuiview.Toolbar(m.showHelp, m.inDetail))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(m.helpView())
		b.WriteString("\n")
	case m.inDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.feedView())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	active, has := m.tracker.Active()
	b.WriteString(tuiview.Footer(active, has, m.controller.Len(), m.hasMore, len(m.controller.LikedIDs()), m.muted, th))
	b.WriteString("\n")
	return b.String()
}

func (m Model) feedView() string {
	n := m.controller.Len()
	if n == 0 {
		if m.loading || !m.loaded {
			return tuiview.StatusBlock([]string{"Loading amazing reels..."}, m.contentWidth()) + "\n"
		}
		return tuiview.StatusBlock([]string{"No reels available", "Check your connection"}, m.contentWidth()) + "\n"
	}

	active, has := m.tracker.Active()
	if !has {
		active = 0
	}
	reel, _ := m.controller.Reel(active)
	var b strings.Builder
	b.WriteString(tuiview.RenderCard(tuiview.CardParams{
		Reel:   reel,
		Index:  active,
		Total:  n,
		Active: has && m.tracker.IsActive(active),
		Muted:  m.muted,
		Liked:  m.controller.IsLiked(reel.ID),
		Now:    m.nowFn(),
		Width:  m.contentWidth(),
	}, m.theme))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Section.Render("Up next"))
	b.WriteString("\n")

	start, end := tuistate.CenteredWindow(n, active, queueSize)
	b.WriteString(tuiview.RenderQueue(tuiview.QueueRenderInput{
		Size:   n,
		Start:  start,
		End:    end,
		Active: active,
		RenderLine: func(i int, isActive bool) string {
			item, _ := m.controller.Reel(i)
			return tuiview.RenderQueueLine(tuiview.QueueLineParams{
				Reel:   item,
				Pos:    i,
				Active: isActive,
				Liked:  m.controller.IsLiked(item.ID),
				Width:  m.contentWidth(),
			}, m.theme)
		},
	}))
	if m.loadingMore {
		b.WriteString("  Loading more reels...\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	lines := m.detailLines()
	return tuiview.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) detailLines() []string {
	return tuiview.DetailLines(m.detail, m.contentWidth()-2, 2, caption.Lines, tuiview.DetailState{
		Loading: m.detailLoading,
		Err:     m.detailErr,
	})
}

func (m Model) detailMaxTop() int {
	return tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	return tuiview.Message(m.loading || m.loadingMore, m.err != nil, m.status, warning, m.theme)
}

func (m Model) helpView() string {
	lines := []string{
		"Feed:",
		"  j/k or arrows move one reel, pgup/pgdown skip five, g/G first/last",
		"  the reel that fills the screen plays; the rest are paused",
		"Reel actions:",
		"  l like/unlike, m mute/unmute, c comments, s copy video link, i check-in",
		"  o open video in browser, enter details (esc/backspace back)",
		"Loading:",
		"  n load next page (also automatic on the last reel), r refresh",
	}
	return strings.Join(lines, "\n")
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 80
}

// cardHeight is the pager page size in rows.
func (m Model) cardHeight() int {
	if m.height > 0 {
		if h := m.height - 6; h > 8 {
			return h
		}
		return 8
	}
	return 16
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		usedByHeader := 6
		if m.status != "" || m.err != nil {
			usedByHeader++
		}
		if h := m.height - usedByHeader; h > 3 {
			return h
		}
	}
	return 16
}

func logHook(logger *log.Logger, action string) func(reels.Reel) error {
	return func(r reels.Reel) error {
		logger.Info("reel action", "action", action, "reel", r.ID)
		return nil
	}
}
