package tui

import (
	"context"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/albumlinks/internal/carousel"
	"github.com/handiism/albumlinks/internal/catalog"
	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/feed"
	ioutils "github.com/handiism/albumlinks/internal/io"
	"github.com/handiism/albumlinks/internal/model"
	"github.com/handiism/albumlinks/internal/showcase"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A2E")).
			Background(lipgloss.Color("#F8B500"))
)

// Layout constants, in terminal cells.
const (
	cardWidth      = 24
	cardHeight     = 3
	sidePanelWidth = 30
	coverCells     = 16 // cover preview width; height is half of it in rows

	headerHeight   = 2
	carouselTop    = headerHeight
	carouselHeight = 4
	chromeHeight   = headerHeight + carouselHeight + 2 + 1 + 2 // search, status, help

	defaultWidth  = 100
	defaultHeight = 30

	errorTimeout = 5 * time.Second
	maxLogs      = 5
	sinkBuffer   = 64
)

// ViewMode selects how the feed is laid out.
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

// LogEntry represents a progress message in the UI.
type LogEntry struct {
	Message string
	Level   showcase.ProgressLevel
}

// Message types
type (
	// FeedMsg carries a feed render batch.
	FeedMsg struct {
		Items []model.AlbumSummary
		Mode  feed.Mode
	}

	// CarouselMsg carries a carousel render.
	CarouselMsg struct {
		Items  []model.AlbumSummary
		Active int
	}

	// ErrorMsg carries a user-facing error message.
	ErrorMsg struct {
		Message string
	}

	// ClearErrorMsg hides the error with the same sequence number.
	ClearErrorMsg struct {
		Seq int
	}

	ProgressMsg struct {
		Event showcase.ProgressEvent
	}

	// LoadDoneMsg is sent when a feed operation returns.
	LoadDoneMsg struct {
		Dispatched bool
		Err        error
	}

	ShowcaseMsg struct {
		Shelves *showcase.Shelves
		Err     error
	}

	CoverMsg struct {
		URL   string
		Image *image.RGBA
		Err   error
	}

	DetailMsg struct {
		Detail *model.AlbumDetail
		Err    error
	}
)

// Catalog is the backend used by the browser. *catalog.Client implements it.
type Catalog interface {
	FetchPage(ctx context.Context, page, limit int) (*model.AlbumPage, error)
	Search(ctx context.Context, query string) ([]model.AlbumSummary, error)
	Album(ctx context.Context, id string) (*model.AlbumDetail, error)
}

// Options configures the browser.
type Options struct {
	Settings *config.Settings
	Catalog  Catalog

	// Covers downloads cover art. Nil disables cover previews.
	Covers showcase.Downloader

	Logger *slog.Logger
}

// Model is the Bubble Tea model for the album browser.
type Model struct {
	settings *config.Settings
	catalog  Catalog
	logger   *slog.Logger

	feed     *feed.Controller
	carousel *carousel.Controller
	loader   *showcase.Loader
	covers   *showcase.CoverLoader
	sink     *Sink

	ctx    context.Context
	cancel context.CancelFunc

	search    textinput.Model
	searching bool
	query     string
	spinner   spinner.Model

	items    []model.AlbumSummary
	loaded   bool
	loading  bool
	cursor   int
	offset   int // first visible row
	viewMode ViewMode

	carouselItems  []model.AlbumSummary
	carouselActive int
	hovering       bool
	dragging       bool

	ranking []model.AlbumSummary

	detail        *model.AlbumDetail
	detailLoading bool
	cover         *image.RGBA
	coverURL      string

	errMsg string
	errSeq int
	status string
	logs   []LogEntry

	width  int
	height int
}

// NewModel creates a new browser model.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "Search artists and albums..."
	ti.CharLimit = 100
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	sink := NewSink(sinkBuffer)
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		settings: settings,
		catalog:  opts.Catalog,
		logger:   logger,
		sink:     sink,
		ctx:      ctx,
		cancel:   cancel,
		search:   ti,
		spinner:  s,
		loading:  true,
		width:    defaultWidth,
		height:   defaultHeight,
	}

	m.feed = feed.New(opts.Catalog, sink, feed.Options{
		PageSize:        settings.Feed.PageSize,
		ScrollThreshold: settings.Feed.ScrollThreshold,
		Logger:          logger,
	})
	m.carousel = carousel.New(sink, carousel.Options{
		AutoRotate: settings.Carousel.AutoRotate,
		Interval:   settings.Carousel.Interval,
		SlotWidth:  cardWidth,
		Logger:     logger,
	})
	m.loader = showcase.NewLoader(opts.Catalog, showcase.OptionsFromSettings(settings), sink.Progress)
	if opts.Covers != nil {
		m.covers = showcase.NewCoverLoader(opts.Covers, ioutils.NewImageService(), 4)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.sink.Listen(),
		m.loadInitial(""),
		m.loadShowcase(),
	)
}

// Close stops the carousel, cancels in-flight requests and releases the sink.
// It is safe to call more than once.
func (m Model) Close() {
	m.carousel.Dispose()
	m.cancel()
	m.sink.Close()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, m.feedWidth()-6)
		m.scrollToCursor()
		cmd := m.maybeLoadMore()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FeedMsg:
		if msg.Mode == feed.ModeReplace {
			m.items = msg.Items
			m.cursor = 0
			m.offset = 0
		} else {
			m.items = append(m.items, msg.Items...)
		}
		m.loaded = true
		cmd := tea.Batch(m.sink.Listen(), m.selectionChanged())
		return m, cmd

	case CarouselMsg:
		m.carouselItems = msg.Items
		m.carouselActive = msg.Active
		return m, m.sink.Listen()

	case ErrorMsg:
		m.loaded = true
		cmd := tea.Batch(m.sink.Listen(), m.showError(msg.Message))
		return m, cmd

	case ClearErrorMsg:
		if msg.Seq == m.errSeq {
			m.errMsg = ""
		}
		return m, nil

	case ProgressMsg:
		if msg.Event.Level != showcase.LevelVerbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			if len(m.logs) > maxLogs {
				m.logs = m.logs[len(m.logs)-maxLogs:]
			}
		}
		return m, m.sink.Listen()

	case LoadDoneMsg:
		m.loading = m.feed.State().IsLoading
		if msg.Err != nil {
			return m, nil
		}
		// A short first page may not fill the screen.
		cmd := m.maybeLoadMore()
		return m, cmd

	case ShowcaseMsg:
		if msg.Shelves == nil {
			return m, nil
		}
		m.ranking = msg.Shelves.Ranking.Albums
		m.carousel.Initialize(msg.Shelves.Latest.Albums)
		return m, m.prefetchCovers(msg.Shelves.Latest.Albums)

	case CoverMsg:
		if msg.URL == m.coverURL && msg.Err == nil {
			m.cover = msg.Image
		}
		return m, nil

	case DetailMsg:
		m.detailLoading = false
		if msg.Err != nil {
			cmd := m.showError(catalog.UserMessage(msg.Err))
			return m, cmd
		}
		m.detail = msg.Detail
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	if m.searching {
		switch key {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.query = strings.TrimSpace(m.search.Value())
			m.detail = nil
			m.loading = true
			return m, m.loadInitial(m.query)
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.detail != nil {
		switch key {
		case "esc", "backspace":
			m.detail = nil
			return m, nil
		}
	}

	switch key {
	case "q":
		m.Close()
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "esc":
		if m.query == "" {
			return m, nil
		}
		m.query = ""
		m.search.SetValue("")
		m.loading = true
		return m, m.loadInitial("")

	case "up", "k":
		return m.move(-m.columns())
	case "down", "j":
		return m.move(m.columns())
	case "left", "h":
		if m.viewMode == ViewGrid {
			return m.move(-1)
		}
	case "right", "l":
		if m.viewMode == ViewGrid {
			return m.move(1)
		}
	case "pgup":
		return m.move(-m.visibleRows() * m.columns())
	case "pgdown":
		return m.move(m.visibleRows() * m.columns())
	case "home", "g":
		return m.move(-m.cursor)
	case "end", "G":
		return m.move(len(m.items) - 1 - m.cursor)

	case "v":
		if m.viewMode == ViewGrid {
			m.viewMode = ViewList
		} else {
			m.viewMode = ViewGrid
		}
		m.scrollToCursor()
		cmd := m.maybeLoadMore()
		return m, cmd

	case "[":
		m.carousel.Previous()
	case "]":
		m.carousel.Next()
	case " ", "space":
		if m.carousel.State().Rotating {
			m.carousel.Pause()
		} else {
			m.carousel.Resume()
		}

	case "o":
		album, ok := m.selected()
		if !ok {
			return m, nil
		}
		if route := album.Route(); route != "" {
			m.status = strings.TrimRight(m.settings.API.BaseURL, "/") + route
		} else {
			m.status = "This album has no detail page"
		}

	case "enter":
		cmd := m.loadDetail()
		return m, cmd

	case "r":
		m.loading = true
		return m, tea.Batch(m.loadInitial(m.query), m.loadShowcase())
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	inCarousel := msg.Y >= carouselTop && msg.Y < carouselTop+carouselHeight

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if inCarousel {
				m.dragging = true
				m.carousel.DragStart(msg.X)
			}
		case tea.MouseButtonWheelUp:
			return m.move(-m.columns())
		case tea.MouseButtonWheelDown:
			return m.move(m.columns())
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.carousel.DragMove(msg.X)
			return m, nil
		}
		if inCarousel && !m.hovering {
			m.hovering = true
			m.carousel.PointerEnter()
		} else if !inCarousel && m.hovering {
			m.hovering = false
			m.carousel.PointerLeave()
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.carousel.DragEnd()
			if inCarousel {
				// Still over the carousel: keep it paused until the pointer leaves.
				m.hovering = true
				m.carousel.PointerEnter()
			}
		}
	}

	return m, nil
}

// move shifts the cursor by delta items and asks for more when the end of
// the feed comes into view.
func (m Model) move(delta int) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.items)-1)
	m.scrollToCursor()
	cmd := tea.Batch(m.selectionChanged(), m.maybeLoadMore())
	return m, cmd
}

func (m *Model) scrollToCursor() {
	cols := m.columns()
	rows := m.visibleRows()
	row := m.cursor / cols
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
	m.offset = max(m.offset, 0)
}

// visibleEnd is the index one past the last feed item on screen.
func (m Model) visibleEnd() int {
	return min(len(m.items), (m.offset+m.visibleRows())*m.columns())
}

func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.loaded || m.query != "" {
		return nil
	}
	if !m.feed.ShouldLoadMore(m.visibleEnd(), len(m.items)) {
		return nil
	}
	m.loading = true
	return m.loadMore()
}

func (m Model) selected() (model.AlbumSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.AlbumSummary{}, false
	}
	return m.items[m.cursor], true
}

// selectionChanged swaps the cover preview to the selected album.
func (m *Model) selectionChanged() tea.Cmd {
	album, ok := m.selected()
	if !ok || !album.HasCover() {
		m.cover = nil
		m.coverURL = ""
		return nil
	}
	if album.CoverURL == m.coverURL {
		return nil
	}
	m.coverURL = album.CoverURL
	m.cover = nil
	return m.loadCover(album.CoverURL)
}

func (m *Model) showError(message string) tea.Cmd {
	m.errSeq++
	m.errMsg = message
	seq := m.errSeq
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return ClearErrorMsg{Seq: seq}
	})
}

func (m Model) columns() int {
	if m.viewMode == ViewList {
		return 1
	}
	return max(1, m.feedWidth()/cardWidth)
}

func (m Model) rowHeight() int {
	if m.viewMode == ViewList {
		return 1
	}
	return cardHeight
}

func (m Model) visibleRows() int {
	return max(1, (m.height-chromeHeight)/m.rowHeight())
}

func (m Model) showSidePanel() bool {
	return m.width >= 2*sidePanelWidth+cardWidth
}

func (m Model) feedWidth() int {
	if m.showSidePanel() {
		return m.width - sidePanelWidth - 1
	}
	return m.width
}

// Commands

func (m Model) loadInitial(query string) tea.Cmd {
	ctrl, ctx := m.feed, m.ctx
	return func() tea.Msg {
		dispatched, err := ctrl.LoadInitial(ctx, query)
		return LoadDoneMsg{Dispatched: dispatched, Err: err}
	}
}

func (m Model) loadMore() tea.Cmd {
	ctrl, ctx := m.feed, m.ctx
	return func() tea.Msg {
		dispatched, err := ctrl.LoadMore(ctx)
		return LoadDoneMsg{Dispatched: dispatched, Err: err}
	}
}

func (m Model) loadShowcase() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		shelves, err := loader.Load(ctx)
		return ShowcaseMsg{Shelves: shelves, Err: err}
	}
}

func (m Model) loadCover(url string) tea.Cmd {
	if m.covers == nil || url == "" {
		return nil
	}
	covers, ctx := m.covers, m.ctx
	return func() tea.Msg {
		if img, ok := covers.Cached(url, coverCells, coverCells); ok {
			return CoverMsg{URL: url, Image: img}
		}
		img, err := covers.Cover(ctx, url, coverCells, coverCells)
		return CoverMsg{URL: url, Image: img, Err: err}
	}
}

func (m Model) prefetchCovers(albums []model.AlbumSummary) tea.Cmd {
	if m.covers == nil || len(albums) == 0 {
		return nil
	}
	covers, ctx, sink := m.covers, m.ctx, m.sink
	return func() tea.Msg {
		covers.Prefetch(ctx, albums, coverCells, coverCells, sink.Progress)
		return nil
	}
}

func (m *Model) loadDetail() tea.Cmd {
	album, ok := m.selected()
	if !ok || m.catalog == nil {
		return nil
	}
	id, err := album.ID()
	if err != nil {
		return m.showError("This album has no detail page")
	}
	m.detailLoading = true
	src, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		detail, err := src.Album(ctx, id)
		return DetailMsg{Detail: detail, Err: err}
	}
}

// Run starts the browser.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Close()
	}
	return err
}
