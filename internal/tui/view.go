package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/handiism/albumlinks/internal/model"
	"github.com/handiism/albumlinks/internal/showcase"
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCarousel())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n\n")

	main := m.renderFeed()
	if m.detail != nil {
		main = m.renderDetail()
	}
	if m.showSidePanel() {
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.feedWidth()).Render(main),
			" ",
			m.renderSidePanel(),
		)
	}
	b.WriteString(main)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) renderHeader() string {
	return titleStyle.Render("♪ Album Links") + "  " +
		subtitleStyle.Render("find every album on every platform")
}

func (m Model) renderCarousel() string {
	var b strings.Builder

	label := "New releases"
	if !m.carousel.State().Rotating && len(m.carouselItems) > 1 {
		label += dimStyle.Render(" (paused)")
	}
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("  ")
	b.WriteString(renderDots(len(m.carouselItems), m.carouselActive))
	b.WriteString("\n")

	if len(m.carouselItems) == 0 {
		b.WriteString(dimStyle.Render("Nothing new yet."))
		b.WriteString("\n\n")
		return b.String()
	}

	n := len(m.carouselItems)
	slots := min(n, max(1, m.width/cardWidth))
	titles := make([]string, 0, slots)
	artists := make([]string, 0, slots)
	for i := range slots {
		idx := (m.carouselActive + i) % n
		album := m.carouselItems[idx]
		title := fit(album.DisplayTitle(), cardWidth-2)
		artist := fit(album.DisplayArtist(), cardWidth-2)
		if i == 0 {
			title = selectedStyle.Render(title)
		} else {
			title = albumStyle.Render(title)
		}
		titles = append(titles, title)
		artists = append(artists, dimStyle.Render(artist))
	}
	b.WriteString(strings.Join(titles, "  "))
	b.WriteString("\n")
	b.WriteString(strings.Join(artists, "  "))
	b.WriteString("\n")

	return b.String()
}

func renderDots(n, active int) string {
	if n == 0 {
		return ""
	}
	dots := make([]string, n)
	for i := range dots {
		if i == active {
			dots[i] = "●"
		} else {
			dots[i] = dimStyle.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (m Model) renderSearchBar() string {
	if m.searching {
		return m.search.View()
	}
	if m.query != "" {
		return infoStyle.Render(fmt.Sprintf("Results for %q (%d)", m.query, len(m.items))) +
			dimStyle.Render("  esc to clear")
	}
	return dimStyle.Render("/ to search")
}

func (m Model) renderFeed() string {
	if !m.loaded {
		return fmt.Sprintf("%s Loading albums...", m.spinner.View())
	}
	if len(m.items) == 0 {
		if m.query != "" {
			return dimStyle.Render("No albums match your search.")
		}
		return dimStyle.Render("No albums found.")
	}

	if m.viewMode == ViewList {
		return m.renderList()
	}
	return m.renderGrid()
}

func (m Model) renderList() string {
	var b strings.Builder
	end := m.visibleEnd()
	width := m.feedWidth() - 4
	for i := m.offset; i < end; i++ {
		album := m.items[i]
		line := fit(fmt.Sprintf("%s - %s", album.DisplayArtist(), album.DisplayTitle()), width)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderGrid() string {
	cols := m.columns()
	end := m.visibleEnd()

	rows := make([]string, 0, m.visibleRows())
	for start := m.offset * cols; start < end; start += cols {
		cards := make([]string, 0, cols)
		for i := start; i < min(start+cols, end); i++ {
			cards = append(cards, m.renderCard(m.items[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCard(album model.AlbumSummary, selected bool) string {
	title := fit(album.DisplayTitle(), cardWidth-2)
	artist := fit(album.DisplayArtist(), cardWidth-2)
	if selected {
		title = selectedStyle.Render(title)
	} else {
		title = albumStyle.Render(title)
	}
	card := title + "\n" + dimStyle.Render(artist) + "\n"
	return lipgloss.NewStyle().Width(cardWidth).Height(cardHeight).Render(card)
}

func (m Model) renderDetail() string {
	d := m.detail
	var b strings.Builder

	b.WriteString(albumStyle.Render(d.Album.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(d.Album.DisplayArtist())
	if d.Album.TitleEn != "" || d.Album.ArtistEn != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s - %s)", d.Album.ArtistEn, d.Album.TitleEn)))
	}
	b.WriteString("\n\n")

	if len(d.Platforms) == 0 {
		b.WriteString(dimStyle.Render("No platform links yet."))
	}
	for i, p := range d.Platforms {
		if i > 0 {
			b.WriteString("\n")
		}
		if p.Found && p.URL != "" {
			b.WriteString(successStyle.Render("✓ " + p.Name))
			b.WriteString("  " + dimStyle.Render(p.URL))
		} else {
			b.WriteString(dimStyle.Render("✗ " + p.Name + "  not available"))
		}
	}

	if !d.UpdatedAt.IsZero() {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Updated " + d.UpdatedAt.Format("2006-01-02 15:04")))
	}

	return boxStyle.Width(max(20, m.feedWidth()-4)).Render(b.String())
}

func (m Model) renderSidePanel() string {
	var b strings.Builder

	switch {
	case m.cover != nil:
		b.WriteString(RenderHalfBlocks(m.cover))
	default:
		b.WriteString(placeholderCover(coverCells, coverCells/2))
	}
	b.WriteString("\n")

	if album, ok := m.selected(); ok {
		b.WriteString(albumStyle.Render(fit(album.DisplayTitle(), sidePanelWidth)))
		b.WriteString("\n")
		b.WriteString(fit(album.DisplayArtist(), sidePanelWidth))
		b.WriteString("\n")
		if !album.ReleaseDate.IsZero() {
			b.WriteString(dimStyle.Render(album.ReleaseDate.Format("2006-01-02")))
			b.WriteString("\n")
		}
		if counts := renderCounts(album); counts != "" {
			b.WriteString(dimStyle.Render(counts))
			b.WriteString("\n")
		}
	}

	if len(m.ranking) > 0 {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Ranking"))
		b.WriteString("\n")
		for i, album := range m.ranking {
			line := fmt.Sprintf("%2d. %s", i+1, album.DisplayTitle())
			b.WriteString(fit(line, sidePanelWidth))
			b.WriteString("\n")
		}
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return lipgloss.NewStyle().Width(sidePanelWidth).Render(b.String())
}

func renderCounts(album model.AlbumSummary) string {
	var parts []string
	if album.ViewCount != nil {
		parts = append(parts, model.FormatCount(*album.ViewCount)+" views")
	}
	if album.LikeCount != nil {
		parts = append(parts, model.FormatCount(*album.LikeCount)+" likes")
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for i, entry := range m.logs {
		if i > 0 {
			b.WriteString("\n")
		}
		var style lipgloss.Style
		var prefix string
		switch entry.Level {
		case showcase.LevelSuccess:
			style = successStyle
			prefix = "✓ "
		case showcase.LevelError:
			style = errorStyle
			prefix = "✗ "
		case showcase.LevelWarning:
			style = warningStyle
			prefix = "⚠ "
		default:
			style = infoStyle
			prefix = "• "
		}
		b.WriteString(style.Render(fit(prefix+entry.Message, sidePanelWidth)))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render("✗ " + m.errMsg)
	case m.detailLoading:
		return fmt.Sprintf("%s Loading album...", m.spinner.View())
	case m.loading && m.loaded:
		return fmt.Sprintf("%s Loading more...", m.spinner.View())
	case m.status != "":
		return infoStyle.Render(m.status)
	}
	return ""
}

func (m Model) getHelpText() string {
	switch {
	case m.searching:
		return "enter: search • esc: cancel"
	case m.detail != nil:
		return "esc: back • o: link • q: quit"
	}
	return "↑↓←→: move • enter: links • /: search • v: grid/list • [ ]: carousel • space: pause • o: link • r: reload • q: quit"
}

// fit truncates s to width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
