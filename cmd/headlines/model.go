package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsfox/internal/domain/entity"
	hlUC "newsfox/internal/usecase/headline"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("230")).Background(lipgloss.Color("166"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1)
)

// resultMsg carries a finished fetch back into the update loop.
type resultMsg hlUC.Result

// model is the bubbletea view over one headline.State. Only Update mutates
// the state; fetches run as commands and report back through resultMsg.
type model struct {
	ctx     context.Context
	fetcher hlUC.Fetcher
	logger  *slog.Logger

	categories []entity.Category
	catIdx     int
	state      hlUC.State
	cursor     int

	width, height int
}

func newModel(ctx context.Context, fetcher hlUC.Fetcher, logger *slog.Logger, start entity.Category) model {
	cats := entity.Categories()
	idx := 0
	for i, c := range cats {
		if c == start {
			idx = i
		}
	}
	return model{
		ctx:        ctx,
		fetcher:    fetcher,
		logger:     logger,
		categories: cats,
		catIdx:     idx,
		height:     24,
	}
}

func (m model) fetch(req hlUC.Request) tea.Cmd {
	ctx, f := m.ctx, m.fetcher
	return func() tea.Msg {
		return resultMsg(f.Fetch(ctx, req))
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return selectMsg(m.catIdx) }
}

// selectMsg switches to the category at the given index.
type selectMsg int

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case selectMsg:
		return m.selectCategory(int(msg))

	case resultMsg:
		next, applied := m.state.Apply(hlUC.Result(msg))
		if !applied {
			m.logger.Debug("discarded stale result",
				slog.String("category", msg.Request.Category.String()),
				slog.Int("page", msg.Request.Page))
			return m, nil
		}
		m.state = next
		if next.LastError != nil {
			m.logger.Warn("headline fetch failed",
				slog.String("category", msg.Request.Category.String()),
				slog.Int("page", msg.Request.Page),
				slog.Any("error", next.LastError))
		}
		if m.cursor >= len(m.state.Accumulated) {
			m.cursor = max(0, len(m.state.Accumulated)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.categories)
	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "right", "tab", "l":
		return m.selectCategory((m.catIdx + 1) % n)
	case "left", "shift+tab", "h":
		return m.selectCategory((m.catIdx - 1 + n) % n)
	case "1", "2", "3", "4", "5", "6", "7":
		return m.selectCategory(int(key[0] - '1'))
	case "down", "j":
		if m.cursor < len(m.state.Accumulated)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "m", " ", "enter":
		next, req, ok := m.state.LoadMore()
		if !ok {
			return m, nil
		}
		m.state = next
		return m, m.fetch(req)
	case "r":
		next, req, ok := m.state.Retry()
		if !ok {
			return m, nil
		}
		m.state = next
		return m, m.fetch(req)
	}
	return m, nil
}

func (m model) selectCategory(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.categories) {
		return m, nil
	}
	m.catIdx = idx
	next, req := m.state.ChangeCategory(m.categories[idx])
	m.state = next
	m.cursor = 0
	return m, m.fetch(req)
}

func (m model) View() string {
	var b strings.Builder

	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if i == m.catIdx {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	articles := m.state.Accumulated
	if m.state.Phase == hlUC.PhaseLoading {
		b.WriteString(statusStyle.Render("Loading headlines…"))
		return b.String()
	}

	// 1記事あたり2行
	visible := max(1, (m.height-6)/2)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(articles), start+visible)
	for i := start; i < end; i++ {
		a := articles[i]
		title := titleStyle.Render(a.Title)
		marker := "  "
		if i == m.cursor {
			title = selectedStyle.Render(a.Title)
			marker = "> "
		}
		b.WriteString(marker + title + "\n")
		b.WriteString("  " + metaStyle.Render(meta(a)) + "\n")
	}

	b.WriteString(m.status())
	return b.String()
}

func (m model) status() string {
	s := m.state
	switch {
	case s.Phase == hlUC.PhaseFailed:
		return errorStyle.Render(fmt.Sprintf("Could not load headlines: %v  (r: retry, q: quit)", s.LastError))
	case s.Phase == hlUC.PhaseLoadingMore:
		return statusStyle.Render(fmt.Sprintf("%d of %d · loading more…", len(s.Accumulated), s.TotalAvailable))
	case len(s.Accumulated) == 0:
		return statusStyle.Render("No headlines in this category.")
	case s.CanLoadMore():
		return statusStyle.Render(fmt.Sprintf("%d of %d · m: load more · ←/→: category · q: quit", len(s.Accumulated), s.TotalAvailable))
	default:
		return statusStyle.Render(fmt.Sprintf("%d headlines · end of results · q: quit", len(s.Accumulated)))
	}
}

func meta(a entity.Article) string {
	parts := []string{a.SourceName}
	if a.Author != nil && *a.Author != "" {
		parts = append(parts, *a.Author)
	}
	if !a.PublishedAt.IsZero() {
		parts = append(parts, a.PublishedAt.Local().Format("Jan 2 15:04"))
	}
	return strings.Join(parts, " · ")
}
