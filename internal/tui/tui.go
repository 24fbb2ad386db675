// Package tui is the interactive, paginated todo table.
//
// The model loads the item list once through a Loader. Until that load
// succeeds it only shows a loading indicator; a failed load leaves it there
// for the rest of the session. Once ready, every key press maps to one
// synchronous call on the pagination controller.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/pager"
	"github.com/idilsaglam/todoview/internal/store"
	"github.com/idilsaglam/todoview/internal/ui"
)

// Loader supplies the item list.
type Loader interface {
	LoadItems(ctx context.Context) ([]model.Item, error)
}

type loadedMsg struct{ items []model.Item }

type loadFailedMsg struct{ err error }

// Model implements tea.Model.
type Model struct {
	ctx    context.Context
	loader Loader
	logger zerolog.Logger

	items *store.Store
	pages *pager.Controller

	ready   bool
	loadErr error

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	width   int
}

// New builds the model. Nothing is loaded until the program calls Init.
func New(ctx context.Context, loader Loader, logger zerolog.Logger) Model {
	s := store.New()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Accent
	return Model{
		ctx:     ctx,
		loader:  loader,
		logger:  logger.With().Str("component", "tui").Logger(),
		items:   s,
		pages:   pager.New(s),
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeys(),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, loader Loader, logger zerolog.Logger) error {
	p := tea.NewProgram(New(ctx, loader, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		items, err := loader.LoadItems(ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{items: items}
	}
}

// Ready reports whether the load completed.
func (m Model) Ready() bool { return m.ready }

// Pages exposes the controller for callers that drive the model directly.
func (m Model) Pages() *pager.Controller { return m.pages }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.items.Load(msg.items)
		m.pages.First()
		m.ready = true
		m.loadErr = nil
		m.logger.Info().Int("items", m.items.Count()).Int("pages", m.pages.TotalPages()).Msg("Ready")
		return m, nil

	case loadFailedMsg:
		m.loadErr = msg.err
		m.logger.Error().Err(msg.err).Msg("Load failed")
		return m, nil

	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if !m.ready {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		if m.pages.CanGoPrev() {
			m.pages.Prev()
		}
	case key.Matches(msg, m.keys.Next):
		if m.pages.CanGoNext() {
			m.pages.Next()
		}
	case key.Matches(msg, m.keys.First):
		m.pages.First()
	case key.Matches(msg, m.keys.Last):
		m.pages.Last()
	case key.Matches(msg, m.keys.Jump) && len(msg.Runes) == 1:
		m.jumpToLabel(int(msg.Runes[0] - '0'))
	}
	m.logger.Debug().Int("page", m.pages.CurrentPage()).Str("key", msg.String()).Msg("Page change")
	return m, nil
}

// jumpToLabel moves to the n-th numeric label of the current row (1-based).
func (m Model) jumpToLabel(n int) {
	seen := 0
	for _, l := range m.pages.PageLabels() {
		if l.IsEllipsis() {
			continue
		}
		seen++
		if seen == n {
			m.pages.GoTo(l.Page)
			return
		}
	}
}

func (m Model) View() string {
	th := ui.Current()
	if !m.ready {
		lines := []string{
			th.Title.Render("Todo List"),
			"",
			m.spinner.View() + " Loading...",
		}
		if m.loadErr != nil {
			lines = append(lines, "", th.Error.Render("load failed: "+m.loadErr.Error()))
		}
		lines = append(lines, "", m.help.View(m.keys))
		return ui.Panel(lines)
	}

	all := m.items.All()
	done, _ := model.Stats(all)
	lines := []string{
		ui.Header(all),
		th.Muted.Render(ui.ProgressBar(done, len(all), 28)),
		"",
	}

	if m.items.Count() == 0 {
		lines = append(lines, th.Muted.Render("no items"))
	} else {
		bar := ui.PageBar(m.pages.PageLabels(), m.pages.CurrentPage(), m.pages.CanGoPrev(), m.pages.CanGoNext())
		table := ui.Table(m.pages.VisiblePage())
		lines = append(lines,
			table,
			lipgloss.PlaceHorizontal(lipgloss.Width(table), lipgloss.Center, bar),
			lipgloss.PlaceHorizontal(lipgloss.Width(table), lipgloss.Center,
				ui.PageStatus(m.pages.CurrentPage(), m.pages.TotalPages())),
		)
	}
	lines = append(lines, "", m.help.View(m.keys))
	return ui.Panel(lines)
}
