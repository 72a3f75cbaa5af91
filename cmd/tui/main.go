package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/placebi/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/placebi/internal/config"
	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/ledger/store"
)

type model struct {
	appName string
	svc     *ledger.Service
	form    *entry.Form

	current View
	active  view.View
	width   int
	height  int
}

type View int

const (
	ViewMenu      View = 0
	ViewSetup     View = 1
	ViewDashboard View = 2
	ViewRevenues  View = 3
	ViewExpenses  View = 4
	ViewSettings  View = 5
)

func initialModel(cfg *config.Config, svc *ledger.Service) model {
	m := model{
		appName: cfg.App.Name,
		svc:     svc,
		form:    entry.NewForm(),
		current: ViewMenu,
	}

	if _, ok := svc.Restaurant(); !ok {
		m.current = ViewSetup
		m.active = view.NewSetupModel(svc, m.form)
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.active == nil {
		return nil
	}

	return m.active.Init()
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	m.current = v

	switch v {
	case ViewSetup:
		m.active = view.NewSetupModel(m.svc, m.form)
	case ViewDashboard:
		m.active = view.NewDashboardModel(m.svc, time.Now)
	case ViewRevenues:
		m.active = view.NewRevenueModel(m.svc, m.form)
	case ViewExpenses:
		m.active = view.NewExpenseModel(m.svc, m.form)
	case ViewSettings:
		m.active = view.NewSettingsModel(m.svc)
	default:
		m.current = ViewMenu
		m.active = nil

		return m, nil
	}

	cmds := []tea.Cmd{m.active.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard)
			case "2":
				return m.open(ViewRevenues)
			case "3":
				return m.open(ViewExpenses)
			case "4":
				return m.open(ViewSettings)
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case view.BackMsg, view.SetupDoneMsg:
		return m.open(ViewMenu)

	case view.SetupRequiredMsg, view.EditProfileMsg:
		return m.open(ViewSetup)
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.current == ViewMenu || m.active == nil {
		title := m.appName
		if r, ok := m.svc.Restaurant(); ok {
			title += " · " + r.Name
		}

		return lipgloss.NewStyle().Padding(2).Render(
			title + "\n\n" +
				"1. Tableau de bord\n" +
				"2. Revenus\n" +
				"3. Dépenses\n" +
				"4. Paramètres\n\n" +
				"q. Quitter",
		)
	}

	return m.active.View()
}

func main() {
	if err := run(); err != nil {
		slog.Error("tui stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so that deferred cleanup always happens.
func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	repo, closeRepo, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	defer closeRepo()

	svc := ledger.NewService(repo)

	if err := svc.Load(ctx); err != nil {
		slog.Warn("failed to load saved state, starting empty", "error", err)
	}

	logger, closeLog, err := newLogger(cfg.TUI.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	prev := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(prev)

	p := tea.NewProgram(initialModel(cfg, svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}

// newLogger keeps log output off the terminal while the program owns it.
// Records go to path when set and are dropped otherwise.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }, nil
}
