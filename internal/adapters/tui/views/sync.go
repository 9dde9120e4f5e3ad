package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"figsync/internal/adapters/tui/styles"
	"figsync/internal/application/commands"
	"figsync/internal/config"
	"figsync/internal/ports"
)

// SyncKeyMap defines key bindings for the sync view
type SyncKeyMap struct {
	Start  key.Binding
	Cancel key.Binding
	Back   key.Binding
}

var SyncKeys = SyncKeyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter", "start"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "abort"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// SyncModel runs the pipeline and shows the per-phase outcome.
type SyncModel struct {
	ViewState

	api   ports.DesignAPI
	store ports.AssetStore
	cfg   config.Config

	spinner spinner.Model
	running bool
	cancel  context.CancelFunc
	report  *commands.SyncReport
	runErr  error
}

// NewSyncModel creates a new sync view model
func NewSyncModel(api ports.DesignAPI, store ports.AssetStore, cfg config.Config) *SyncModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PhaseRunning

	return &SyncModel{
		api:     api,
		store:   store,
		cfg:     cfg,
		spinner: sp,
	}
}

// Init initializes the sync view
func (m *SyncModel) Init() tea.Cmd {
	return nil
}

type syncDoneMsg struct {
	report *commands.SyncReport
	err    error
}

func (m *SyncModel) startSync() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m.report = nil
	m.runErr = nil

	run := func() tea.Msg {
		report, err := commands.NewSyncCommand(m.api, m.store, nil, m.cfg, nil, false).Execute(ctx)
		return syncDoneMsg{report: report, err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

// Update handles messages for the sync view
func (m *SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case syncDoneMsg:
		m.running = false
		m.cancel = nil
		m.report = msg.report
		m.runErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SyncKeys.Cancel):
			if m.running && m.cancel != nil {
				// Honored between batches and items, not mid-request.
				m.cancel()
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, SyncKeys.Back):
			if m.running {
				return m, nil
			}
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SyncKeys.Start):
			if m.running {
				return m, nil
			}
			if err := m.cfg.Validate(); err != nil {
				m.runErr = err
				return m, nil
			}
			return m, m.startSync()
		}
	}

	return m, nil
}

// View renders the sync view
func (m *SyncModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sync"))
	b.WriteString("\n\n")

	switch {
	case m.running:
		b.WriteString(m.spinner.View())
		b.WriteString(styles.PhaseRunning.Render(" syncing..."))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("ctrl+c aborts between batches"))

	case m.report != nil:
		for _, phase := range m.report.Phases {
			if phase.Err != nil {
				b.WriteString(styles.PhaseFailed.String())
				b.WriteString(fmt.Sprintf("%-9s  %v", phase.Phase, phase.Err))
			} else {
				b.WriteString(styles.PhaseDone.String())
				b.WriteString(fmt.Sprintf("%-9s  %s", phase.Phase, phase.Message))
			}
			b.WriteString("\n")
		}
		if m.report.Downloads != nil {
			for _, f := range m.report.Downloads.Failed() {
				b.WriteString(styles.StatePlaceholder.Render(fmt.Sprintf("  retry next run: %s", f.Item.Dest)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		if m.runErr != nil {
			b.WriteString(styles.ErrorMsg.Render(m.runErr.Error()))
		} else {
			b.WriteString(styles.Success.Render("Sync complete"))
		}

	case m.runErr != nil:
		b.WriteString(styles.ErrorMsg.Render(m.runErr.Error()))

	default:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("File %s → %s", m.cfg.FileID, m.store.Root())))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press enter to start"))
	}

	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s",
		styles.HelpKey.Render("enter"),
		styles.HelpDesc.Render("start"),
		styles.HelpKey.Render("esc"),
		styles.HelpDesc.Render("back"),
	))

	return styles.App.Render(b.String())
}
