package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"figsync/internal/adapters/tui/styles"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// BrowserKeyMap defines key bindings for the asset browser
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Kind   key.Binding
	Copy   key.Binding
	Delete key.Binding
	Sync   key.Binding
	Reload key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Kind: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle kind"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "copy path"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete placeholder"),
	),
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// kindCycle orders the tab filter: everything first, then each kind.
var kindCycle = []string{"", "page", "screen", "component", "fill", "rendered"}

// BrowserModel lists the synced assets with their oracle state.
type BrowserModel struct {
	ViewState

	store ports.AssetStore

	rows     []assetRow
	cursor   int
	kindIdx  int
	kindOnly string
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(store ports.AssetStore) *BrowserModel {
	return &BrowserModel{store: store}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadAssets
}

func (m *BrowserModel) loadAssets() tea.Msg {
	assets, err := m.store.ListAssets()
	if err != nil {
		return errMsg{err}
	}
	rows := make([]assetRow, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, assetRow{Asset: a, State: m.store.Classify(a.Path)})
	}
	return assetsLoadedMsg{rows}
}

type assetsLoadedMsg struct {
	rows []assetRow
}

type placeholderDeletedMsg struct {
	path string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case assetsLoadedMsg:
		m.rows = msg.rows
		m.clampCursor()
		return m, nil

	case placeholderDeletedMsg:
		m.SetMessage(fmt.Sprintf("Deleted %s", msg.path), false)
		return m, m.loadAssets

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.visibleRows())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Kind):
			m.kindIdx = (m.kindIdx + 1) % len(kindCycle)
			m.kindOnly = kindCycle[m.kindIdx]
			m.cursor = 0
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if row := m.selectedRow(); row != nil {
				clipboard.WriteAll(row.Asset.Path)
				m.SetMessage(fmt.Sprintf("Copied %s", row.Asset.Path), false)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Delete):
			if row := m.selectedRow(); row != nil {
				if row.State != domain.AssetPlaceholder {
					m.SetMessage("Only placeholders can be deleted here", true)
					return m, nil
				}
				return m, m.deletePlaceholder(row.Asset.Path)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.loadAssets

		case key.Matches(msg, BrowserKeys.Sync):
			return m, func() tea.Msg {
				return SwitchToSyncMsg{}
			}

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) deletePlaceholder(path string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.RemoveAsset(path); err != nil {
			return errMsg{err}
		}
		return placeholderDeletedMsg{path}
	}
}

func (m *BrowserModel) visibleRows() []assetRow {
	if m.kindOnly == "" {
		return m.rows
	}
	var rows []assetRow
	for _, row := range m.rows {
		if row.Asset.Kind == m.kindOnly {
			rows = append(rows, row)
		}
	}
	return rows
}

func (m *BrowserModel) selectedRow() *assetRow {
	rows := m.visibleRows()
	if m.cursor >= 0 && m.cursor < len(rows) {
		return &rows[m.cursor]
	}
	return nil
}

func (m *BrowserModel) clampCursor() {
	rows := m.visibleRows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Reload refreshes the asset list from disk
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadAssets
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("figsync"))
	b.WriteString("\n")
	filter := m.kindOnly
	if filter == "" {
		filter = "all kinds"
	}
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s — %d assets", filter, len(m.visibleRows()))))
	b.WriteString("\n\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("No assets synced yet. Press s to run a sync."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderRow(row assetRow, selected bool) string {
	var state string
	switch row.State {
	case domain.AssetValid:
		state = styles.StateValid.Render("valid      ")
	case domain.AssetPlaceholder:
		state = styles.StatePlaceholder.Render("placeholder")
	default:
		state = styles.StateAbsent.Render("absent     ")
	}

	kind := styles.MutedText.Foreground(styles.KindColor(row.Asset.Kind)).Render(fmt.Sprintf("%-9s", row.Asset.Kind))
	text := fmt.Sprintf("%s  %s", row.Asset.Name, styles.MutedText.Render(fmt.Sprintf("(%d bytes)", row.Asset.Size)))
	if selected {
		text = styles.RowSelected.Render(row.Asset.Name)
	}

	return fmt.Sprintf("%s  %s  %s", kind, state, text)
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"tab", "kind"},
		{"c", "copy path"},
		{"d", "delete placeholder"},
		{"s", "sync"},
		{"/", "search"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
