// Package explore provides the Bubble Tea candidate browser.
package explore

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/xorcrack/internal/breaker"
)

const (
	keyColumnWidth = 32
	maxTableRows   = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	discardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	plaintextWrap = lipgloss.NewStyle()
)

// Model implements the Bubble Tea candidate browser: a table of attempted
// key sizes with a scrollable preview of the selected decryption.
type Model struct {
	candidates []breaker.Candidate

	tbl    table.Model
	vp     viewport.Model
	cursor int

	width  int
	height int
	ready  bool
}

// NewModel constructs a browser over the candidates of one break run.
func NewModel(candidates []breaker.Candidate) *Model {
	columns := []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Size", Width: 4},
		{Title: "Distance", Width: 9},
		{Title: "Score", Width: 7},
		{Title: "Key", Width: keyColumnWidth},
	}
	rows := make([]table.Row, 0, len(candidates))
	for i, c := range candidates {
		score := "-"
		key := "(no decodable key)"
		if c.OK {
			score = fmt.Sprintf("%.4f", c.Score)
			key = c.Key
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(c.KeySize),
			fmt.Sprintf("%.4f", c.Distance),
			score,
			key,
		})
	}

	height := len(rows)
	if height > maxTableRows {
		height = maxTableRows
	}
	if height < 1 {
		height = 1
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	tbl.SetStyles(candidateTableStyles())

	m := &Model{
		candidates: candidates,
		tbl:        tbl,
		vp:         viewport.New(0, 0),
	}
	m.refreshPreview()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.tbl.GotoTop()
			m.syncCursor()
			return m, nil
		case "G", "end":
			m.tbl.GotoBottom()
			m.syncCursor()
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			m.syncCursor()
			return m, cmd
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	title := titleStyle.Render("Candidate key sizes")
	footer := footerStyle.Render("↑/↓ select · pgup/pgdn scroll plaintext · q quit")
	return title + "\n" + m.tbl.View() + "\n\n" + m.vp.View() + "\n" + footer
}

func (m *Model) layout() {
	m.tbl.SetWidth(m.width)
	previewHeight := m.height - m.tbl.Height() - 4
	if previewHeight < 1 {
		previewHeight = 1
	}
	m.vp.Width = m.width
	m.vp.Height = previewHeight
	m.refreshPreview()
}

func (m *Model) syncCursor() {
	if m.tbl.Cursor() == m.cursor {
		return
	}
	m.cursor = m.tbl.Cursor()
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	if len(m.candidates) == 0 {
		m.vp.SetContent(discardStyle.Render("No candidate key sizes."))
		return
	}
	if m.cursor < 0 || m.cursor >= len(m.candidates) {
		return
	}
	c := m.candidates[m.cursor]
	if !c.OK {
		m.vp.SetContent(discardStyle.Render(
			fmt.Sprintf("Key size %d discarded: a column had no decodable key.", c.KeySize)))
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.vp.SetContent(plaintextWrap.Render(wrapText(string(c.Plaintext), width)))
	m.vp.GotoTop()
}

func candidateTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
