package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/bay"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/board"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/drag"
	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/timeline"
)

// keyMap defines the board view key bindings.
type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Left       key.Binding
	Right      key.Binding
	RowUp      key.Binding
	RowDown    key.Binding
	Commit     key.Binding
	Cancel     key.Binding
	Save       key.Binding
	Quit       key.Binding
	ToggleHelp key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next project")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev project")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "drag left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "drag right")),
		RowUp:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		RowDown:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Save:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write board file")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RowUp, k.RowDown, k.Commit, k.Quit, k.ToggleHelp}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.RowUp, k.RowDown, k.Commit, k.Cancel},
		{k.Save, k.Quit, k.ToggleHelp},
	}
}

// BoardModel is the interactive bay schedule board. Arrow keys express
// a drag gesture in pixels; the same mapper, row resolver, and drop
// resolution chain the replay path uses turn it into dates on commit.
type BoardModel struct {
	boardPath string
	b         *board.Board
	mode      timeline.ViewMode
	from      time.Time

	bars     []board.BarLayout
	selected int

	// In-progress gesture state.
	gesture  drag.Context
	deltaPx  float64
	deltaRow int
	dragging bool

	keys   keyMap
	help   help.Model
	styles Styles
	status string
	width  int
}

// NewBoardModel builds the interactive view for a board file.
func NewBoardModel(boardPath string, b *board.Board, mode timeline.ViewMode, from time.Time) (*BoardModel, error) {
	bars, err := board.ComputeLayout(context.Background(), b, mode, from)
	if err != nil {
		return nil, err
	}
	return &BoardModel{
		boardPath: boardPath,
		b:         b,
		mode:      mode,
		from:      timeline.Midnight(from),
		bars:      bars,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    DefaultStyles(),
		width:     120,
	}, nil
}

// Init implements tea.Model.
func (m *BoardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Next):
			m.cancelDrag()
			if len(m.bars) > 0 {
				m.selected = (m.selected + 1) % len(m.bars)
			}
		case key.Matches(msg, m.keys.Prev):
			m.cancelDrag()
			if len(m.bars) > 0 {
				m.selected = (m.selected + len(m.bars) - 1) % len(m.bars)
			}
		case key.Matches(msg, m.keys.Left):
			m.nudge(-m.mode.SlotWidth())
		case key.Matches(msg, m.keys.Right):
			m.nudge(m.mode.SlotWidth())
		case key.Matches(msg, m.keys.RowUp):
			m.startDrag()
			m.deltaRow--
		case key.Matches(msg, m.keys.RowDown):
			m.startDrag()
			m.deltaRow++
		case key.Matches(msg, m.keys.Commit):
			m.commitDrag()
		case key.Matches(msg, m.keys.Cancel):
			m.cancelDrag()
		case key.Matches(msg, m.keys.Save):
			if err := m.b.Save(m.boardPath); err != nil {
				m.status = m.styles.Error.Render(err.Error())
			} else {
				m.status = "board written to " + m.boardPath
			}
		}
	}
	return m, nil
}

func (m *BoardModel) startDrag() {
	if m.dragging || len(m.bars) == 0 {
		return
	}
	m.dragging = true
	m.gesture.Begin(m.bars[m.selected].Start.Format(timeline.ISODate))
}

// nudge moves the pending drag by a pixel delta and records the date
// now under the "pointer" in the gesture cache, exactly the way a
// pointer-move tick would.
func (m *BoardModel) nudge(px float64) {
	if len(m.bars) == 0 {
		return
	}
	m.startDrag()
	m.deltaPx += px

	bar := m.bars[m.selected]
	res, err := drag.InterpolateDate(m.deltaPx, m.mode.PixelsPerDay(), bar.Start)
	if err != nil {
		m.status = m.styles.Error.Render(err.Error())
		return
	}
	m.gesture.Update(res.ExactDateStr)
	m.status = fmt.Sprintf("dragging %s → %s", bar.ProjectNumber, res.ExactDateStr)
}

func (m *BoardModel) cancelDrag() {
	m.gesture.End()
	m.deltaPx = 0
	m.deltaRow = 0
	m.dragging = false
	m.status = ""
}

// commitDrag is the drop: resolve the date through the source chain,
// resolve the row, commit to the board, and recompute the layout.
func (m *BoardModel) commitDrag() {
	if !m.dragging || len(m.bars) == 0 {
		return
	}
	bar := m.bars[m.selected]

	res, err := drag.ResolveDropDate(drag.DropInput{
		Gesture: &m.gesture,
		Slots:   timeline.GenerateSlots(m.from, m.from.AddDate(0, 0, 1), m.mode),
	})
	if err != nil {
		m.status = m.styles.Error.Render("drop aborted: " + err.Error())
		m.cancelDrag()
		return
	}

	by, ok := m.b.Bay(bar.BayID)
	if !ok {
		m.cancelDrag()
		return
	}
	row := clamp(bar.RowIndex+m.deltaRow, 0, by.Rows()-1)
	ra, err := bay.ResolveRow(bar.BayID, row, by.Rows())
	if err != nil {
		m.status = m.styles.Error.Render("drop aborted: " + err.Error())
		m.cancelDrag()
		return
	}

	idx := m.b.ScheduleFor(bar.ProjectID)
	if idx < 0 {
		m.cancelDrag()
		return
	}
	if err := m.b.MoveSchedule(idx, res.Date, ra); err != nil {
		m.status = m.styles.Error.Render(err.Error())
		m.cancelDrag()
		return
	}
	m.cancelDrag()
	m.status = fmt.Sprintf("%s dropped on %s (row %d, %s)",
		bar.ProjectNumber, res.ExactDateStr, ra.RowIndex, res.Source)
	m.reflow()
}

func (m *BoardModel) reflow() {
	bars, err := board.ComputeLayout(context.Background(), m.b, m.mode, m.from)
	if err != nil {
		m.status = m.styles.Error.Render(err.Error())
		return
	}
	m.bars = bars
}

// View implements tea.Model.
func (m *BoardModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Bay Schedule"))
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s view, from %s",
		m.mode, m.from.Format(timeline.ISODate))))
	sb.WriteString("\n\n")

	for _, by := range m.b.Bays {
		sb.WriteString(m.styles.Bold.Render(by.Name))
		if by.Team != "" {
			sb.WriteString(m.styles.Muted.Render("  " + by.Team))
		}
		sb.WriteString("\n")
		for i, bar := range m.bars {
			if bar.BayID != by.ID {
				continue
			}
			sb.WriteString(m.renderBar(bar, i == m.selected))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// renderBar draws one schedule bar as colored phase segments, scaled
// from pixels down to terminal cells.
func (m *BoardModel) renderBar(bar board.BarLayout, selected bool) string {
	const cellPx = 12.0

	label := fmt.Sprintf("%-8s r%-2d %s..%s ",
		bar.ProjectNumber, bar.RowIndex,
		bar.Start.Format("01-02"), bar.End.Format("01-02"))
	if selected {
		label = m.styles.Selected.Render(label)
	} else {
		label = m.styles.Body.Render(label)
	}

	var seg strings.Builder
	pad := int(bar.Left / cellPx)
	if selected && m.dragging {
		pad += int(m.deltaPx / cellPx)
	}
	if pad > 0 {
		seg.WriteString(strings.Repeat(" ", pad))
	}
	for _, s := range bar.Segments {
		cells := s.Width / cellPx
		if s.Width > 0 && cells < 1 {
			cells = 1
		}
		if cells <= 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(PhaseColor(s.Phase))
		seg.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return label + seg.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
