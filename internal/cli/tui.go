package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// ClassBrowserModel - Interactive subgroup class browser
// =============================================================================

// ClassBrowserModel is the bubbletea model for browsing the classes found
// by a subgroup search. The list is on the left and the action table of the
// selected class on the right.
type ClassBrowserModel struct {
	Columns []string
	Classes []pipeline.ClassSummary
	Cursor  int
	Height  int
	Offset  int

	// NormalOnly hides classes of non-normal subgroups.
	NormalOnly bool
}

// NewClassBrowserModel creates a browser over classes of a group with the
// given generator names.
func NewClassBrowserModel(generators []string, classes []pipeline.ClassSummary) ClassBrowserModel {
	cols := make([]string, 0, 2*len(generators))
	for _, g := range generators {
		cols = append(cols, g, g+"^-1")
	}
	return ClassBrowserModel{
		Columns: cols,
		Classes: classes,
		Height:  15,
	}
}

// visible returns the indices of the listed classes.
func (m ClassBrowserModel) visible() []int {
	var idx []int
	for i, s := range m.Classes {
		if !m.NormalOnly || s.Normal {
			idx = append(idx, i)
		}
	}
	return idx
}

// Selected returns the class under the cursor.
func (m ClassBrowserModel) Selected() (pipeline.ClassSummary, bool) {
	idx := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(idx) {
		return pipeline.ClassSummary{}, false
	}
	return m.Classes[idx[m.Cursor]], true
}

func (m ClassBrowserModel) Init() tea.Cmd {
	return nil
}

func (m ClassBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "n":
			m.NormalOnly = !m.NormalOnly
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ClassBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Subgroup classes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  n normal only  q quit"))
	b.WriteString("\n\n")

	idx := m.visible()
	if len(idx) == 0 {
		b.WriteString(listDimStyle.Render("  no classes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(idx))
	var list strings.Builder
	for pos := m.Offset; pos < end; pos++ {
		s := m.Classes[idx[pos]]
		cursor := "  "
		if pos == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if s.Normal {
			mark = StyleSuccess.Render("◆")
		}
		line := fmt.Sprintf("%s%s #%-3d index %-3d %s", cursor, mark, idx[pos]+1, s.Index, s.Invariants.Text)
		if pos == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	detail := ""
	if s, ok := m.Selected(); ok {
		detail = detailBoxStyle.Render(m.detail(s))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(idx))))
	return b.String()
}

// detail renders the generators and action table of a class.
func (m ClassBrowserModel) detail(s pipeline.ClassSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("generators"), joinOrDash(s.Generators))
	fmt.Fprintf(&b, "%s %s\n", StyleDim.Render("normal    "), strconv.FormatBool(s.Normal))
	rows := make([][]string, len(s.Table))
	for i, row := range s.Table {
		cells := []string{strconv.Itoa(i + 1)}
		for _, v := range row {
			cells = append(cells, strconv.Itoa(v))
		}
		rows[i] = cells
	}
	b.WriteString(renderTable(append([]string{"pt"}, m.Columns...), rows))
	return b.String()
}
