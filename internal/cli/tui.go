package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lexgraph/pkg/explore"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// ExploreModel - Interactive graph exploration
// =============================================================================

// expandedMsg carries the outcome of one expansion back into the model.
type expandedMsg struct {
	result *explore.Result
	err    error
}

// ExploreModel is the bubbletea model for exploring one graph. The node list
// is the graph in insertion order; activating a node expands it.
type ExploreModel struct {
	ctx context.Context
	x   *explore.Explorer

	Cursor int
	Offset int
	Height int

	// Busy is set while an expansion is in flight.
	Busy bool

	// Status is the line shown under the list after the last expansion.
	Status string
}

// NewExploreModel creates a model over x with the seed selected.
func NewExploreModel(ctx context.Context, x *explore.Explorer) ExploreModel {
	return ExploreModel{ctx: ctx, x: x, Height: 15}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < m.x.Graph().NodeCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if m.Busy {
				return m, nil
			}
			n := m.selected()
			if n == nil {
				return m, nil
			}
			m.Busy = true
			m.Status = "expanding " + n.String() + "..."
			return m, m.expand(n)
		}
	case expandedMsg:
		m.Busy = false
		m.Status = expandStatus(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// expand runs the expansion off the UI loop.
func (m ExploreModel) expand(n *explore.Node) tea.Cmd {
	ctx, x := m.ctx, m.x
	return func() tea.Msg {
		res, err := x.Expand(ctx, n)
		return expandedMsg{result: res, err: err}
	}
}

func (m ExploreModel) selected() *explore.Node {
	nodes := m.x.Graph().Nodes()
	if m.Cursor < 0 || m.Cursor >= len(nodes) {
		return nil
	}
	return nodes[m.Cursor]
}

func expandStatus(msg expandedMsg) string {
	if msg.err != nil {
		return styleIconError.Render(iconError) + " " + msg.err.Error()
	}
	res := msg.result
	if res.AlreadyExpanded {
		return StyleDim.Render(res.Node.String() + " is already expanded")
	}
	s := fmt.Sprintf("%s %s: %d new nodes, %d new edges",
		iconSuccess, res.Node.String(), len(res.NewNodes), len(res.NewEdges))
	if len(res.Skipped) > 0 {
		return StyleSuccess.Render(s) + StyleWarning.Render(fmt.Sprintf(", %d skipped", len(res.Skipped)))
	}
	return StyleSuccess.Render(s)
}

func (m ExploreModel) View() string {
	var b strings.Builder
	g := m.x.Graph()
	nodes := g.Nodes()

	b.WriteString(StyleTitle.Render("Explore " + m.x.Seed().String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(nodes) {
		end = len(nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		state := iconFrontier
		if n.Expanded() {
			state = iconExpanded
		}
		p := n.Position()
		rows = append(rows, []string{
			cursor, state, n.Sense().Head(), n.ID().String(),
			fmt.Sprintf("%d", len(g.EdgesFrom(n))),
			fmt.Sprintf("%.0f,%.0f", p.X, p.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Sense", "ID", "Out", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(nodes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case col >= 3:
				return listDimStyle
			case nodes[idx].Expanded():
				return listNormalStyle
			}
			return listDimStyle
		})

	list := t.Render()
	if n := m.selected(); n != nil {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detailBoxStyle.Render(m.detail(n)))
	}
	b.WriteString(list)
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d edges", m.Cursor+1, len(nodes), g.EdgeCount())))
	if m.Status != "" {
		b.WriteString("\n  ")
		b.WriteString(m.Status)
	}

	return b.String()
}

// detail renders the selected sense and its outgoing edges.
func (m ExploreModel) detail(n *explore.Node) string {
	var b strings.Builder
	s := n.Sense()
	b.WriteString(StyleHighlight.Render(n.ID().String()))
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(strings.Join(s.Words, ", ")))
	if s.Gloss != "" {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(s.Gloss))
	}
	b.WriteString("\n")

	edges := m.x.Graph().EdgesFrom(n)
	if !n.Expanded() {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("not expanded"))
		return b.String()
	}
	if len(edges) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("no relations"))
	}
	for _, e := range edges {
		b.WriteString("\n")
		b.WriteString(StyleRelation.Render(e.Label()))
		b.WriteString(" " + StyleDim.Render(iconArrow) + " ")
		b.WriteString(e.To().String())
	}
	return b.String()
}
