package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/csrstore/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// neighborWindow is the number of neighbor ids shown at once.
const neighborWindow = 12

// =============================================================================
// VertexListModel - Interactive vertex browser
// =============================================================================

// VertexListModel is the bubbletea model for walking a graph. The upper table
// lists vertices; the line below it shows the outgoing neighbors of the
// vertex under the cursor, one of which is selected for following.
type VertexListModel struct {
	Graph    *graph.Graph
	Cursor   int
	Offset   int
	Height   int
	Neighbor int
	History  []int
}

// NewVertexListModel creates a new vertex list model.
func NewVertexListModel(g *graph.Graph) VertexListModel {
	return VertexListModel{Graph: g, Height: 15}
}

func (m VertexListModel) Init() tea.Cmd {
	return nil
}

func (m VertexListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.Graph.V() == 0 {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.jump(m.Cursor - 1)
		case "down", "j":
			m.jump(m.Cursor + 1)
		case "pgup":
			m.jump(m.Cursor - m.Height)
		case "pgdown":
			m.jump(m.Cursor + m.Height)
		case "home", "g":
			m.jump(0)
		case "end", "G":
			m.jump(int(m.Graph.V()) - 1)
		case "left", "h":
			if m.Neighbor > 0 {
				m.Neighbor--
			}
		case "right", "l":
			if m.Neighbor < len(m.neighbors())-1 {
				m.Neighbor++
			}
		case "enter":
			nbrs := m.neighbors()
			if len(nbrs) == 0 {
				return m, nil
			}
			m.History = append(m.History, m.Cursor)
			m.jump(int(nbrs[m.Neighbor]))
		case "backspace", "b":
			if n := len(m.History); n > 0 {
				prev := m.History[n-1]
				m.History = m.History[:n-1]
				m.jump(prev)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.jump(m.Cursor)
	}
	return m, nil
}

// jump moves the cursor to vertex i, clamped to the graph, and scrolls it
// into view. The neighbor selection resets whenever the vertex changes.
func (m *VertexListModel) jump(i int) {
	last := int(m.Graph.V()) - 1
	i = max(0, min(i, last))
	if i != m.Cursor {
		m.Neighbor = 0
	}
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// neighbors returns the outgoing neighbors of the vertex under the cursor.
func (m VertexListModel) neighbors() []graph.VertexID {
	if m.Graph.V() == 0 {
		return nil
	}
	return m.Graph.Vertex(graph.VertexID(m.Cursor)).Neighbors()
}

func (m VertexListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Graph · %d vertices · %d edges", m.Graph.V(), m.Graph.E())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ vertex  ←/→ neighbor  ⏎ follow  b back  q quit"))
	b.WriteString("\n\n")

	if m.Graph.V() == 0 {
		b.WriteString(listDimStyle.Render("  (no vertices)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, int(m.Graph.V()))
	inEdges := m.Graph.HasInEdges()

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := m.Graph.Vertex(graph.VertexID(i))
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		in := "-"
		if inEdges {
			in = strconv.Itoa(int(v.InDegree()))
		}
		rows = append(rows, []string{cursor, v.String(), strconv.Itoa(int(v.OutDegree())), in})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "Out", "In").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.neighborLine())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Graph.V())))

	return b.String()
}

// neighborLine renders a window of the neighbor list around the selection.
func (m VertexListModel) neighborLine() string {
	nbrs := m.neighbors()
	if len(nbrs) == 0 {
		return listDimStyle.Render("  no outgoing edges")
	}

	start := max(0, m.Neighbor-neighborWindow/2)
	end := min(len(nbrs), start+neighborWindow)
	start = max(0, end-neighborWindow)

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, listDimStyle.Render("…"))
	}
	for i := start; i < end; i++ {
		id := strconv.FormatInt(int64(nbrs[i]), 10)
		if i == m.Neighbor {
			parts = append(parts, listSelectedStyle.Render("["+id+"]"))
		} else {
			parts = append(parts, listNormalStyle.Render(id))
		}
	}
	if end < len(nbrs) {
		parts = append(parts, listDimStyle.Render("…"))
	}
	return "  " + listDimStyle.Render("→") + " " + strings.Join(parts, " ")
}
