package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/analysis"
	"github.com/matzehuels/csrstore/pkg/graph"
	"github.com/matzehuels/csrstore/pkg/pipeline"
)

// defaultTopK is the number of PageRank leaders printed by stats.
const defaultTopK = 10

// statsCommand creates the stats command for summarizing a graph.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		top   int
		flags buildFlags
	)

	cmd := &cobra.Command{
		Use:   "stats [graph file]",
		Short: "Print counts, degree statistics and PageRank leaders",
		Long: `Print counts, degree statistics and PageRank leaders of a graph.

The graph is loaded with the build options, so the numbers describe the
container as built: after mirroring, deduplication and singleton removal.
Rankings are cached alongside the graph snapshot. Use --top 0 to skip them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, res, err := c.load(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runStats(cmd, runner, res, top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "k", defaultTopK, "number of PageRank leaders to print (0 to skip)")
	flags.register(cmd)

	return cmd
}

// runStats prints the summary of a loaded graph.
func runStats(cmd *cobra.Command, runner *pipeline.Runner, res *pipeline.Result, top int) error {
	g := res.Graph
	prop := g.Property()
	out := newPrinter(cmd.OutOrStdout())

	out.title(res.Format + " graph")
	out.keyValue("vertices", strconv.FormatInt(g.V(), 10))
	out.keyValue("edges", strconv.FormatInt(g.E(), 10))
	out.keyValue("direction", g.Structure().Direction.String())
	out.keyValue("sorted", strconv.FormatBool(prop.Sorted))
	out.keyValue("in-edges", strconv.FormatBool(g.HasInEdges()))
	out.keyValue("source", res.ContentHash[:12])
	out.newline()

	printDegreeStats(out, g)

	cc := analysis.Components(g)
	largest := 0
	if len(cc) > 0 {
		largest = len(cc[0])
	}
	out.keyValue("components", strconv.Itoa(len(cc)))
	out.keyValue("largest", strconv.Itoa(largest))

	if top == 0 || g.V() == 0 {
		return nil
	}
	scores, err := runner.Rank(cmd.Context(), res, top)
	if err != nil {
		return err
	}
	out.newline()
	out.title("PageRank")
	out.line(rankTable(scores))
	return nil
}

// printDegreeStats prints the out-degree distribution of g.
func printDegreeStats(out printer, g *graph.Graph) {
	d := analysis.Degrees(g)
	out.keyValue("degree", fmt.Sprintf("min %d · max %d · mean %.2f · stddev %.2f", d.Min, d.Max, d.Mean, d.StdDev))
	out.keyValue("isolated", strconv.FormatInt(d.Isolated, 10))
	out.keyValue("self-loops", strconv.FormatInt(d.Loops, 10))
}

// rankTable renders scores as a bordered table.
func rankTable(scores []analysis.Score) string {
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.FormatInt(int64(s.Vertex), 10), strconv.FormatFloat(s.Rank, 'e', 4, 64)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Vertex", "Rank").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleNumber
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
