package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command for walking a graph interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "browse [graph file]",
		Short: "Walk vertices and neighbors in an interactive view",
		Long: `Walk vertices and neighbors in an interactive view.

Move through the vertex list with the arrow keys, pick an outgoing neighbor
with left and right, and follow it with enter. Backspace returns to the
previous vertex. In-degrees are shown when the graph is built with --in-edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, res, err := c.load(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			p := tea.NewProgram(NewVertexListModel(res.Graph), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)

	return cmd
}
