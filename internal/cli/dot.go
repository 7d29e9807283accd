package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/recoveryflow/pkg/diagram"
	"github.com/matzehuels/recoveryflow/pkg/workflow"
)

// dotCommand creates the dot command, which prints the graph description
// without invoking a layout engine.
func (c *CLI) dotCommand() *cobra.Command {
	var direction, size string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the workflow graph in DOT language",
		Long: `Print the workflow graph in DOT language.

The output is exactly what render hands to the layout engine and can be piped
into any Graphviz tool, e.g. "recoveryflow dot | dot -Tsvg > flow.svg".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := workflow.Build(workflow.Options{
				Direction: diagram.ParseDirection(direction),
				Size:      size,
			})
			if err != nil {
				return fmt.Errorf("build workflow: %w", err)
			}
			if err := d.Validate(); err != nil {
				return err
			}
			_, err = c.out.Write(d.DOT())
			return err
		},
	}

	cmd.Flags().StringVar(&direction, "direction", string(diagram.TopToBottom), "rank direction: TB (default), LR, BT, RL")
	cmd.Flags().StringVar(&size, "size", workflow.DefaultSize, "size bound in inches")

	return cmd
}
