package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bloodmagesoftware/arspace/plan"
)

var listCmd = &cobra.Command{
	Use:   "list {plan}",
	Short: "List the measurements of a plan",
	Long:  `Prints the measurement history of a plan in drawing order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tTYPE\tVALUE\tLABEL\tAT")
		for i, m := range s.plan.Measurements {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, m.ID, m.Kind, m.Display(), m.Label, formatPoint(m.LabelPoint()))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func describeMeasurement(m plan.Measurement) string {
	if m.Label == "" {
		return fmt.Sprintf("%s %s", m.Kind, m.Display())
	}
	return fmt.Sprintf("%s %s (%s)", m.Kind, m.Display(), m.Label)
}

func formatPoint(p plan.Vec2) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
