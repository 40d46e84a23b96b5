package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/beplus/beplus/internal/resource"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

func newActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List, add and delete activities",
	}

	cmd.AddCommand(newActivitiesListCmd(), newActivitiesAddCmd(), newActivitiesDeleteCmd())

	return cmd
}

func newActivitiesListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.activities.List(cmd.Context())
			if err := outcome.Failure(); err != nil {
				return err
			}
			items := outcome.Data
			if items == nil {
				items = []resource.Activity{}
			}
			return writeOutput(cmd.OutOrStdout(), output, items, func(w io.Writer) error {
				return writeActivitiesTable(w, items)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table|json|yaml)")

	return cmd
}

func writeActivitiesTable(w io.Writer, items []resource.Activity) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No activities found.")
		return err
	}

	fmt.Fprintf(w, "%-36s  %-20s  %s\n", "ID", "Type", "Data")
	fmt.Fprintln(w, strings.Repeat("─", 80))
	for _, item := range items {
		fmt.Fprintf(w, "%-36s  %s  %s\n", item.ActivityID, fitColumn(item.ActivityType, 20), item.DataString())
	}
	_, err := fmt.Fprintf(w, "\n%d activities\n", len(items))
	return err
}

// fitColumn truncates s to width cells and pads it to exactly width.
func fitColumn(s string, width int) string {
	s = ansi.Truncate(s, width, "...")
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}

func newActivitiesAddCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Create an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var payload json.RawMessage
			if data != "" {
				payload = json.RawMessage(data)
			}
			outcome := a.activities.Create(cmd.Context(), args[0], payload)
			if err := outcome.Failure(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resource.ActivityAddedMessage)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", `Activity data as JSON (default {"time":30})`)

	return cmd
}

func newActivitiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.activities.Delete(cmd.Context(), args[0])
			if err := outcome.Failure(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resource.ActivityDeletedMessage)
			return nil
		},
	}
}
