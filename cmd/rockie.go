package cmd

import (
	"fmt"
	"io"

	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/resource"
	"github.com/spf13/cobra"
)

func newRockieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rockie",
		Short: "Show or create your Rockie",
	}

	cmd.AddCommand(newRockieShowCmd(), newRockieCreateCmd())

	return cmd
}

func newRockieShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the Rockie profile",
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

			return showRockie(cmd.OutOrStdout(), output, a.rockies.Get(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table|json|yaml)")

	return cmd
}

func newRockieCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Rockie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if name == "" {
				name = a.cfg.Rockie.DefaultName
			}
			if err := a.rockies.CreateDefault(cmd.Context(), name).Failure(); err != nil {
				return err
			}
			return showRockie(cmd.OutOrStdout(), outputTable, a.rockies.Get(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Rockie name (default rockie.default_name)")

	return cmd
}

func showRockie(w io.Writer, output string, outcome reconcile.Outcome[*resource.Rockie]) error {
	if err := outcome.Failure(); err != nil {
		return err
	}
	return writeOutput(w, output, outcome.Data, func(w io.Writer) error {
		if outcome.Class == reconcile.Absent {
			_, err := fmt.Fprintln(w, resource.NoRockieMessage)
			return err
		}
		r := outcome.Data
		fmt.Fprintf(w, "Name:       %s\n", r.Name())
		fmt.Fprintf(w, "Evolution:  %s\n", r.EvolutionLabel())
		fmt.Fprintf(w, "Level:      %s\n", r.LevelLabel())
		fmt.Fprintf(w, "Experience: %s\n", r.ExperienceLabel())
		if r.CreationDate != "" {
			fmt.Fprintf(w, "Created:    %s\n", r.CreationDate)
		}
		return nil
	})
}
