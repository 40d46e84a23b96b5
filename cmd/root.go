package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Execute runs the beplus command tree. An interrupt cancels the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "beplus",
		Short:         "Be+ activities and Rockie companion in your terminal",
		Long:          "beplus manages your Be+ wellness activities and Rockie profile from a terminal UI, with scriptable subcommands for the same operations.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (default $XDG_CONFIG_HOME/beplus/config.toml)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(
		newVersionCmd(),
		newActivitiesCmd(),
		newRockieCmd(),
		newAuthCmd(),
		newCallsCmd(),
		newConfigCmd(),
		newServeFakeCmd(),
	)

	return rootCmd
}
