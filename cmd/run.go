package cmd

import (
	"github.com/beplus/beplus/internal/app"
	"github.com/beplus/beplus/internal/screen"
	"github.com/beplus/beplus/internal/screens/activities"
	"github.com/beplus/beplus/internal/screens/calls"
	"github.com/beplus/beplus/internal/screens/home"
	"github.com/beplus/beplus/internal/screens/rockie"
	"github.com/spf13/cobra"
)

// runApp wires dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	a, err := wireApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	noSplash, _ := cmd.Flags().GetBool("no-splash")
	identity, signedIn := a.identity(ctx)

	factories := home.Factories{
		Activities: func() screen.Screen { return activities.New(ctx, a.activities) },
		Rockie:     func() screen.Screen { return rockie.New(ctx, a.rockies, a.cfg.Rockie.DefaultName) },
		Calls:      func() screen.Screen { return calls.New(ctx, a.store.CallLog()) },
	}

	a.logger.Info("starting tui", "signed_in", signedIn)
	return app.Run(ctx, app.Options{
		Home:     func() screen.Screen { return home.New(factories, signedIn) },
		Splash:   !noSplash,
		Identity: identity,
	})
}
