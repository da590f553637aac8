// Command ajan scans the configured RSS feeds and renders the classified
// news desk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zappabad/lojistik/internal/app"
	"github.com/zappabad/lojistik/tui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Hata:")+" "+err.Error())
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "ajan",
		Short:         "Küresel istihbarat masası",
		Long:          "ajan fetches the configured RSS feeds, classifies each headline and renders the news desk.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			opts.Stderr = cmd.ErrOrStderr()
			app.Run(ctx, cmd.OutOrStdout(), opts, func(ctx context.Context, a *app.App) error {
				return a.NewsDesk(ctx, cmd.OutOrStdout())
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (or set LOJISTIK_CONFIG)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Write debug logs to stderr")
	cmd.Flags().BoolVar(&opts.NoSpinner, "no-spinner", false, "Disable the fetch spinner")
	return cmd
}
