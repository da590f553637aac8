// Command lojistik renders the freight market snapshot, appends it to the
// snapshot log and shows the log as a table or as trend charts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zappabad/lojistik/internal/app"
	"github.com/zappabad/lojistik/tui/styles"
)

type options struct {
	configPath string
	verbose    bool
	noSpinner  bool
	news       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("Hata:")+" "+err.Error())
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "lojistik",
		Short: "Küresel lojistik piyasa terminali",
		Long: `lojistik fetches daily closes for the tracked freight instruments,
renders the price table with risk commentary and appends the snapshot to the
CSV log.

Run without arguments for the market snapshot.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintf(out, "%s %s (kullanım: lojistik [log|grafik])\n",
					styles.WarnStyle.Render("Bilinmeyen komut:"), strings.Join(args, " "))
				return nil
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				if opts.news {
					if err := a.NewsDesk(ctx, out); err != nil {
						return err
					}
				}
				return a.Dashboard(ctx, out)
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (or set LOJISTIK_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Write debug logs to stderr")
	root.PersistentFlags().BoolVar(&opts.noSpinner, "no-spinner", false, "Disable the fetch spinner")
	root.Flags().BoolVar(&opts.news, "news", false, "Scan the news desk before the market snapshot")

	root.AddCommand(
		&cobra.Command{
			Use:   "log",
			Short: "Show the most recent snapshots, newest first",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
					return a.ShowHistory(cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "grafik",
			Short: "Plot the logged prices per instrument",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
					return a.ShowCharts(cmd.OutOrStdout())
				})
			},
		},
	)
	return root
}

func withApp(cmd *cobra.Command, opts *options, fn func(context.Context, *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app.Run(ctx, cmd.OutOrStdout(), app.Options{
		ConfigPath: opts.configPath,
		Verbose:    opts.verbose,
		NoSpinner:  opts.noSpinner,
		Stderr:     cmd.ErrOrStderr(),
	}, fn)
	return nil
}
