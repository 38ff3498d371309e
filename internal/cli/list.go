package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/pagination"
	"github.com/spf13/cobra"
)

// ListCmd returns the command that prints every port call in a window
func ListCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every port call in a date window",
		Long: `Load all pages of port calls for the window and print them, newest first.

Examples:
  portman list                                  # last 7 days
  portman list --from 2024-05-01 --to 2024-05-07
  portman list --search finnmaid --status delayed
  portman list --preset weekly --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, o)
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("preset", "", "Use a saved filter instead of the filter flags")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")

	return cmd
}

func runList(cmd *cobra.Command, o *options) error {
	var filter models.FilterState
	var err error
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		filter, err = o.presets().Filter(name)
	} else {
		filter, err = o.filterFromFlags(cmd)
	}
	if err != nil {
		return err
	}

	snap, err := fetchAll(cmd.Context(), o, filter, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	now := o.now()
	records := filter.Apply(snap.Records, now)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		err = printJSON(cmd.OutOrStdout(), listed(records, now))
	} else {
		printPortCalls(cmd.OutOrStdout(), records, now)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s results (%s loaded)\n",
			humanize.Comma(int64(len(records))), humanize.Comma(int64(snap.TotalCount)))
	}

	if snap.LastError != aggregator.ErrorNone {
		fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgYellow).Sprint("warning: "+snap.LastError.Message()))
	}
	return err
}

// fetchAll drains a whole chain for filter, reporting progress to w
func fetchAll(ctx context.Context, o *options, filter models.FilterState, w io.Writer) (aggregator.Snapshot, error) {
	agg := aggregator.New(func(s aggregator.Snapshot) {
		if !s.Complete {
			fmt.Fprintf(w, "\rLoading port calls... %s (%d pages)", humanize.Comma(int64(s.TotalCount)), s.Pages)
		}
	})
	driver := pagination.NewDriver(o.client, agg,
		pagination.WithPageDelay(o.cfg.PageDelay()),
		pagination.WithFetchTimeout(o.cfg.Timeout()),
	)
	coord := pagination.NewCoordinator(driver, agg, filter)

	snap, err := pagination.Load(ctx, coord, filter)
	fmt.Fprint(w, "\r\033[K")
	if err != nil {
		return snap, fmt.Errorf("loading port calls: %w", err)
	}
	return snap, nil
}
