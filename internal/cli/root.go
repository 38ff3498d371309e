// Package cli wires the portman commands
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/config"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/portman"
	"github.com/ngmaloney/portman-terminal/internal/presets"
	"github.com/spf13/cobra"
)

// options is shared by every command. load fills it before a command runs.
type options struct {
	configPath string
	apiURL     string
	debug      bool

	cfg    config.Config
	client portman.PortCallClient
	now    func() time.Time
}

// RootCmd returns the portman command tree. Without a subcommand it opens the TUI.
func RootCmd() *cobra.Command {
	return newRootCmd(&options{now: time.Now})
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "portman",
		Short: "Browse port calls from the Portman voyages API",
		Long: `portman loads every port call in a date window from the Portman
voyages API, following continuation links until the data set is exhausted,
and shows each visit with a status derived from its timestamps.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(o, "")
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", config.DefaultConfigPath, "Path to the config file")
	root.PersistentFlags().StringVar(&o.apiURL, "api-url", "", "Voyages API base URL (overrides config)")
	root.PersistentFlags().BoolVar(&o.debug, "debug", false, "Log pagination activity")

	root.AddCommand(TUICmd(o))
	root.AddCommand(ListCmd(o))
	root.AddCommand(ShowCmd(o))
	root.AddCommand(PresetsCmd(o))

	return root
}

// load reads the config and builds the API client
func (o *options) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrCreate(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
	}
	o.cfg = cfg

	if o.debug {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	if o.client == nil {
		o.client = portman.NewVoyagesClient(cfg.API.BaseURL,
			portman.WithFunctionKey(cfg.API.FunctionKey),
			portman.WithAuthToken(cfg.API.AuthToken),
			portman.WithPageSize(cfg.API.PageSize),
			portman.WithTimeout(cfg.Timeout()),
		)
	}
	return nil
}

func (o *options) presets() *presets.Service {
	return presets.NewService(o.cfg.Storage.DBPath)
}

// addFilterFlags registers the flags read by filterFromFlags
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().Int("days", 0, "Window of the last N days through today (default from config)")
	cmd.Flags().String("search", "", "Match vessel name, IMO or port area")
	cmd.Flags().String("status", "all", "Only show one status (e.g. delayed, \"arriving soon\")")
}

// filterFromFlags builds a filter from the default window and the command's flags
func (o *options) filterFromFlags(cmd *cobra.Command) (models.FilterState, error) {
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		days = o.cfg.Filter.DefaultDays
	}
	filter := models.DefaultFilter(o.now(), days)

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
		start, err := models.ParseDate(from, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --from %q: use %s", from, models.DateLayout)
		}
		end, err := models.ParseDate(to, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --to %q: use %s", to, models.DateLayout)
		}
		if !cmd.Flags().Changed("from") {
			start = filter.Start
		}
		if !cmd.Flags().Changed("to") {
			end = filter.End
		}
		filter = filter.WithDates(start, end)
	}

	search, _ := cmd.Flags().GetString("search")
	filter = filter.WithSearch(search)

	status, _ := cmd.Flags().GetString("status")
	tab, ok := models.ParseTab(status)
	if !ok {
		return filter, fmt.Errorf("unknown status %q", status)
	}
	filter = filter.WithTab(tab)

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
