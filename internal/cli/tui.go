package cli

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/pagination"
	"github.com/ngmaloney/portman-terminal/internal/ui"
	"github.com/spf13/cobra"
)

const debugLogFile = "portman-debug.log"

// TUICmd returns the interactive browser command
func TUICmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse port calls interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, _ := cmd.Flags().GetString("preset")
			return runTUI(o, preset)
		},
	}

	cmd.Flags().String("preset", "", "Start with a saved filter")

	return cmd
}

func runTUI(o *options, preset string) error {
	filter := models.DefaultFilter(o.now(), o.cfg.Filter.DefaultDays)
	svc := o.presets()
	if preset != "" {
		f, err := svc.Filter(preset)
		if err != nil {
			return err
		}
		filter = f
	}

	// stdout belongs to the TUI, so logs go to a file or nowhere
	logPath := o.cfg.Storage.LogFile
	if logPath == "" && o.debug {
		logPath = debugLogFile
	}
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "portman")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	agg := aggregator.New(nil)
	driver := pagination.NewDriver(o.client, agg,
		pagination.WithPageDelay(o.cfg.PageDelay()),
		pagination.WithFetchTimeout(o.cfg.Timeout()),
	)
	coord := pagination.NewCoordinator(driver, agg, filter)

	m := ui.NewModel(coord,
		ui.WithPresets(svc),
		ui.WithDefaultDays(o.cfg.Filter.DefaultDays),
	)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
