package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PresetsCmd returns the saved filter management commands
func PresetsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved filters",
	}

	cmd.AddCommand(presetsListCmd(o))
	cmd.AddCommand(presetsSaveCmd(o))
	cmd.AddCommand(presetsDeleteCmd(o))

	return cmd
}

func presetsListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := o.presets().ListPresets()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved filters.")
				return nil
			}
			printPresets(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func presetsSaveCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a filter under NAME, replacing any existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := o.filterFromFlags(cmd)
			if err != nil {
				return err
			}
			p, err := o.presets().SavePreset(args[0], filter)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q: %s\n", p.Name, p.Summary())
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func presetsDeleteCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.presets().DeletePreset(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
}
