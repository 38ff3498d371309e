package cli

import (
	"fmt"
	"strconv"

	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/portman"
	"github.com/spf13/cobra"
)

// ShowCmd returns the command that prints one port call
func ShowCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PORTCALL_ID",
		Short: "Print a single port call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid port call id %q", args[0])
			}

			pc, err := o.client.GetPortCall(cmd.Context(), id)
			if portman.IsNotFound(err) {
				return fmt.Errorf("port call %d not found", id)
			}
			if err != nil {
				return err
			}

			now := o.now()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), listed([]models.PortCall{*pc}, now)[0])
			}
			printPortCall(cmd.OutOrStdout(), *pc, now)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print JSON instead of text")

	return cmd
}
