package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dkeye/voxcall/internal/callapi"
	"github.com/spf13/cobra"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Manage calls of the account",
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCallClient()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CALL_ID\tCREATED\tENDED")
		cursor := ""
		for {
			calls, next, err := client.ListCalls(cmd.Context(), cursor)
			if err != nil {
				return err
			}
			for _, c := range calls {
				ended := "-"
				if !c.Ended.IsZero() {
					ended = c.Ended.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.CallID, c.Created.Format(time.RFC3339), ended)
			}
			if next == "" {
				break
			}
			cursor = next
		}
		return w.Flush()
	},
}

var callsDeleteCmd = &cobra.Command{
	Use:   "delete <callID>...",
	Short: "Delete calls",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCallClient()
		if err != nil {
			return err
		}
		for _, id := range args {
			if err := client.DeleteCall(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	callsCmd.AddCommand(callsListCmd, callsDeleteCmd)
}

func newCallClient() (*callapi.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return callapi.New(cfg.APIBaseURL, cfg.APIKey, nil), nil
}
