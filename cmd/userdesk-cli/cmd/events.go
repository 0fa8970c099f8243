package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/userdesk/internal/pubsub"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Explore the events published by userdesk",
	}

	var format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all defined events",
		Long: `List every event the application can publish, with its payload fields.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := pubsub.Catalog()
			switch format {
			case "table":
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tPAYLOAD\tFIELDS\tDESCRIPTION")
				for _, e := range events {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.TypeName, strings.Join(e.PayloadFields, ","), e.Description)
				}
				return w.Flush()
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Events []pubsub.EventInfo `json:"events"`
					Count  int                `json:"count"`
				}{events, len(events)})
			default:
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "output format: table or json")

	eventsCmd.AddCommand(listCmd)
	return eventsCmd
}
