package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	plsync "github.com/mengash94/planora-plan-ora.net-sub000/internal/sync"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export [event-id...]",
	Short:   "Write events as JSONL",
	Long:    "Write the full details of the given events, or of every event you belong to, as JSONL.",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := myEvents(args)(cmd.Context())
		if err != nil {
			return err
		}
		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := plsync.ExportJSONL(cmd.Context(), svc, ids, w); err != nil {
			return err
		}
		if f, ok := w.(*os.File); ok && f != os.Stdout {
			fmt.Fprintf(os.Stderr, "Exported %d events to %s\n", len(ids), f.Name())
		}
		return nil
	},
}

// myEvents lists explicit IDs when given, otherwise the events the
// logged-in user belongs to.
func myEvents(ids []string) plsync.EventLister {
	if len(ids) > 0 {
		return plsync.StaticEvents(ids...)
	}
	return func(ctx context.Context) ([]string, error) {
		userID, err := requireUser()
		if err != nil {
			return nil, err
		}
		list, err := svc.ListMyEvents(ctx, userID)
		if err != nil {
			return nil, err
		}
		return eventIDs(list), nil
	}
}

func eventIDs(list []*model.Event) []string {
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	return ids
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
}
