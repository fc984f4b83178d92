package main

import (
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
)

var rsvpCmd = &cobra.Command{
	Use:     "rsvp <event-id> [attending|maybe|declined]",
	Short:   "Answer an invitation, or show the answers so far",
	GroupID: "planning",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			c := page.RSVP.Counts()
			if jsonOutput {
				printJSON(map[string]any{"rsvps": page.RSVP.Items(), "headcount": c.Headcount()})
				return nil
			}
			if mine, ok := page.RSVP.Mine(); ok {
				fmt.Printf("Your answer: %s\n", ui.RenderStatus(string(mine.Status)))
			}
			fmt.Printf("%d attending, %d maybe, %d declined, headcount %d\n",
				c.Attending, c.Maybe, c.Declined, c.Headcount())
			return nil
		}
		guests, _ := cmd.Flags().GetInt("guests")
		note, _ := cmd.Flags().GetString("note")
		r, err := page.RSVP.Respond(cmd.Context(), model.RSVPStatus(args[1]), guests, note)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(r)
		}
		return nil
	},
}

func init() {
	rsvpCmd.Flags().Int("guests", 0, "extra people coming with you")
	rsvpCmd.Flags().String("note", "", "message for the hosts")
}
