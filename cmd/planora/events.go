package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/eventdetail"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
)

// loadPage loads an event page for the logged-in user. Mutations made
// through the page report to the terminal toaster.
func loadPage(ctx context.Context, eventID string) (*eventdetail.Page, error) {
	userID, err := requireUser()
	if err != nil {
		return nil, err
	}
	l := &eventdetail.Loader{Backend: svc, ViewerID: userID, Views: sess, Toaster: toaster}
	return l.Load(ctx, eventID)
}

var eventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "List, show, create, and delete events",
	GroupID: "events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events you belong to",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}
		list, err := svc.ListMyEvents(cmd.Context(), userID)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(list)
			return nil
		}
		printEventTable(cmd.OutOrStdout(), list)
		return nil
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show an event and its tab counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(page.Event)
			return nil
		}
		out := cmd.OutOrStdout()
		printEvent(out, page.Event, page.Role)

		q := url.Values{}
		if v, _ := cmd.Flags().GetString("view"); v != "" {
			q.Set("view", v)
		}
		fmt.Fprintf(out, "\nView:        %s\n", page.ViewMode(q))

		done, total := page.Tasks.Counts()
		rc := page.RSVP.Counts()
		fmt.Fprintf(out, "Tasks:       %d/%d done\n", done, total)
		fmt.Fprintf(out, "Polls:       %d\n", len(page.Polls.Items()))
		fmt.Fprintf(out, "RSVP:        %d attending, %d maybe, %d declined (headcount %d)\n",
			rc.Attending, rc.Maybe, rc.Declined, rc.Headcount())
		fmt.Fprintf(out, "Members:     %d\n", len(page.Participants.Items()))
		fmt.Fprintf(out, "Gallery:     %d\n", len(page.Gallery.Items()))

		var tabs []string
		for _, t := range eventdetail.VisibleTabs(page.Perms) {
			tabs = append(tabs, string(t))
		}
		fmt.Fprintf(out, "Tabs:        %s\n", ui.RenderMuted(fmt.Sprint(tabs)))
		return nil
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an event you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser()
		if err != nil {
			return err
		}
		e := &model.Event{Title: args[0], OwnerID: userID}
		e.Description, _ = cmd.Flags().GetString("description")
		e.Location, _ = cmd.Flags().GetString("location")
		e.Category, _ = cmd.Flags().GetString("category")
		if starts, _ := cmd.Flags().GetString("starts"); starts != "" {
			if e.StartsAt, err = model.ParseTimestamp(starts); err != nil {
				return fmt.Errorf("--starts: %w", err)
			}
		}
		if ends, _ := cmd.Flags().GetString("ends"); ends != "" {
			if e.EndsAt, err = model.ParseTimestamp(ends); err != nil {
				return fmt.Errorf("--ends: %w", err)
			}
		}
		created, err := svc.CreateEvent(cmd.Context(), e)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(created)
			return nil
		}
		fmt.Printf("Created %s (%s)\n", ui.RenderAccent(created.Title), created.ID)
		return nil
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := page.DeleteEvent(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var joinCmd = &cobra.Command{
	Use:     "join <code>",
	Short:   "Join an event with an invite code",
	Long:    "Join an event with an invite code. When logged out the code is saved and redeemed at the next login.",
	GroupID: "events",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		userID, err := requireUser()
		if err != nil {
			if err := sess.AddPendingJoin(code, time.Now()); err != nil {
				return err
			}
			fmt.Printf("Saved invite %s. Log in to join.\n", code)
			return nil
		}
		m, err := svc.JoinEvent(cmd.Context(), code, userID)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(m)
			return nil
		}
		fmt.Printf("Joined event %s as %s\n", m.EventID, m.Role)
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:     "view <event-id> [mode]",
	Short:   "Show or set the layout used for an event",
	GroupID: "events",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID := args[0]
		if len(args) == 1 {
			fmt.Println(eventdetail.ResolveViewMode(nil, sess.ViewMode(eventID)))
			return nil
		}
		mode := eventdetail.ViewMode(args[1])
		if !mode.IsValid() {
			return fmt.Errorf("unknown view %q (want tabs, sidebar, carousel, or dashboard)", args[1])
		}
		if err := sess.SetViewMode(eventID, string(mode)); err != nil {
			return err
		}
		fmt.Printf("View for %s set to %s\n", eventID, mode)
		return nil
	},
}

func init() {
	eventsShowCmd.Flags().String("view", "", "override the saved view mode")

	eventsCreateCmd.Flags().String("description", "", "event description")
	eventsCreateCmd.Flags().String("location", "", "where it happens")
	eventsCreateCmd.Flags().String("category", "", "event category (wedding, birthday, ...)")
	eventsCreateCmd.Flags().String("starts", "", "start time (RFC 3339 or 2006-01-02)")
	eventsCreateCmd.Flags().String("ends", "", "end time (RFC 3339 or 2006-01-02)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsShowCmd)
	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsDeleteCmd)
}
