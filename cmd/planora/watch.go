package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/presence"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch [event-id]",
	Short:   "Stream changes from the event feed",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		if natsURL == "" {
			natsURL = cfg.NATSURL
		}
		if natsURL == "" {
			return fmt.Errorf("no change feed configured (set PLANORA_NATS_URL or --nats-url)")
		}
		eventID := ""
		if len(args) == 1 {
			eventID = args[0]
		}

		var tracker *presence.Tracker
		if who, _ := cmd.Flags().GetBool("who"); who {
			tracker = presence.New()
			tracker.StartReaper(presence.ReaperConfig{})
			defer tracker.Stop()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchFeed(ctx, natsURL, eventID, tracker, cmd.OutOrStdout())
	},
}

// watchFeed prints feed messages until ctx is done. With a tracker it
// also prints who is active every rosterInterval.
func watchFeed(ctx context.Context, natsURL, eventID string, tracker *presence.Tracker, out io.Writer) error {
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe(events.AllTopics)
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	var rosterTick <-chan time.Time
	if tracker != nil {
		ticker := time.NewTicker(rosterInterval)
		defer ticker.Stop()
		rosterTick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rosterTick:
			fmt.Fprintln(out, formatRoster(tracker, eventID))
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if tracker != nil {
				var c events.Change
				if json.Unmarshal(msg.Data, &c) == nil {
					tracker.Record(c)
				}
			}
			line, ok := formatChange(msg, eventID)
			if !ok {
				continue
			}
			if jsonOutput {
				fmt.Fprintln(out, string(msg.Data))
				continue
			}
			fmt.Fprintln(out, line)
		}
	}
}

// formatChange renders one feed message. It reports false for messages
// about other events when eventID is set.
func formatChange(msg events.Message, eventID string) (string, bool) {
	var c events.Change
	if err := json.Unmarshal(msg.Data, &c); err != nil {
		c.Topic = msg.Subject
	}
	if eventID != "" && c.EventID != eventID {
		return "", false
	}
	topic := c.Topic
	if topic == "" {
		topic = msg.Subject
	}
	what := strings.TrimPrefix(topic, events.Prefix+".")

	var b strings.Builder
	if !c.At.IsZero() {
		b.WriteString(ui.RenderMuted(c.At.Local().Format("15:04:05")) + " ")
	}
	b.WriteString(ui.RenderAccent(what))
	if c.EventID != "" {
		b.WriteString(" event=" + c.EventID)
	}
	if c.EntityID != "" {
		b.WriteString(" id=" + c.EntityID)
	}
	if c.ActorID != "" {
		b.WriteString(" by=" + c.ActorID)
	}
	return b.String(), true
}

const rosterInterval = 30 * time.Second

// formatRoster lists the active participants of eventID, or of every event
// when eventID is empty.
func formatRoster(tracker *presence.Tracker, eventID string) string {
	var entries []presence.Entry
	if eventID != "" {
		entries = tracker.Active(eventID)
	} else {
		for _, e := range tracker.Roster() {
			if !e.Idle {
				entries = append(entries, e)
			}
		}
	}
	if len(entries) == 0 {
		return ui.RenderMuted("active: nobody")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.UserID
		if eventID == "" {
			n = e.EventID + "/" + n
		}
		names = append(names, n)
	}
	return ui.RenderMuted("active: ") + strings.Join(names, ", ")
}

func init() {
	watchCmd.Flags().Bool("who", false, "periodically print who is active")
	watchCmd.Flags().String("nats-url", "", "NATS server (default $PLANORA_NATS_URL)")
}
