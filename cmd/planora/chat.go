package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:     "chat",
	Short:   "Read and post event messages",
	GroupID: "planning",
}

var chatListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "Show the message history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		msgs := page.Updates.Items()
		if jsonOutput {
			printJSON(msgs)
			return nil
		}
		names := make(map[string]string)
		for _, m := range page.Participants.Items() {
			names[m.UserID] = memberName(m)
		}
		now := time.Now()
		out := cmd.OutOrStdout()
		for _, m := range msgs {
			sender := names[m.SenderID]
			if sender == "" {
				sender = m.SenderID
			}
			prefix := ""
			if m.Kind == "announcement" {
				prefix = ui.RenderWarn("[announcement] ")
			}
			fmt.Fprintf(out, "%s %s %s%s\n", ui.RenderMuted(formatAge(m.CreatedAt.Time, now)), ui.RenderAccent(sender+":"), prefix, m.Content)
		}
		return nil
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send <event-id> <message>...",
	Short: "Post a message",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		announce, _ := cmd.Flags().GetBool("announce")
		m, err := page.Updates.Send(cmd.Context(), strings.Join(args[1:], " "), announce)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(m)
		}
		return nil
	},
}

func init() {
	chatSendCmd.Flags().Bool("announce", false, "post as an announcement (managers only)")

	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatSendCmd)
}
