package main

import (
	"fmt"
	"strconv"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/spf13/cobra"
)

var pollsCmd = &cobra.Command{
	Use:     "polls",
	Short:   "Create and vote on polls",
	GroupID: "planning",
}

var pollsListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "List polls with their results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		polls := page.Polls.Items()
		if jsonOutput {
			printJSON(polls)
			return nil
		}
		printPolls(cmd.OutOrStdout(), polls, page.ViewerID)
		return nil
	},
}

var pollsCreateCmd = &cobra.Command{
	Use:   "create <event-id> <question> <option>...",
	Short: "Create a poll",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		multiple, _ := cmd.Flags().GetBool("multiple")
		p, err := page.Polls.Create(cmd.Context(), args[1], args[2:], multiple)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(p)
		}
		return nil
	},
}

var pollsVoteCmd = &cobra.Command{
	Use:   "vote <event-id> <poll-id> <option>",
	Short: "Vote for an option, or take the vote back",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		poll, ok := page.Polls.Get(args[1])
		if !ok {
			return fmt.Errorf("poll %s not found", args[1])
		}
		p, err := page.Polls.Vote(cmd.Context(), poll.ID, resolveOption(poll, args[2]))
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(p)
			return nil
		}
		printPolls(cmd.OutOrStdout(), []*model.Poll{p}, page.ViewerID)
		return nil
	},
}

// resolveOption accepts an option ID or its 1-based position in the list.
func resolveOption(p *model.Poll, arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(p.Options) {
		return p.Options[n-1].ID
	}
	return arg
}

func init() {
	pollsCreateCmd.Flags().Bool("multiple", false, "allow voting for more than one option")

	pollsCmd.AddCommand(pollsListCmd)
	pollsCmd.AddCommand(pollsCreateCmd)
	pollsCmd.AddCommand(pollsVoteCmd)
}
