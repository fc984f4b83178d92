package main

import (
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:     "members",
	Short:   "List and manage participants",
	GroupID: "planning",
}

var membersListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "List participants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		members := page.Participants.Items()
		if jsonOutput {
			printJSON(members)
			return nil
		}
		printMemberTable(cmd.OutOrStdout(), members)
		return nil
	},
}

var membersRoleCmd = &cobra.Command{
	Use:   "role <event-id> <member-id> <manager|member|guest>",
	Short: "Change a participant's role",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		m, err := page.Participants.ChangeRole(cmd.Context(), args[1], model.MemberRole(args[2]))
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(m)
			return nil
		}
		fmt.Printf("%s is now %s\n", memberName(m), m.Role)
		return nil
	},
}

var membersRmCmd = &cobra.Command{
	Use:   "rm <event-id> <member-id>",
	Short: "Remove a participant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return page.Participants.Remove(cmd.Context(), args[1])
	},
}

var membersInviteCmd = &cobra.Command{
	Use:   "invite <event-id> [email]",
	Short: "Create an invite code, optionally emailed",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		email := ""
		if len(args) == 2 {
			email = args[1]
		}
		role, _ := cmd.Flags().GetString("role")
		inv, err := page.Invite(cmd.Context(), email, model.MemberRole(role))
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(inv)
			return nil
		}
		fmt.Printf("Invite code: %s\n", inv.Code)
		fmt.Printf("Join with:   planora join %s\n", inv.Code)
		return nil
	},
}

func init() {
	membersInviteCmd.Flags().String("role", string(model.RoleMember), "role the invitee joins with")

	membersCmd.AddCommand(membersListCmd)
	membersCmd.AddCommand(membersRoleCmd)
	membersCmd.AddCommand(membersRmCmd)
	membersCmd.AddCommand(membersInviteCmd)
}
