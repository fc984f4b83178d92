package main

import (
	"fmt"
	"strconv"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Short:   "Track planned and actual spending",
	GroupID: "planning",
}

var budgetListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "List budget lines and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		items, err := page.Budget.Items()
		if err != nil {
			return err
		}
		tot := page.Budget.Totals()
		if jsonOutput {
			printJSON(map[string]any{"items": items, "totals": tot})
			return nil
		}
		printBudgetTable(cmd.OutOrStdout(), items, tot)
		return nil
	},
}

var budgetAddCmd = &cobra.Command{
	Use:   "add <event-id> <title> <planned-amount>",
	Short: "Add a budget line",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		planned, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[2])
		}
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		b := &model.BudgetItem{Title: args[1], Planned: planned}
		b.Category, _ = cmd.Flags().GetString("category")
		b.Actual, _ = cmd.Flags().GetFloat64("actual")
		b.Paid, _ = cmd.Flags().GetBool("paid")
		b.Notes, _ = cmd.Flags().GetString("notes")
		created, err := page.Budget.Add(cmd.Context(), b)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(created)
		}
		return nil
	},
}

func init() {
	budgetAddCmd.Flags().String("category", "", "budget category (venue, catering, ...)")
	budgetAddCmd.Flags().Float64("actual", 0, "amount spent so far")
	budgetAddCmd.Flags().Bool("paid", false, "mark the line as paid")
	budgetAddCmd.Flags().String("notes", "", "free-form notes")

	budgetCmd.AddCommand(budgetListCmd)
	budgetCmd.AddCommand(budgetAddCmd)
}
