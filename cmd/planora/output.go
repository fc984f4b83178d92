package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/eventdetail"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func formatDate(t model.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatAge(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func printEventTable(w io.Writer, list []*model.Event) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTARTS\tTITLE\tLOCATION")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, formatDate(e.StartsAt), truncate(e.Title, 50), e.Location)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d events\n", len(list))
}

func printEvent(w io.Writer, e *model.Event, role model.MemberRole) {
	fmt.Fprintf(w, "%s\n", ui.RenderAccent(e.Title))
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Starts:      %s\n", formatDate(e.StartsAt))
	if !e.EndsAt.IsZero() {
		fmt.Fprintf(w, "Ends:        %s\n", formatDate(e.EndsAt))
	}
	if e.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", e.Location)
	}
	if e.Category != "" {
		fmt.Fprintf(w, "Category:    %s\n", e.Category)
	}
	if e.InviteCode != "" {
		fmt.Fprintf(w, "Invite code: %s\n", e.InviteCode)
	}
	if role != "" {
		fmt.Fprintf(w, "Your role:   %s\n", role)
	}
	if e.Description != "" {
		fmt.Fprintf(w, "\n%s\n", e.Description)
	}
}

func printTaskTable(w io.Writer, tasks []*model.Task, done, total int) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, ui.RenderStatus(string(t.Status)), formatDate(t.DueDate), truncate(t.Title, 60))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d/%d done\n", done, total)
}

func printPolls(w io.Writer, polls []*model.Poll, viewerID string) {
	for i, p := range polls {
		if i > 0 {
			fmt.Fprintln(w)
		}
		state := ""
		if p.Closed {
			state = " " + ui.RenderMuted("(closed)")
		}
		fmt.Fprintf(w, "%s %s%s\n", ui.RenderMuted(p.ID), ui.RenderAccent(p.Question), state)
		total := p.TotalVotes()
		for _, o := range p.Options {
			mark := " "
			if o.HasVote(viewerID) {
				mark = ui.RenderSuccess("*")
			}
			pct := 0
			if total > 0 {
				pct = len(o.Votes) * 100 / total
			}
			fmt.Fprintf(w, "  %s %-8s %-30s %d (%d%%)\n", mark, o.ID, o.Text, len(o.Votes), pct)
		}
	}
}

func memberName(m *model.EventMember) string {
	if m.User != nil {
		if n := m.User.DisplayName(); n != "" {
			return n
		}
	}
	if m.Name != "" {
		return m.Name
	}
	if m.Email != "" {
		return m.Email
	}
	return m.UserID
}

func printMemberTable(w io.Writer, members []*model.EventMember) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tROLE\tNAME\tUSER")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Role, memberName(m), m.UserID)
	}
	tw.Flush()
}

func printBudgetTable(w io.Writer, items []*model.BudgetItem, tot eventdetail.BudgetTotals) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPLANNED\tACTUAL\tPAID")
	for _, b := range items {
		status := "no"
		if b.Paid {
			status = "paid"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%s\n", b.ID, truncate(b.Title, 40), b.Category, b.Planned, b.Actual, ui.RenderStatus(status))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nplanned %.2f  actual %.2f  paid %.2f  remaining %.2f\n", tot.Planned, tot.Actual, tot.Paid, tot.Remaining)
}
