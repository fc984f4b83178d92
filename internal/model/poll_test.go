package model

import (
	"reflect"
	"testing"
)

func newPoll(multi bool) *Poll {
	return &Poll{
		ID:            "p1",
		Question:      "Venue?",
		MultipleVotes: multi,
		Options: []*PollOption{
			{ID: "a", Text: "Garden", Votes: []string{"u2"}},
			{ID: "b", Text: "Hall", Votes: []string{"u1"}},
		},
	}
}

func TestPoll_ToggleVote_SingleChoiceMovesVote(t *testing.T) {
	p := newPoll(false)
	if !p.ToggleVote("a", "u1") {
		t.Fatal("ToggleVote returned false for a known option")
	}
	if !reflect.DeepEqual(p.Options[0].Votes, []string{"u2", "u1"}) {
		t.Errorf("option a votes = %v", p.Options[0].Votes)
	}
	if len(p.Options[1].Votes) != 0 {
		t.Errorf("option b votes = %v, want cleared", p.Options[1].Votes)
	}
}

func TestPoll_ToggleVote_Unvote(t *testing.T) {
	p := newPoll(false)
	p.ToggleVote("b", "u1")
	if p.Options[1].HasVote("u1") {
		t.Error("second toggle should remove the vote")
	}
	if p.TotalVotes() != 1 {
		t.Errorf("TotalVotes = %d, want 1", p.TotalVotes())
	}
}

func TestPoll_ToggleVote_MultipleKeepsOthers(t *testing.T) {
	p := newPoll(true)
	p.ToggleVote("a", "u1")
	if !p.Options[0].HasVote("u1") || !p.Options[1].HasVote("u1") {
		t.Errorf("multi-choice poll lost a vote: %v / %v", p.Options[0].Votes, p.Options[1].Votes)
	}
}

func TestPoll_ToggleVote_UnknownOption(t *testing.T) {
	p := newPoll(false)
	if p.ToggleVote("zzz", "u1") {
		t.Error("ToggleVote returned true for an unknown option")
	}
	if !p.Options[1].HasVote("u1") {
		t.Error("unknown option toggle changed existing votes")
	}
}

func TestPoll_CloneIsDeep(t *testing.T) {
	p := newPoll(false)
	c := p.Clone()
	c.ToggleVote("a", "u1")
	if !p.Options[1].HasVote("u1") || p.Options[0].HasVote("u1") {
		t.Error("mutating the clone changed the original")
	}
}

func TestTaskStatus_Toggled(t *testing.T) {
	for _, tc := range []struct {
		in, want TaskStatus
	}{
		{TaskTodo, TaskDone},
		{TaskInProgress, TaskDone},
		{TaskDone, TaskTodo},
	} {
		if got := tc.in.Toggled(); got != tc.want {
			t.Errorf("%s.Toggled() = %s, want %s", tc.in, got, tc.want)
		}
	}
}
