package eventdetail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/idgen"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// ErrPollClosed is returned when voting on a closed poll.
var ErrPollClosed = errors.New("poll is closed")

// PollsTab lists the event's polls.
type PollsTab struct {
	tab
	items *optimistic.Collection[*model.Poll]
}

func newPollsTab(t tab, polls []*model.Poll) *PollsTab {
	c := newCollection(t, polls,
		func(v *model.Poll) string { return v.ID },
		func(v *model.Poll, id string) { v.ID = id })
	c.Clone = (*model.Poll).Clone
	return &PollsTab{tab: t, items: c}
}

func (t *PollsTab) Items() []*model.Poll { return t.items.Items() }

func (t *PollsTab) Get(id string) (*model.Poll, bool) { return t.items.Get(id) }

// Create adds a poll with the given option texts.
func (t *PollsTab) Create(ctx context.Context, question string, options []string, multiple bool) (*model.Poll, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	p := &model.Poll{
		EventID:       t.eventID(),
		Question:      strings.TrimSpace(question),
		MultipleVotes: multiple,
		CreatedBy:     t.page.ViewerID,
	}
	for _, text := range options {
		id, err := idgen.GenerateWithPrefix("opt-")
		if err != nil {
			return nil, err
		}
		p.Options = append(p.Options, &model.PollOption{ID: id, Text: strings.TrimSpace(text), Votes: []string{}})
	}
	if err := model.ValidatePoll(p); err != nil {
		return nil, err
	}
	return t.items.Create(ctx, p, t.page.backend.CreatePoll, optimistic.Messages{})
}

// Vote toggles the viewer's vote on an option.
func (t *PollsTab) Vote(ctx context.Context, pollID, optionID string) (*model.Poll, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	if idgen.IsTemp(pollID) {
		return nil, ErrPending
	}
	cur, ok := t.items.Get(pollID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", optimistic.ErrNotFound, pollID)
	}
	if cur.Closed {
		return nil, ErrPollClosed
	}
	if !cur.Clone().ToggleVote(optionID, t.page.ViewerID) {
		return nil, fmt.Errorf("poll %s has no option %s", pollID, optionID)
	}
	return t.items.Update(ctx, pollID,
		func(p *model.Poll) *model.Poll {
			p.ToggleVote(optionID, t.page.ViewerID)
			return p
		},
		t.page.backend.VotePoll, optimistic.Messages{})
}

// Remove deletes a poll. Its creator or a moderator may.
func (t *PollsTab) Remove(ctx context.Context, id string) error {
	p, ok := t.items.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", optimistic.ErrNotFound, id)
	}
	if err := require(t.page.Perms.CanModerate || (t.page.Perms.CanEdit && p.CreatedBy == t.page.ViewerID)); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeletePoll(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}
