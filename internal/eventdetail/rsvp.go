package eventdetail

import (
	"context"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// RSVPTab collects attendance answers. Anyone who can open the event may
// answer, guests included.
type RSVPTab struct {
	tab
	items *optimistic.Collection[*model.RSVP]
}

// RSVPCounts summarizes answers. Guests counts the extra people attending
// alongside each attending answer.
type RSVPCounts struct {
	Attending int
	Maybe     int
	Declined  int
	Guests    int
}

// Headcount is everyone expected: attending answers plus their guests.
func (c RSVPCounts) Headcount() int { return c.Attending + c.Guests }

func newRSVPTab(t tab, rsvps []*model.RSVP) *RSVPTab {
	return &RSVPTab{tab: t, items: newCollection(t, rsvps,
		func(v *model.RSVP) string { return v.ID },
		func(v *model.RSVP, id string) { v.ID = id })}
}

func (t *RSVPTab) Items() []*model.RSVP { return t.items.Items() }

// Mine returns the viewer's RSVP, if any.
func (t *RSVPTab) Mine() (*model.RSVP, bool) {
	for _, r := range t.items.Items() {
		if r.UserID == t.page.ViewerID {
			return r, true
		}
	}
	return nil, false
}

// Counts tallies the answers.
func (t *RSVPTab) Counts() RSVPCounts {
	var c RSVPCounts
	for _, r := range t.items.Items() {
		switch r.Status {
		case model.RSVPAttending:
			c.Attending++
			c.Guests += r.Guests
		case model.RSVPMaybe:
			c.Maybe++
		case model.RSVPDeclined:
			c.Declined++
		}
	}
	return c
}

// Respond records the viewer's answer, replacing an earlier one.
func (t *RSVPTab) Respond(ctx context.Context, status model.RSVPStatus, guests int, note string) (*model.RSVP, error) {
	if t.page.ViewerID == "" {
		return nil, ErrForbidden
	}
	r := &model.RSVP{EventID: t.eventID(), UserID: t.page.ViewerID, Status: status, Guests: guests, Note: note}
	if err := model.ValidateRSVP(r); err != nil {
		return nil, err
	}
	if mine, ok := t.Mine(); ok && mine.ID != "" {
		return t.items.Update(ctx, mine.ID,
			func(cur *model.RSVP) *model.RSVP {
				cur.Status, cur.Guests, cur.Note = status, guests, note
				return cur
			},
			t.page.backend.UpsertRSVP, optimistic.Messages{})
	}
	return t.items.Create(ctx, r, t.page.backend.UpsertRSVP, optimistic.Messages{})
}
