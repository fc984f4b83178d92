package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

func (s *Service) ListRSVPs(ctx context.Context, eventID string) ([]*model.RSVP, error) {
	return fetchList[*model.RSVP](ctx, s, listPath(ResRSVP, byEvent(eventID)))
}

// UpsertRSVP records the user's answer, updating their existing RSVP when
// there is one. The event's organizers are notified.
func (s *Service) UpsertRSVP(ctx context.Context, r *model.RSVP) (*model.RSVP, error) {
	if err := model.ValidateRSVP(r); err != nil {
		return nil, err
	}
	existing, err := fetchList[*model.RSVP](ctx, s, listPath(ResRSVP, url.Values{
		"event_id": []string{r.EventID},
		"user_id":  []string{r.UserID},
	}))
	if err != nil {
		return nil, err
	}

	var saved *model.RSVP
	if prev := findRSVP(existing, r.UserID); prev != nil {
		saved, err = write[*model.RSVP](ctx, s, http.MethodPut, resourcePath(ResRSVP, prev.ID), map[string]any{
			"status":       r.Status,
			"guests_count": r.Guests,
			"note":         r.Note,
		})
	} else {
		saved, err = write[*model.RSVP](ctx, s, http.MethodPost, "/"+ResRSVP, r)
	}
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicRSVPUpdated, r.EventID, saved.ID, saved)
	s.notify(ctx, model.Notification{
		EventID: r.EventID,
		Title:   "RSVP update",
		Body:    string(r.Status),
		Type:    NotifyRSVP,
	})
	return saved, nil
}

func findRSVP(list []*model.RSVP, userID string) *model.RSVP {
	for _, r := range list {
		if r.UserID == userID {
			return r
		}
	}
	return nil
}
