package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// pollListPaths are the list routes tried in order; deployments differ in
// the filter casing and the collection name.
func pollListPaths(eventID string) []string {
	q := url.QueryEscape(eventID)
	return []string{
		"/Poll?eventId=" + q,
		"/Poll?event_id=" + q,
		"/polls?event_id=" + q,
	}
}

// GetPolls lists an event's polls. When no poll route exists the event has
// no polls.
func (s *Service) GetPolls(ctx context.Context, eventID string) ([]*model.Poll, error) {
	raw, err := s.firstAvailable(ctx, http.MethodGet, pollListPaths(eventID), nil)
	if errors.Is(err, errNoEndpoint) {
		return []*model.Poll{}, nil
	}
	if err != nil {
		return nil, err
	}
	return model.DecodeList[*model.Poll](raw)
}

// CreatePoll validates and creates a poll, then notifies participants.
func (s *Service) CreatePoll(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	if err := model.ValidatePoll(p); err != nil {
		return nil, err
	}
	for _, o := range p.Options {
		if o.Votes == nil {
			o.Votes = []string{}
		}
	}
	created, err := write[*model.Poll](ctx, s, http.MethodPost, "/"+ResPoll, p)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicPollCreated, created.EventID, created.ID, created)
	s.notify(ctx, model.Notification{
		EventID: created.EventID,
		Title:   "New poll",
		Body:    created.Question,
		Type:    NotifyPollCreated,
	})
	return created, nil
}

// VotePoll saves the votes currently recorded on p. Callers toggle the
// vote locally first with Poll.ToggleVote.
func (s *Service) VotePoll(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	updated, err := write[*model.Poll](ctx, s, http.MethodPut, resourcePath(ResPoll, p.ID), map[string]any{
		"options": p.Options,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicPollVoted, p.EventID, p.ID, p.Options)
	return updated, nil
}

func (s *Service) UpdatePoll(ctx context.Context, id string, fields map[string]any) (*model.Poll, error) {
	return write[*model.Poll](ctx, s, http.MethodPut, resourcePath(ResPoll, id), fields)
}

func (s *Service) DeletePoll(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResPoll, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicPollDeleted, eventID, id, nil)
	return nil
}
