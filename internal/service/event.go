package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// ErrInviteNotFound is returned by JoinEvent for an unknown invite code.
var ErrInviteNotFound = errors.New("invite code not found")

// fullDetailsFanout bounds the per-resource requests of a client-side
// full-details assembly.
const fullDetailsFanout = 4

var (
	fullDetailsPaths = []string{
		"/edge-function/getEventFullDetails",
		"/edge-function/get-event-full-details",
	}
	initialDataPaths = []string{
		"/edge-function/getEventInitialData",
		"/edge-function/get-event-initial-data",
	}
)

func (s *Service) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return fetch[*model.Event](ctx, s, resourcePath(ResEvent, id))
}

// ListMyEvents returns the events userID is a member of, in membership
// order. Events that can no longer be loaded are skipped.
func (s *Service) ListMyEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	members, err := fetchList[*model.EventMember](ctx, s, listPath(ResMember, url.Values{"user_id": []string{userID}}))
	if err != nil {
		return nil, err
	}
	results := make([]*model.Event, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fullDetailsFanout)
	for i, m := range members {
		g.Go(func() error {
			e, err := s.GetEvent(gctx, m.EventID)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("skipping event", "event", m.EventID, "err", err)
				return nil
			}
			results[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return compact(results), nil
}

// CreateEvent validates and creates an event, then records the creator as
// its owner.
func (s *Service) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	if err := model.ValidateEvent(e); err != nil {
		return nil, err
	}
	created, err := write[*model.Event](ctx, s, http.MethodPost, "/"+ResEvent, e)
	if err != nil {
		return nil, err
	}
	if created.OwnerID != "" && created.ID != "" {
		owner := &model.EventMember{EventID: created.ID, UserID: created.OwnerID, Role: model.RoleOwner, Status: "active"}
		if _, err := write[*model.EventMember](ctx, s, http.MethodPost, "/"+ResMember, owner); err != nil {
			s.logger.Warn("creating owner membership failed", "event", created.ID, "err", err)
		}
	}
	s.publish(ctx, events.TopicEventCreated, created.ID, created.ID, created)
	return created, nil
}

func (s *Service) UpdateEvent(ctx context.Context, id string, fields map[string]any) (*model.Event, error) {
	updated, err := write[*model.Event](ctx, s, http.MethodPut, resourcePath(ResEvent, id), fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicEventUpdated, id, id, fields)
	return updated, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.remove(ctx, ResEvent, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicEventDeleted, id, id, nil)
	return nil
}

// GetEventFullDetails loads everything the event page shows. It prefers the
// aggregate edge function and assembles the payload from per-resource lists
// when neither edge function route exists.
func (s *Service) GetEventFullDetails(ctx context.Context, eventID string) (*model.EventFullDetails, error) {
	raw, err := s.firstAvailable(ctx, http.MethodPost, fullDetailsPaths, map[string]any{"event_id": eventID})
	switch {
	case err == nil:
		d, err := model.Decode[*model.EventFullDetails](raw)
		if err != nil {
			return nil, fmt.Errorf("decoding event details: %w", err)
		}
		if d.Event == nil {
			return nil, fmt.Errorf("event details for %s carried no event", eventID)
		}
		return d, nil
	case errors.Is(err, errNoEndpoint):
		s.logger.Debug("assembling event details client-side", "event", eventID)
		return s.assembleFullDetails(ctx, eventID)
	default:
		return nil, err
	}
}

func (s *Service) assembleFullDetails(ctx context.Context, eventID string) (*model.EventFullDetails, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	d := &model.EventFullDetails{Event: event}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fullDetailsFanout)
	section := func(name string, load func(context.Context) error) {
		g.Go(func() error {
			if err := load(gctx); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("loading event section failed", "section", name, "event", eventID, "err", err)
			}
			return nil
		})
	}
	section("members", func(ctx context.Context) (err error) {
		d.Members, err = s.ListEventMembers(ctx, eventID)
		return err
	})
	section("tasks", func(ctx context.Context) (err error) {
		d.Tasks, err = s.ListTasks(ctx, eventID)
		return err
	})
	section("polls", func(ctx context.Context) (err error) {
		d.Polls, err = s.GetPolls(ctx, eventID)
		return err
	})
	section("media", func(ctx context.Context) (err error) {
		d.Media, err = s.ListMedia(ctx, eventID)
		return err
	})
	section("documents", func(ctx context.Context) (err error) {
		d.Documents, err = s.ListDocuments(ctx, eventID)
		return err
	})
	section("links", func(ctx context.Context) (err error) {
		d.Links, err = s.ListLinks(ctx, eventID)
		return err
	})
	section("professionals", func(ctx context.Context) (err error) {
		d.Professionals, err = s.ListProfessionals(ctx, eventID)
		return err
	})
	section("rsvps", func(ctx context.Context) (err error) {
		d.RSVPs, err = s.ListRSVPs(ctx, eventID)
		return err
	})
	section("messages", func(ctx context.Context) (err error) {
		d.Messages, err = s.ListMessages(ctx, eventID)
		return err
	})
	section("budget", func(ctx context.Context) (err error) {
		d.Budget, err = s.ListBudgetItems(ctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.attachUsers(ctx, d.Members)
	return d, nil
}

// GetEventInitialData loads the event and its members for the first paint.
func (s *Service) GetEventInitialData(ctx context.Context, eventID string) (*model.EventInitialData, error) {
	raw, err := s.firstAvailable(ctx, http.MethodPost, initialDataPaths, map[string]any{"event_id": eventID})
	switch {
	case err == nil:
		d, err := model.Decode[*model.EventInitialData](raw)
		if err != nil {
			return nil, fmt.Errorf("decoding initial data: %w", err)
		}
		if d.Event == nil {
			return nil, fmt.Errorf("initial data for %s carried no event", eventID)
		}
		return d, nil
	case errors.Is(err, errNoEndpoint):
		event, err := s.GetEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		members, err := s.ListEventMembers(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return &model.EventInitialData{Event: event, Members: members}, nil
	default:
		return nil, err
	}
}

// JoinEvent adds userID to the event behind an invite code. Joining an
// event twice returns the existing membership.
func (s *Service) JoinEvent(ctx context.Context, code, userID string) (*model.EventMember, error) {
	found, err := fetchList[*model.Event](ctx, s, listPath(ResEvent, url.Values{"invite_code": []string{code}}))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInviteNotFound, code)
	}
	event := found[0]

	existing, err := fetchList[*model.EventMember](ctx, s, listPath(ResMember, url.Values{
		"event_id": []string{event.ID},
		"user_id":  []string{userID},
	}))
	if err != nil {
		return nil, err
	}
	for _, m := range existing {
		if m.UserID == userID {
			return m, nil
		}
	}

	member, err := write[*model.EventMember](ctx, s, http.MethodPost, "/"+ResMember, &model.EventMember{
		EventID: event.ID,
		UserID:  userID,
		Role:    model.RoleMember,
		Status:  "active",
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicMemberJoined, event.ID, member.ID, member)
	if event.OwnerID != "" {
		s.notify(ctx, model.Notification{
			EventID: event.ID,
			UserIDs: []string{event.OwnerID},
			Title:   event.Title,
			Body:    "A new participant joined",
			Type:    NotifyMemberJoined,
		})
	}
	return member, nil
}

// compact drops nil entries, keeping order.
func compact[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
