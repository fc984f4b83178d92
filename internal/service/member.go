package service

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// userLookupFanout bounds concurrent user lookups.
const userLookupFanout = 5

func (s *Service) ListEventMembers(ctx context.Context, eventID string) ([]*model.EventMember, error) {
	return fetchList[*model.EventMember](ctx, s, listPath(ResMember, byEvent(eventID)))
}

// UpdateEventMember applies fields to a membership. A role change notifies
// the member.
func (s *Service) UpdateEventMember(ctx context.Context, memberID string, fields map[string]any) (*model.EventMember, error) {
	if role, ok := fields["role"]; ok {
		r := model.MemberRole(fmt.Sprint(role))
		if !r.IsValid() {
			return nil, &model.ValidationError{Errors: []model.FieldError{{Field: "role", Message: fmt.Sprintf("invalid role %q", r)}}}
		}
	}
	m, err := write[*model.EventMember](ctx, s, http.MethodPut, resourcePath(ResMember, memberID), fields)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicMemberUpdated, m.EventID, memberID, fields)
	if _, ok := fields["role"]; ok && m.UserID != "" {
		s.notify(ctx, model.Notification{
			EventID: m.EventID,
			UserIDs: []string{m.UserID},
			Title:   "Your role changed",
			Body:    fmt.Sprintf("You are now %s", m.Role),
			Type:    NotifyRoleChanged,
		})
	}
	return m, nil
}

func (s *Service) RemoveEventMember(ctx context.Context, eventID, memberID string) error {
	if err := s.remove(ctx, ResMember, memberID); err != nil {
		return err
	}
	s.publish(ctx, events.TopicMemberRemoved, eventID, memberID, nil)
	return nil
}

// GetUser loads one user profile.
func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return fetch[*model.User](ctx, s, resourcePath(ResUser, id))
}

// GetUsersByIDs loads profiles concurrently. The result follows the order of
// ids; lookups that fail are logged and left out.
func (s *Service) GetUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	results := make([]*model.User, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(userLookupFanout)
	for i, id := range ids {
		g.Go(func() error {
			u, err := s.GetUser(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.logger.Warn("user lookup failed", "user", id, "err", err)
				return nil
			}
			results[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return compact(results), nil
}

// attachUsers fills EventMember.User for members that arrived without one.
func (s *Service) attachUsers(ctx context.Context, members []*model.EventMember) {
	var ids []string
	seen := map[string]bool{}
	for _, m := range members {
		if m.User == nil && m.UserID != "" && !seen[m.UserID] {
			seen[m.UserID] = true
			ids = append(ids, m.UserID)
		}
	}
	if len(ids) == 0 {
		return
	}
	users, err := s.GetUsersByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("attaching member profiles failed", "err", err)
		return
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, m := range members {
		if m.User == nil {
			m.User = byID[m.UserID]
		}
	}
}
