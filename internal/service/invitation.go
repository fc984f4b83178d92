package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/idgen"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// inviteCodeLength is the length of generated invite codes.
const inviteCodeLength = 8

func (s *Service) ListInvitations(ctx context.Context, eventID string) ([]*model.Invitation, error) {
	return fetchList[*model.Invitation](ctx, s, listPath(ResInvitation, byEvent(eventID)))
}

// CreateInvitation creates an invite, generating a code when none is set.
func (s *Service) CreateInvitation(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	if inv.Code == "" {
		code, err := idgen.InviteCode(inviteCodeLength)
		if err != nil {
			return nil, fmt.Errorf("generating invite code: %w", err)
		}
		inv.Code = code
	}
	if inv.Role == "" {
		inv.Role = string(model.RoleMember)
	}
	if inv.Status == "" {
		inv.Status = "pending"
	}
	created, err := write[*model.Invitation](ctx, s, http.MethodPost, "/"+ResInvitation, inv)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicInvitationCreated, created.EventID, created.ID, created)
	s.notify(ctx, model.Notification{
		EventID: created.EventID,
		Title:   "Invitation",
		Body:    created.Email,
		Type:    NotifyInvitation,
		Link:    "/join/" + created.Code,
	})
	return created, nil
}

func (s *Service) RevokeInvitation(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResInvitation, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicInvitationRevoked, eventID, id, nil)
	return nil
}
