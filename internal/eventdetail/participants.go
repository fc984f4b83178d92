package eventdetail

import (
	"context"
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// ParticipantsTab lists the event's members.
type ParticipantsTab struct {
	tab
	items *optimistic.Collection[*model.EventMember]
}

func newParticipantsTab(t tab, members []*model.EventMember) *ParticipantsTab {
	return &ParticipantsTab{tab: t, items: newCollection(t, members,
		func(v *model.EventMember) string { return v.ID },
		func(v *model.EventMember, id string) { v.ID = id })}
}

func (t *ParticipantsTab) Items() []*model.EventMember { return t.items.Items() }

// ChangeRole sets a member's role. Owners keep their role, and ownership
// cannot be handed out here.
func (t *ParticipantsTab) ChangeRole(ctx context.Context, memberID string, role model.MemberRole) (*model.EventMember, error) {
	if err := require(t.page.Perms.CanManageMembers); err != nil {
		return nil, err
	}
	if !role.IsValid() || role == model.RoleOwner {
		return nil, &model.ValidationError{Errors: []model.FieldError{{Field: "role", Message: fmt.Sprintf("cannot assign role %q", role)}}}
	}
	m, err := t.member(memberID)
	if err != nil {
		return nil, err
	}
	if t.isOwner(m) {
		return nil, ErrOwnerProtected
	}
	return t.items.Update(ctx, memberID,
		func(m *model.EventMember) *model.EventMember {
			m.Role = role
			return m
		},
		func(ctx context.Context, m *model.EventMember) (*model.EventMember, error) {
			return t.page.backend.UpdateEventMember(ctx, m.ID, map[string]any{"role": role})
		}, optimistic.Messages{})
}

// Remove takes a member out of the event. Owners cannot be removed.
func (t *ParticipantsTab) Remove(ctx context.Context, memberID string) error {
	if err := require(t.page.Perms.CanManageMembers); err != nil {
		return err
	}
	m, err := t.member(memberID)
	if err != nil {
		return err
	}
	if t.isOwner(m) {
		return ErrOwnerProtected
	}
	return t.items.Delete(ctx, memberID, func(ctx context.Context, id string) error {
		return t.page.backend.RemoveEventMember(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}

func (t *ParticipantsTab) member(id string) (*model.EventMember, error) {
	m, ok := t.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", optimistic.ErrNotFound, id)
	}
	return m, nil
}

func (t *ParticipantsTab) isOwner(m *model.EventMember) bool {
	return m.Role == model.RoleOwner || (t.page.Event != nil && m.UserID == t.page.Event.OwnerID)
}
