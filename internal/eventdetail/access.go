// Package eventdetail is the event page: it loads an event once, works out
// what the viewer may do, and exposes one controller per tab whose
// mutations apply locally first and roll back if the backend refuses.
package eventdetail

import (
	"errors"
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

var (
	// ErrForbidden is returned when the viewer's role does not allow an action.
	ErrForbidden = errors.New("not allowed for your role in this event")
	// ErrOwnerProtected is returned when removing or demoting an owner.
	ErrOwnerProtected = fmt.Errorf("%w: owners cannot be removed or demoted", ErrForbidden)
	// ErrPending is returned when acting on an item the backend has not
	// confirmed yet.
	ErrPending = errors.New("item is still being saved")
)

// Permissions are what a role may do on the event page.
type Permissions struct {
	CanEdit          bool // add and change tasks, polls, media, messages
	CanManageMembers bool
	CanManageBudget  bool
	CanInvite        bool
	CanDelete        bool // delete the event itself
	CanModerate      bool // edit event details, remove other people's content
}

// PermissionsFor returns the permissions of role.
func PermissionsFor(role model.MemberRole) Permissions {
	switch role {
	case model.RoleOwner:
		return Permissions{CanEdit: true, CanManageMembers: true, CanManageBudget: true, CanInvite: true, CanDelete: true, CanModerate: true}
	case model.RoleManager:
		return Permissions{CanEdit: true, CanManageMembers: true, CanManageBudget: true, CanInvite: true, CanModerate: true}
	case model.RoleMember:
		return Permissions{CanEdit: true}
	default:
		return Permissions{}
	}
}

// ResolveRole works out the viewer's role. The event owner is always owner;
// otherwise the viewer's membership decides, and no membership means guest.
func ResolveRole(event *model.Event, members []*model.EventMember, viewerID string) model.MemberRole {
	if viewerID == "" {
		return model.RoleGuest
	}
	if event != nil && event.OwnerID == viewerID {
		return model.RoleOwner
	}
	for _, m := range members {
		if m.UserID != viewerID {
			continue
		}
		if m.Role.IsValid() {
			return m.Role
		}
		return model.RoleMember
	}
	return model.RoleGuest
}

func require(allowed bool) error {
	if !allowed {
		return ErrForbidden
	}
	return nil
}
