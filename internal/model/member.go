package model

// MemberRole is a participant's role within an event.
type MemberRole string

const (
	RoleOwner   MemberRole = "owner"
	RoleManager MemberRole = "manager"
	RoleMember  MemberRole = "member"
	RoleGuest   MemberRole = "guest"
)

// IsValid checks whether the role is a known value.
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleMember, RoleGuest:
		return true
	}
	return false
}

// EventMember links a user to an event.
type EventMember struct {
	ID       string     `json:"id"`
	EventID  string     `json:"event_id"`
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	Status   string     `json:"status,omitempty"`
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email,omitempty"`
	JoinedAt Timestamp  `json:"joined_at"`

	// User is filled in client-side from the user lookup fan-out.
	User *User `json:"user,omitempty"`
}
