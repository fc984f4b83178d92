package model

// RSVPStatus is a guest's attendance answer.
type RSVPStatus string

const (
	RSVPAttending RSVPStatus = "attending"
	RSVPMaybe     RSVPStatus = "maybe"
	RSVPDeclined  RSVPStatus = "declined"
)

// IsValid checks whether the status is a known value.
func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPAttending, RSVPMaybe, RSVPDeclined:
		return true
	}
	return false
}

// RSVP records one user's attendance answer for an event.
type RSVP struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	Guests    int        `json:"guests_count"`
	Note      string     `json:"note,omitempty"`
	UpdatedAt Timestamp  `json:"updated_at"`
}

// Invitation is a shareable join code or an emailed invite.
type Invitation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Code      string    `json:"code"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	Status    string    `json:"status,omitempty"`
	InvitedBy string    `json:"invited_by,omitempty"`
	ExpiresAt Timestamp `json:"expires_at"`
	CreatedAt Timestamp `json:"created_at"`
}

// Notification is a push/in-app notice sent to a set of users.
type Notification struct {
	EventID string   `json:"event_id,omitempty"`
	UserIDs []string `json:"user_ids"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Type    string   `json:"type,omitempty"`
	Link    string   `json:"link,omitempty"`
}
