package model

// Event is the top-level planning record every other entity hangs off.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    Timestamp `json:"start_date"`
	EndsAt      Timestamp `json:"end_date"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CoverImage  string    `json:"cover_image_url,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status,omitempty"`
	InviteCode  string    `json:"invite_code,omitempty"`
	Budget      float64   `json:"budget,omitempty"`
	IsPublic    bool      `json:"is_public,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// EventFullDetails is the aggregated payload loaded once per event page.
type EventFullDetails struct {
	Event         *Event           `json:"event"`
	Members       []*EventMember   `json:"members"`
	Tasks         []*Task          `json:"tasks"`
	Polls         []*Poll          `json:"polls"`
	Media         []*MediaItem     `json:"media_items"`
	Documents     []*EventDocument `json:"documents"`
	Links         []*EventLink     `json:"links"`
	Professionals []*Professional  `json:"professionals"`
	RSVPs         []*RSVP          `json:"rsvps"`
	Messages      []*Message       `json:"messages"`
	Budget        []*BudgetItem    `json:"budget_items"`
}

// EventInitialData is the lighter payload used for the first paint of an
// event page and the join flow.
type EventInitialData struct {
	Event   *Event         `json:"event"`
	Members []*EventMember `json:"members"`
}
