package model

// PollOption is one choice in a poll. Votes holds voter user IDs.
type PollOption struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

// HasVote reports whether userID voted for this option.
func (o *PollOption) HasVote(userID string) bool {
	for _, v := range o.Votes {
		if v == userID {
			return true
		}
	}
	return false
}

// Poll is a question put to the event's participants.
type Poll struct {
	ID            string        `json:"id"`
	EventID       string        `json:"event_id"`
	Question      string        `json:"question"`
	Options       []*PollOption `json:"options"`
	MultipleVotes bool          `json:"allow_multiple"`
	Closed        bool          `json:"is_closed"`
	CreatedBy     string        `json:"created_by,omitempty"`
	CreatedAt     Timestamp     `json:"created_at"`
}

// TotalVotes returns the number of votes across all options.
func (p *Poll) TotalVotes() int {
	n := 0
	for _, o := range p.Options {
		n += len(o.Votes)
	}
	return n
}

// Clone returns a deep copy so optimistic edits never alias the snapshot.
func (p *Poll) Clone() *Poll {
	c := *p
	c.Options = make([]*PollOption, len(p.Options))
	for i, o := range p.Options {
		oc := *o
		oc.Votes = append([]string(nil), o.Votes...)
		c.Options[i] = &oc
	}
	return &c
}

// ToggleVote flips userID's vote on optionID. On a single-choice poll a new
// vote clears the user's votes on every other option. It reports false when
// the option does not exist.
func (p *Poll) ToggleVote(optionID, userID string) bool {
	var target *PollOption
	for _, o := range p.Options {
		if o.ID == optionID {
			target = o
			break
		}
	}
	if target == nil {
		return false
	}
	if target.HasVote(userID) {
		target.Votes = without(target.Votes, userID)
		return true
	}
	if !p.MultipleVotes {
		for _, o := range p.Options {
			o.Votes = without(o.Votes, userID)
		}
	}
	target.Votes = append(target.Votes, userID)
	return true
}

func without(votes []string, userID string) []string {
	out := votes[:0:0]
	for _, v := range votes {
		if v != userID {
			out = append(out, v)
		}
	}
	return out
}
