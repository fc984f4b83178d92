package sync

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// Source loads everything known about one event.
type Source interface {
	GetEventFullDetails(ctx context.Context, eventID string) (*model.EventFullDetails, error)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	EventCount  int       `json:"event_count"`
	RecordCount int       `json:"record_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Record types, in the order they are written.
const (
	TypeEvent    = "event"
	TypeMember   = "member"
	TypeTask     = "task"
	TypePoll     = "poll"
	TypeRSVP     = "rsvp"
	TypeMedia    = "media"
	TypeDocument = "document"
	TypeLink     = "link"
	TypeBudget   = "budget"
	TypeMessage  = "message"
)

// snapshot gathers the records of every exported event, grouped by type.
type snapshot struct {
	events    []*model.Event
	members   []*model.EventMember
	tasks     []*model.Task
	polls     []*model.Poll
	rsvps     []*model.RSVP
	media     []*model.MediaItem
	documents []*model.EventDocument
	links     []*model.EventLink
	budget    []*model.BudgetItem
	messages  []*model.Message
}

func (s *snapshot) add(d *model.EventFullDetails) {
	if d.Event != nil {
		s.events = append(s.events, d.Event)
	}
	s.members = append(s.members, d.Members...)
	s.tasks = append(s.tasks, d.Tasks...)
	s.polls = append(s.polls, d.Polls...)
	s.rsvps = append(s.rsvps, d.RSVPs...)
	s.media = append(s.media, d.Media...)
	s.documents = append(s.documents, d.Documents...)
	s.links = append(s.links, d.Links...)
	s.budget = append(s.budget, d.Budget...)
	s.messages = append(s.messages, d.Messages...)
}

// ExportJSONL writes the given events and everything attached to them as
// JSONL to w. Records are grouped by type and sorted by ID within a type.
func ExportJSONL(ctx context.Context, src Source, eventIDs []string, w io.Writer) error {
	var snap snapshot
	for _, id := range eventIDs {
		d, err := src.GetEventFullDetails(ctx, id)
		if err != nil {
			return fmt.Errorf("load event %s: %w", id, err)
		}
		snap.add(d)
	}

	var lines []record
	lines = appendSorted(lines, TypeEvent, snap.events, func(v *model.Event) string { return v.ID })
	lines = appendSorted(lines, TypeMember, snap.members, func(v *model.EventMember) string { return v.ID })
	lines = appendSorted(lines, TypeTask, snap.tasks, func(v *model.Task) string { return v.ID })
	lines = appendSorted(lines, TypePoll, snap.polls, func(v *model.Poll) string { return v.ID })
	lines = appendSorted(lines, TypeRSVP, snap.rsvps, func(v *model.RSVP) string { return v.ID })
	lines = appendSorted(lines, TypeMedia, snap.media, func(v *model.MediaItem) string { return v.ID })
	lines = appendSorted(lines, TypeDocument, snap.documents, func(v *model.EventDocument) string { return v.ID })
	lines = appendSorted(lines, TypeLink, snap.links, func(v *model.EventLink) string { return v.ID })
	lines = appendSorted(lines, TypeBudget, snap.budget, func(v *model.BudgetItem) string { return v.ID })
	lines = appendSorted(lines, TypeMessage, snap.messages, func(v *model.Message) string { return v.ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		EventCount:  len(snap.events),
		RecordCount: len(lines),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, r := range lines {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode %s: %w", r.Type, err)
		}
	}
	return nil
}

func appendSorted[T any](out []record, typ string, items []*T, id func(*T) string) []record {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b *T) int { return cmp.Compare(id(a), id(b)) })
	for _, it := range sorted {
		out = append(out, record{Type: typ, Data: it})
	}
	return out
}
