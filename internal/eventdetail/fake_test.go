package eventdetail

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// stubBackend echoes mutations back with server IDs unless fail is set.
type stubBackend struct {
	mu      sync.Mutex
	details *model.EventFullDetails
	fail    error
	calls   []string
	nextID  int
}

func (b *stubBackend) record(call string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
	return b.fail
}

func (b *stubBackend) id(prefix string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *stubBackend) GetEventFullDetails(ctx context.Context, eventID string) (*model.EventFullDetails, error) {
	if err := b.record("GetEventFullDetails " + eventID); err != nil {
		return nil, err
	}
	return b.details, nil
}

func (b *stubBackend) UpdateEvent(ctx context.Context, id string, fields map[string]any) (*model.Event, error) {
	if err := b.record("UpdateEvent " + id); err != nil {
		return nil, err
	}
	e := *b.details.Event
	if title, ok := fields["title"].(string); ok {
		e.Title = title
	}
	return &e, nil
}

func (b *stubBackend) DeleteEvent(ctx context.Context, id string) error {
	return b.record("DeleteEvent " + id)
}

func (b *stubBackend) CreateTask(ctx context.Context, t *model.Task) (*model.Task, error) {
	if err := b.record("CreateTask"); err != nil {
		return nil, err
	}
	c := *t
	c.ID = b.id("task")
	return &c, nil
}

func (b *stubBackend) UpdateTask(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	if err := b.record(fmt.Sprintf("UpdateTask %s %v", id, fields)); err != nil {
		return nil, err
	}
	return &model.Task{}, nil
}

func (b *stubBackend) DeleteTask(ctx context.Context, eventID, id string) error {
	return b.record("DeleteTask " + id)
}

func (b *stubBackend) CreatePoll(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	if err := b.record("CreatePoll"); err != nil {
		return nil, err
	}
	c := p.Clone()
	c.ID = b.id("poll")
	return c, nil
}

func (b *stubBackend) VotePoll(ctx context.Context, p *model.Poll) (*model.Poll, error) {
	if err := b.record("VotePoll " + p.ID); err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (b *stubBackend) DeletePoll(ctx context.Context, eventID, id string) error {
	return b.record("DeletePoll " + id)
}

func (b *stubBackend) UpsertRSVP(ctx context.Context, r *model.RSVP) (*model.RSVP, error) {
	if err := b.record("UpsertRSVP " + string(r.Status)); err != nil {
		return nil, err
	}
	c := *r
	if c.ID == "" {
		c.ID = b.id("rsvp")
	}
	return &c, nil
}

func (b *stubBackend) UploadMedia(ctx context.Context, m *model.MediaItem, fileName string, r io.Reader) (*model.MediaItem, error) {
	if err := b.record("UploadMedia " + fileName); err != nil {
		return nil, err
	}
	c := *m
	c.ID = b.id("media")
	c.URL = "https://cdn.example.com/" + fileName
	return &c, nil
}

func (b *stubBackend) DeleteMediaItem(ctx context.Context, eventID, id string) error {
	return b.record("DeleteMediaItem " + id)
}

func (b *stubBackend) CreateDocument(ctx context.Context, d *model.EventDocument) (*model.EventDocument, error) {
	if err := b.record("CreateDocument"); err != nil {
		return nil, err
	}
	c := *d
	c.ID = b.id("doc")
	return &c, nil
}

func (b *stubBackend) DeleteDocument(ctx context.Context, id string) error {
	return b.record("DeleteDocument " + id)
}

func (b *stubBackend) CreateLink(ctx context.Context, l *model.EventLink) (*model.EventLink, error) {
	if err := b.record("CreateLink"); err != nil {
		return nil, err
	}
	c := *l
	c.ID = b.id("link")
	return &c, nil
}

func (b *stubBackend) DeleteLink(ctx context.Context, id string) error {
	return b.record("DeleteLink " + id)
}

func (b *stubBackend) CreateProfessional(ctx context.Context, p *model.Professional) (*model.Professional, error) {
	if err := b.record("CreateProfessional"); err != nil {
		return nil, err
	}
	c := *p
	c.ID = b.id("pro")
	return &c, nil
}

func (b *stubBackend) UpdateProfessional(ctx context.Context, id string, fields map[string]any) (*model.Professional, error) {
	if err := b.record("UpdateProfessional " + id); err != nil {
		return nil, err
	}
	return &model.Professional{}, nil
}

func (b *stubBackend) DeleteProfessional(ctx context.Context, id string) error {
	return b.record("DeleteProfessional " + id)
}

func (b *stubBackend) CreateBudgetItem(ctx context.Context, item *model.BudgetItem) (*model.BudgetItem, error) {
	if err := b.record("CreateBudgetItem"); err != nil {
		return nil, err
	}
	c := *item
	c.ID = b.id("budget")
	return &c, nil
}

func (b *stubBackend) UpdateBudgetItem(ctx context.Context, id string, fields map[string]any) (*model.BudgetItem, error) {
	if err := b.record("UpdateBudgetItem " + id); err != nil {
		return nil, err
	}
	return &model.BudgetItem{}, nil
}

func (b *stubBackend) DeleteBudgetItem(ctx context.Context, eventID, id string) error {
	return b.record("DeleteBudgetItem " + id)
}

func (b *stubBackend) UpdateEventMember(ctx context.Context, memberID string, fields map[string]any) (*model.EventMember, error) {
	if err := b.record(fmt.Sprintf("UpdateEventMember %s %v", memberID, fields["role"])); err != nil {
		return nil, err
	}
	return &model.EventMember{}, nil
}

func (b *stubBackend) RemoveEventMember(ctx context.Context, eventID, memberID string) error {
	return b.record("RemoveEventMember " + memberID)
}

func (b *stubBackend) CreateInvitation(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	if err := b.record("CreateInvitation " + inv.Email); err != nil {
		return nil, err
	}
	c := *inv
	c.ID = b.id("inv")
	c.Code = "ABCD2345"
	return &c, nil
}

func (b *stubBackend) SendMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	if err := b.record("SendMessage"); err != nil {
		return nil, err
	}
	c := *m
	c.ID = b.id("msg")
	return &c, nil
}

func (b *stubBackend) DeleteMessage(ctx context.Context, eventID, id string) error {
	return b.record("DeleteMessage " + id)
}

type recordingToaster struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recordingToaster) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recordingToaster) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// weddingDetails is an event owned by u-owner with a manager, a member and
// one open task.
func weddingDetails() *model.EventFullDetails {
	return &model.EventFullDetails{
		Event: &model.Event{ID: "e1", Title: "Wedding", OwnerID: "u-owner"},
		Members: []*model.EventMember{
			{ID: "m-owner", EventID: "e1", UserID: "u-owner", Role: model.RoleOwner},
			{ID: "m-manager", EventID: "e1", UserID: "u-manager", Role: model.RoleManager},
			{ID: "m-member", EventID: "e1", UserID: "u-member", Role: model.RoleMember},
		},
		Tasks: []*model.Task{
			{ID: "t1", EventID: "e1", Title: "Order cake", Status: model.TaskTodo},
			{ID: "t2", EventID: "e1", Title: "Book DJ", Status: model.TaskInProgress},
		},
		Polls: []*model.Poll{{
			ID: "p1", EventID: "e1", Question: "Venue?", CreatedBy: "u-manager",
			Options: []*model.PollOption{
				{ID: "a", Text: "Garden", Votes: []string{}},
				{ID: "b", Text: "Hall", Votes: []string{"u-member"}},
			},
		}},
		Budget: []*model.BudgetItem{
			{ID: "b1", EventID: "e1", Title: "Venue", Planned: 5000, Actual: 4500, Paid: true},
			{ID: "b2", EventID: "e1", Title: "Flowers", Planned: 800, Actual: 300},
		},
		Messages: []*model.Message{
			{ID: "msg1", EventID: "e1", SenderID: "u-manager", Content: "Welcome!"},
		},
	}
}

func newTestPage(viewerID string, backend *stubBackend, toaster *recordingToaster) *Page {
	if backend.details == nil {
		backend.details = weddingDetails()
	}
	var t optimistic.Toaster
	if toaster != nil {
		t = toaster
	}
	return NewPage(backend.details, viewerID, backend, nil, t)
}
