package eventdetail

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/service"
)

// Backend is the set of domain operations the page uses.
// *service.Service implements it.
type Backend interface {
	GetEventFullDetails(ctx context.Context, eventID string) (*model.EventFullDetails, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]any) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	CreateTask(ctx context.Context, t *model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, fields map[string]any) (*model.Task, error)
	DeleteTask(ctx context.Context, eventID, id string) error

	CreatePoll(ctx context.Context, p *model.Poll) (*model.Poll, error)
	VotePoll(ctx context.Context, p *model.Poll) (*model.Poll, error)
	DeletePoll(ctx context.Context, eventID, id string) error

	UpsertRSVP(ctx context.Context, r *model.RSVP) (*model.RSVP, error)

	UploadMedia(ctx context.Context, m *model.MediaItem, fileName string, r io.Reader) (*model.MediaItem, error)
	DeleteMediaItem(ctx context.Context, eventID, id string) error

	CreateDocument(ctx context.Context, d *model.EventDocument) (*model.EventDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	CreateLink(ctx context.Context, l *model.EventLink) (*model.EventLink, error)
	DeleteLink(ctx context.Context, id string) error
	CreateProfessional(ctx context.Context, p *model.Professional) (*model.Professional, error)
	UpdateProfessional(ctx context.Context, id string, fields map[string]any) (*model.Professional, error)
	DeleteProfessional(ctx context.Context, id string) error

	CreateBudgetItem(ctx context.Context, b *model.BudgetItem) (*model.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, id string, fields map[string]any) (*model.BudgetItem, error)
	DeleteBudgetItem(ctx context.Context, eventID, id string) error

	UpdateEventMember(ctx context.Context, memberID string, fields map[string]any) (*model.EventMember, error)
	RemoveEventMember(ctx context.Context, eventID, memberID string) error
	CreateInvitation(ctx context.Context, inv *model.Invitation) (*model.Invitation, error)

	SendMessage(ctx context.Context, m *model.Message) (*model.Message, error)
	DeleteMessage(ctx context.Context, eventID, id string) error
}

var _ Backend = (*service.Service)(nil)

// Loader builds event pages.
type Loader struct {
	Backend  Backend
	ViewerID string
	Views    ViewStore          // optional
	Toaster  optimistic.Toaster // optional
}

// Load fetches the event with a single full-details call and builds the
// page for the viewer.
func (l *Loader) Load(ctx context.Context, eventID string) (*Page, error) {
	d, err := l.Backend.GetEventFullDetails(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading event %s: %w", eventID, err)
	}
	return NewPage(d, l.ViewerID, l.Backend, l.Views, l.Toaster), nil
}

// Page is a loaded event page.
type Page struct {
	Event    *model.Event
	ViewerID string
	Role     model.MemberRole
	Perms    Permissions

	Tasks         *TasksTab
	Polls         *PollsTab
	RSVP          *RSVPTab
	Gallery       *GalleryTab
	Documents     *DocumentsTab
	Links         *LinksTab
	Budget        *BudgetTab
	Participants  *ParticipantsTab
	Updates       *UpdatesTab
	Professionals *ProfessionalsTab

	backend Backend
	views   ViewStore
}

// NewPage builds a page from already loaded details.
func NewPage(d *model.EventFullDetails, viewerID string, backend Backend, views ViewStore, toaster optimistic.Toaster) *Page {
	role := ResolveRole(d.Event, d.Members, viewerID)
	p := &Page{
		Event:    d.Event,
		ViewerID: viewerID,
		Role:     role,
		Perms:    PermissionsFor(role),
		backend:  backend,
		views:    views,
	}
	if toaster == nil {
		toaster = optimistic.NopToaster{}
	}
	base := tab{page: p, toaster: toaster}
	p.Tasks = newTasksTab(base, d.Tasks)
	p.Polls = newPollsTab(base, d.Polls)
	p.RSVP = newRSVPTab(base, d.RSVPs)
	p.Gallery = newGalleryTab(base, d.Media)
	p.Documents = newDocumentsTab(base, d.Documents)
	p.Links = newLinksTab(base, d.Links)
	p.Budget = newBudgetTab(base, d.Budget)
	p.Participants = newParticipantsTab(base, d.Members)
	p.Updates = newUpdatesTab(base, d.Messages)
	p.Professionals = newProfessionalsTab(base, d.Professionals)
	return p
}

// EventID returns the ID of the loaded event.
func (p *Page) EventID() string { return p.Event.ID }

// Tab resolves the tab to show for query.
func (p *Page) Tab(query url.Values) Tab { return ResolveTab(query, p.Perms) }

// ViewMode resolves the layout for query and the persisted preference.
func (p *Page) ViewMode(query url.Values) ViewMode {
	persisted := ""
	if p.views != nil {
		persisted = p.views.ViewMode(p.EventID())
	}
	return ResolveViewMode(query, persisted)
}

// SetViewMode persists the layout for this event.
func (p *Page) SetViewMode(mode ViewMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("unknown view mode %q", mode)
	}
	if p.views == nil {
		return nil
	}
	return p.views.SetViewMode(p.EventID(), string(mode))
}

// UpdateDetails edits the event's own fields.
func (p *Page) UpdateDetails(ctx context.Context, fields map[string]any) error {
	if err := require(p.Perms.CanModerate); err != nil {
		return err
	}
	updated, err := p.backend.UpdateEvent(ctx, p.EventID(), fields)
	if err != nil {
		return err
	}
	if updated != nil && updated.ID != "" {
		p.Event = updated
	}
	return nil
}

// DeleteEvent deletes the event. Only owners may.
func (p *Page) DeleteEvent(ctx context.Context) error {
	if err := require(p.Perms.CanDelete); err != nil {
		return err
	}
	return p.backend.DeleteEvent(ctx, p.EventID())
}

// Invite creates an invitation for email (empty for a shareable code).
func (p *Page) Invite(ctx context.Context, email string, role model.MemberRole) (*model.Invitation, error) {
	if err := require(p.Perms.CanInvite); err != nil {
		return nil, err
	}
	return p.backend.CreateInvitation(ctx, &model.Invitation{
		EventID:   p.EventID(),
		Email:     email,
		Role:      string(role),
		InvitedBy: p.ViewerID,
	})
}

// tab is the state every tab controller shares.
type tab struct {
	page    *Page
	toaster optimistic.Toaster
}

func (t tab) eventID() string { return t.page.EventID() }

// newCollection builds an optimistic collection of shallow-copied entities.
func newCollection[T any](t tab, items []*T, key func(*T) string, withKey func(*T, string)) *optimistic.Collection[*T] {
	c := &optimistic.Collection[*T]{
		Key: key,
		WithKey: func(v *T, id string) *T {
			cp := *v
			withKey(&cp, id)
			return &cp
		},
		Clone: func(v *T) *T {
			cp := *v
			return &cp
		},
		Toaster: t.toaster,
	}
	c.Replace(items)
	return c
}
