package eventdetail

import (
	"context"
	"fmt"
	"io"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// GalleryTab holds the event's photos and videos.
type GalleryTab struct {
	tab
	items *optimistic.Collection[*model.MediaItem]
}

func newGalleryTab(t tab, media []*model.MediaItem) *GalleryTab {
	return &GalleryTab{tab: t, items: newCollection(t, media,
		func(v *model.MediaItem) string { return v.ID },
		func(v *model.MediaItem, id string) { v.ID = id })}
}

func (t *GalleryTab) Items() []*model.MediaItem { return t.items.Items() }

// Upload stores a file and adds it to the gallery.
func (t *GalleryTab) Upload(ctx context.Context, fileName string, r io.Reader, caption string) (*model.MediaItem, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	item := &model.MediaItem{EventID: t.eventID(), Caption: caption, UploadedBy: t.page.ViewerID}
	return t.items.Create(ctx, item, func(ctx context.Context, m *model.MediaItem) (*model.MediaItem, error) {
		return t.page.backend.UploadMedia(ctx, m, fileName, r)
	}, optimistic.Messages{})
}

// Remove deletes a media item. Its uploader or a moderator may.
func (t *GalleryTab) Remove(ctx context.Context, id string) error {
	m, ok := t.items.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", optimistic.ErrNotFound, id)
	}
	if err := require(t.page.Perms.CanModerate || (t.page.Perms.CanEdit && m.UploadedBy == t.page.ViewerID)); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteMediaItem(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}

// DocumentsTab holds shared files.
type DocumentsTab struct {
	tab
	items *optimistic.Collection[*model.EventDocument]
}

func newDocumentsTab(t tab, docs []*model.EventDocument) *DocumentsTab {
	return &DocumentsTab{tab: t, items: newCollection(t, docs,
		func(v *model.EventDocument) string { return v.ID },
		func(v *model.EventDocument, id string) { v.ID = id })}
}

func (t *DocumentsTab) Items() []*model.EventDocument { return t.items.Items() }

func (t *DocumentsTab) Add(ctx context.Context, d *model.EventDocument) (*model.EventDocument, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	d.EventID = t.eventID()
	d.UploadedBy = t.page.ViewerID
	return t.items.Create(ctx, d, t.page.backend.CreateDocument, optimistic.Messages{})
}

func (t *DocumentsTab) Remove(ctx context.Context, id string) error {
	if err := require(t.page.Perms.CanModerate); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteDocument(ctx, id)
	}, optimistic.Messages{})
}

// LinksTab holds bookmarked URLs.
type LinksTab struct {
	tab
	items *optimistic.Collection[*model.EventLink]
}

func newLinksTab(t tab, links []*model.EventLink) *LinksTab {
	return &LinksTab{tab: t, items: newCollection(t, links,
		func(v *model.EventLink) string { return v.ID },
		func(v *model.EventLink, id string) { v.ID = id })}
}

func (t *LinksTab) Items() []*model.EventLink { return t.items.Items() }

func (t *LinksTab) Add(ctx context.Context, title, url string) (*model.EventLink, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	l := &model.EventLink{EventID: t.eventID(), Title: title, URL: url, AddedBy: t.page.ViewerID}
	return t.items.Create(ctx, l, t.page.backend.CreateLink, optimistic.Messages{})
}

func (t *LinksTab) Remove(ctx context.Context, id string) error {
	if err := require(t.page.Perms.CanModerate); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteLink(ctx, id)
	}, optimistic.Messages{})
}

// ProfessionalsTab holds the event's vendors.
type ProfessionalsTab struct {
	tab
	items *optimistic.Collection[*model.Professional]
}

func newProfessionalsTab(t tab, pros []*model.Professional) *ProfessionalsTab {
	return &ProfessionalsTab{tab: t, items: newCollection(t, pros,
		func(v *model.Professional) string { return v.ID },
		func(v *model.Professional, id string) { v.ID = id })}
}

func (t *ProfessionalsTab) Items() []*model.Professional { return t.items.Items() }

func (t *ProfessionalsTab) Add(ctx context.Context, p *model.Professional) (*model.Professional, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	p.EventID = t.eventID()
	return t.items.Create(ctx, p, t.page.backend.CreateProfessional, optimistic.Messages{})
}

// SetConfirmed marks a vendor as booked or not.
func (t *ProfessionalsTab) SetConfirmed(ctx context.Context, id string, confirmed bool) (*model.Professional, error) {
	if err := require(t.page.Perms.CanManageBudget); err != nil {
		return nil, err
	}
	return t.items.Update(ctx, id,
		func(p *model.Professional) *model.Professional {
			p.Confirmed = confirmed
			return p
		},
		func(ctx context.Context, p *model.Professional) (*model.Professional, error) {
			return t.page.backend.UpdateProfessional(ctx, p.ID, map[string]any{"is_confirmed": confirmed})
		}, optimistic.Messages{})
}

func (t *ProfessionalsTab) Remove(ctx context.Context, id string) error {
	if err := require(t.page.Perms.CanModerate); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteProfessional(ctx, id)
	}, optimistic.Messages{})
}
