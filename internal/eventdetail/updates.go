package eventdetail

import (
	"context"
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/optimistic"
)

// UpdatesTab is the event chat and announcements feed.
type UpdatesTab struct {
	tab
	items *optimistic.Collection[*model.Message]
}

func newUpdatesTab(t tab, msgs []*model.Message) *UpdatesTab {
	return &UpdatesTab{tab: t, items: newCollection(t, msgs,
		func(v *model.Message) string { return v.ID },
		func(v *model.Message, id string) { v.ID = id })}
}

func (t *UpdatesTab) Items() []*model.Message { return t.items.Items() }

// Send posts a chat message. Announcements need moderator rights.
func (t *UpdatesTab) Send(ctx context.Context, content string, announcement bool) (*model.Message, error) {
	if err := require(t.page.Perms.CanEdit); err != nil {
		return nil, err
	}
	kind := "chat"
	if announcement {
		if err := require(t.page.Perms.CanModerate); err != nil {
			return nil, err
		}
		kind = "announcement"
	}
	m := &model.Message{EventID: t.eventID(), SenderID: t.page.ViewerID, Content: content, Kind: kind}
	return t.items.Create(ctx, m, t.page.backend.SendMessage, optimistic.Messages{})
}

// Delete removes a message. Its sender or a moderator may.
func (t *UpdatesTab) Delete(ctx context.Context, id string) error {
	m, ok := t.items.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", optimistic.ErrNotFound, id)
	}
	if err := require(t.page.Perms.CanModerate || m.SenderID == t.page.ViewerID); err != nil {
		return err
	}
	return t.items.Delete(ctx, id, func(ctx context.Context, id string) error {
		return t.page.backend.DeleteMessage(ctx, t.eventID(), id)
	}, optimistic.Messages{})
}
