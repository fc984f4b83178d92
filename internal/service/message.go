package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// ErrEmptyMessage is returned by SendMessage for blank content.
var ErrEmptyMessage = errors.New("message content is empty")

func (s *Service) ListMessages(ctx context.Context, eventID string) ([]*model.Message, error) {
	return fetchList[*model.Message](ctx, s, listPath(ResMessage, byEvent(eventID)))
}

// SendMessage posts to the event chat and notifies participants.
func (s *Service) SendMessage(ctx context.Context, m *model.Message) (*model.Message, error) {
	m.Content = strings.TrimSpace(m.Content)
	if m.Content == "" {
		return nil, ErrEmptyMessage
	}
	if m.Kind == "" {
		m.Kind = "chat"
	}
	sent, err := write[*model.Message](ctx, s, http.MethodPost, "/"+ResMessage, m)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicMessageSent, sent.EventID, sent.ID, sent)
	s.notify(ctx, model.Notification{
		EventID: sent.EventID,
		Title:   "New message",
		Body:    preview(sent.Content),
		Type:    NotifyMessage,
	})
	return sent, nil
}

func (s *Service) DeleteMessage(ctx context.Context, eventID, id string) error {
	if err := s.remove(ctx, ResMessage, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicMessageDeleted, eventID, id, nil)
	return nil
}

// preview shortens content for a notification body.
func preview(content string) string {
	const max = 80
	r := []rune(content)
	if len(r) <= max {
		return content
	}
	return string(r[:max]) + "…"
}
