package service

import (
	"context"
	"net/http"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

const notificationPath = "/edge-function/sendNotification"

// Notification types.
const (
	NotifyTaskAssigned = "task_assigned"
	NotifyPollCreated  = "poll_created"
	NotifyMessage      = "new_message"
	NotifyRoleChanged  = "role_changed"
	NotifyInvitation   = "invitation"
	NotifyRSVP         = "rsvp"
	NotifyMemberJoined = "member_joined"
)

// notify sends a notification and announces it on the change feed. An empty
// UserIDs list lets the backend address the event's participants. Failures
// are logged and never returned.
func (s *Service) notify(ctx context.Context, n model.Notification) {
	if n.UserIDs == nil {
		n.UserIDs = []string{}
	}
	if _, err := s.call(ctx, http.MethodPost, notificationPath, n); err != nil {
		s.logger.Warn("sending notification failed", "type", n.Type, "event", n.EventID, "err", err)
		return
	}
	s.publish(ctx, events.TopicNotificationSent, n.EventID, "", n)
}

// publish emits a change on the feed. Failures are logged and never returned.
func (s *Service) publish(ctx context.Context, topic, eventID, entityID string, data any) {
	if err := s.pub.Publish(ctx, topic, events.NewChange(topic, eventID, entityID, data)); err != nil {
		s.logger.Warn("publishing change failed", "topic", topic, "err", err)
	}
}
