// Package events carries the planora change feed: best-effort notifications
// that an event's tasks, polls, chat, members or budget changed.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Prefix is the root subject of every planora topic.
const Prefix = "planora"

// AllTopics matches every planora topic.
const AllTopics = Prefix + ".>"

// Topic constants, planora.<resource>.<action>.
const (
	TopicEventCreated = "planora.event.created"
	TopicEventUpdated = "planora.event.updated"
	TopicEventDeleted = "planora.event.deleted"

	TopicTaskCreated = "planora.task.created"
	TopicTaskUpdated = "planora.task.updated"
	TopicTaskDeleted = "planora.task.deleted"

	TopicPollCreated = "planora.poll.created"
	TopicPollVoted   = "planora.poll.voted"
	TopicPollDeleted = "planora.poll.deleted"

	TopicMessageSent    = "planora.message.sent"
	TopicMessageDeleted = "planora.message.deleted"

	TopicMemberJoined  = "planora.member.joined"
	TopicMemberUpdated = "planora.member.updated"
	TopicMemberRemoved = "planora.member.removed"

	TopicRSVPUpdated = "planora.rsvp.updated"

	TopicMediaAdded   = "planora.media.added"
	TopicMediaDeleted = "planora.media.deleted"

	TopicBudgetChanged = "planora.budget.changed"

	TopicInvitationCreated = "planora.invitation.created"
	TopicInvitationRevoked = "planora.invitation.revoked"

	TopicNotificationSent = "planora.notification.sent"
)

// Topic builds planora.<resource>.<action>.
func Topic(resource, action string) string {
	return Prefix + "." + resource + "." + action
}

// Change is the payload published on every topic.
type Change struct {
	Topic    string          `json:"topic"`
	EventID  string          `json:"event_id,omitempty"`
	EntityID string          `json:"entity_id,omitempty"`
	ActorID  string          `json:"actor_id,omitempty"`
	At       time.Time       `json:"at"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// NewChange builds a Change for topic carrying data as its payload. A data
// value that cannot be marshaled is dropped.
func NewChange(topic, eventID, entityID string, data any) Change {
	c := Change{Topic: topic, EventID: eventID, EntityID: entityID, At: time.Now().UTC()}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			c.Data = raw
		}
	}
	return c
}

// Publisher is the interface for emitting changes.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
