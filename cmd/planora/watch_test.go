package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/events"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/presence"
)

func changeMessage(t *testing.T, c events.Change) events.Message {
	t.Helper()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	return events.Message{Subject: c.Topic, Data: data}
}

func TestFormatChange(t *testing.T) {
	msg := changeMessage(t, events.Change{
		Topic:    events.TopicTaskUpdated,
		EventID:  "e1",
		EntityID: "t1",
		ActorID:  "u1",
		At:       time.Date(2026, 6, 1, 9, 30, 0, 0, time.Local),
	})
	line, ok := formatChange(msg, "")
	if !ok {
		t.Fatal("formatChange filtered an unfiltered message")
	}
	for _, want := range []string{"09:30:00", "task.updated", "event=e1", "id=t1", "by=u1"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestFormatChange_FiltersOtherEvents(t *testing.T) {
	msg := changeMessage(t, events.Change{Topic: events.TopicPollVoted, EventID: "e2"})
	if _, ok := formatChange(msg, "e1"); ok {
		t.Error("message for e2 passed the e1 filter")
	}
	if _, ok := formatChange(msg, "e2"); !ok {
		t.Error("message for e2 filtered out")
	}
}

func TestFormatChange_NonJSONUsesSubject(t *testing.T) {
	line, ok := formatChange(events.Message{Subject: "planora.media.added", Data: []byte("not json")}, "")
	if !ok {
		t.Fatal("unexpected filter")
	}
	if line != "media.added" {
		t.Errorf("line = %q, want media.added", line)
	}
}

func TestFormatRoster(t *testing.T) {
	tr := presence.New()
	if got := formatRoster(tr, "e1"); got != "active: nobody" {
		t.Errorf("empty roster = %q", got)
	}
	now := time.Now()
	tr.Record(events.Change{EventID: "e1", ActorID: "u1", At: now})
	tr.Record(events.Change{EventID: "e1", ActorID: "u2", At: now.Add(time.Second)})
	tr.Record(events.Change{EventID: "e2", ActorID: "u3", At: now})

	if got := formatRoster(tr, "e1"); got != "active: u2, u1" {
		t.Errorf("e1 roster = %q", got)
	}
	if got := formatRoster(tr, ""); !strings.Contains(got, "e2/u3") || !strings.Contains(got, "e1/u2") {
		t.Errorf("all-events roster = %q", got)
	}
}
