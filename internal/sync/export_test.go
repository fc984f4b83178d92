package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// mockSource serves canned event details.
type mockSource struct {
	details map[string]*model.EventFullDetails
	calls   []string
}

func (m *mockSource) GetEventFullDetails(_ context.Context, id string) (*model.EventFullDetails, error) {
	m.calls = append(m.calls, id)
	d, ok := m.details[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func newMockSource() *mockSource {
	return &mockSource{details: map[string]*model.EventFullDetails{
		"ev-b": {
			Event:   &model.Event{ID: "ev-b", Title: "Birthday"},
			Members: []*model.EventMember{{ID: "m-2", EventID: "ev-b", UserID: "u1", Role: model.RoleOwner}},
			Tasks: []*model.Task{
				{ID: "t-9", EventID: "ev-b", Title: "Balloons", Status: model.TaskTodo},
				{ID: "t-1", EventID: "ev-b", Title: "Cake", Status: model.TaskDone},
			},
		},
		"ev-a": {
			Event:    &model.Event{ID: "ev-a", Title: "Anniversary"},
			Members:  []*model.EventMember{{ID: "m-1", EventID: "ev-a", UserID: "u1", Role: model.RoleOwner}},
			Tasks:    []*model.Task{{ID: "t-5", EventID: "ev-a", Title: "Venue", Status: model.TaskTodo}},
			Budget:   []*model.BudgetItem{{ID: "b-1", EventID: "ev-a", Title: "Venue", Planned: 100}},
			Messages: []*model.Message{{ID: "msg-1", EventID: "ev-a", SenderID: "u1", Content: "hi"}},
		},
	}}
}

func TestExportJSONL_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), newMockSource(), nil, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.EventCount != 0 || h.RecordCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestExportJSONL_GroupsAndSorts(t *testing.T) {
	src := newMockSource()
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), src, []string{"ev-b", "ev-a"}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 events + 2 members + 3 tasks + 1 budget + 1 message
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.EventCount != 2 || h.RecordCount != 9 {
		t.Fatalf("header counts: events=%d records=%d", h.EventCount, h.RecordCount)
	}

	type line struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	var got []string
	for _, l := range lines[1:] {
		var rec line
		if err := json.Unmarshal([]byte(l), &rec); err != nil {
			t.Fatalf("unmarshal %q: %v", l, err)
		}
		got = append(got, rec.Type+":"+rec.Data.ID)
	}
	want := []string{
		"event:ev-a", "event:ev-b",
		"member:m-1", "member:m-2",
		"task:t-1", "task:t-5", "task:t-9",
		"budget:b-1",
		"message:msg-1",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("records:\n got %v\nwant %v", got, want)
	}
}

func TestExportJSONL_SourceError(t *testing.T) {
	var buf bytes.Buffer
	err := ExportJSONL(context.Background(), newMockSource(), []string{"ev-a", "ev-missing"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "ev-missing") {
		t.Fatalf("expected error naming the event, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written on error, got %q", buf.String())
	}
}

func nonEmptyLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}
