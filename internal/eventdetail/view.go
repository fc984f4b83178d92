package eventdetail

import "net/url"

// Tab identifies a section of the event page.
type Tab string

const (
	TabUpdates       Tab = "updates"
	TabTasks         Tab = "tasks"
	TabPolls         Tab = "polls"
	TabRSVP          Tab = "rsvp"
	TabGallery       Tab = "gallery"
	TabDocuments     Tab = "documents"
	TabLinks         Tab = "links"
	TabBudget        Tab = "budget"
	TabParticipants  Tab = "participants"
	TabProfessionals Tab = "professionals"
)

// DefaultTab is shown when the requested tab is unknown or not permitted.
const DefaultTab = TabUpdates

// Tabs lists every tab in display order.
var Tabs = []Tab{TabUpdates, TabTasks, TabPolls, TabRSVP, TabGallery, TabDocuments, TabLinks, TabBudget, TabParticipants, TabProfessionals}

// Allowed reports whether perms may open the tab.
func (t Tab) Allowed(perms Permissions) bool {
	if t == TabBudget {
		return perms.CanManageBudget
	}
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// VisibleTabs returns the tabs perms may open.
func VisibleTabs(perms Permissions) []Tab {
	var out []Tab
	for _, t := range Tabs {
		if t.Allowed(perms) {
			out = append(out, t)
		}
	}
	return out
}

// ResolveTab picks the tab to show from the "tab" query parameter.
func ResolveTab(query url.Values, perms Permissions) Tab {
	if t := Tab(query.Get("tab")); t.Allowed(perms) {
		return t
	}
	return DefaultTab
}

// ViewMode is the page layout.
type ViewMode string

const (
	ViewTabs      ViewMode = "tabs"
	ViewSidebar   ViewMode = "sidebar"
	ViewCarousel  ViewMode = "carousel"
	ViewDashboard ViewMode = "dashboard"
)

// IsValid checks whether the mode is a known value.
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewTabs, ViewSidebar, ViewCarousel, ViewDashboard:
		return true
	}
	return false
}

// ResolveViewMode picks the layout: the "view" query parameter, then the
// persisted preference, then tabs.
func ResolveViewMode(query url.Values, persisted string) ViewMode {
	if m := ViewMode(query.Get("view")); m.IsValid() {
		return m
	}
	if m := ViewMode(persisted); m.IsValid() {
		return m
	}
	return ViewTabs
}

// ViewStore persists per-event view modes. *session.Store implements it.
type ViewStore interface {
	ViewMode(eventID string) string
	SetViewMode(eventID, mode string) error
}
