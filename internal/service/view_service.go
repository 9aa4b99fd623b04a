package service

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
)

// Screen is the top-level view the client must render. The switch is
// gated on role alone: until the session resolves nothing else renders,
// a pending member only ever sees the join flow, and the main shell is
// unreachable without an assigned role.
type Screen string

const (
	ScreenLoading        Screen = "loading"
	ScreenLoggedOut      Screen = "logged_out"
	ScreenJoinForm       Screen = "join_form"
	ScreenPendingWaiting Screen = "pending_waiting"
	ScreenMain           Screen = "main"
)

// Tab is one nav entry of the main shell
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ViewState is the full client routing decision for one session
type ViewState struct {
	Screen    Screen `json:"screen"`
	ActiveTab string `json:"active_tab,omitempty"`
	Tabs      []Tab  `json:"tabs,omitempty"`
}

// ResolveView computes the screen, the visible tab set and the effective
// active tab for a resolved session. sess may be nil (not logged in) and
// resolving reports a session still being fetched.
func ResolveView(sess *Session, resolving bool, activeTab string, menu []domain.MenuItem, categories []*domain.BoardCategory) ViewState {
	if resolving {
		return ViewState{Screen: ScreenLoading}
	}
	if sess == nil {
		return ViewState{Screen: ScreenLoggedOut}
	}
	if sess.IsPending() {
		if sess.PendingJoin {
			return ViewState{Screen: ScreenPendingWaiting}
		}
		return ViewState{Screen: ScreenJoinForm}
	}

	tabs := VisibleTabs(sess, menu, categories)
	return ViewState{
		Screen:    ScreenMain,
		ActiveTab: effectiveTab(activeTab, tabs),
		Tabs:      tabs,
	}
}

// VisibleTabs filters the nav for one session: menu_config hides fixed
// tabs (dashboard always stays), each live board category appends a
// dynamic tab, and the restricted 시작찬송 관리자 role collapses the nav
// to the dashboard and the two hymn tabs.
func VisibleTabs(sess *Session, menu []domain.MenuItem, categories []*domain.BoardCategory) []Tab {
	if len(menu) == 0 {
		menu = domain.DefaultMenuConfig()
	}

	restricted := restrictedTabs(sess.Role)

	var tabs []Tab
	for _, item := range menu {
		if item.ID != domain.TabDashboard && !item.Visible {
			continue
		}
		if restricted != nil && !restricted[item.ID] {
			continue
		}
		tabs = append(tabs, Tab{ID: item.ID, Label: item.Label})
	}
	if restricted != nil {
		return tabs
	}
	for _, cat := range categories {
		tabs = append(tabs, Tab{ID: "board_" + cat.ID, Label: cat.Name})
	}
	return tabs
}

// restrictedTabs returns the allow-list for roles that only see part of
// the nav, or nil when the role sees everything.
func restrictedTabs(role string) map[string]bool {
	if role == domain.RoleOpeningHymns {
		return map[string]bool{
			domain.TabDashboard:    true,
			domain.TabOpeningHymns: true,
			domain.TabHymns:        true,
		}
	}
	return nil
}

// effectiveTab keeps the requested tab when it is still visible and falls
// back to the dashboard otherwise (a deleted board tab must not strand
// the client on a dead view).
func effectiveTab(requested string, tabs []Tab) string {
	for _, t := range tabs {
		if t.ID == requested {
			return requested
		}
	}
	return domain.TabDashboard
}
