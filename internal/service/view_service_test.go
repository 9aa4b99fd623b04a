package service

import (
	"testing"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func activeSession(role string) *Session {
	return &Session{
		UID:  "uid-1",
		Name: "테스터",
		Role: role,
		caps: domain.CapabilitiesFor(role),
	}
}

func TestResolveView_Screens(t *testing.T) {
	assert.Equal(t, ScreenLoading, ResolveView(nil, true, "", nil, nil).Screen)
	assert.Equal(t, ScreenLoggedOut, ResolveView(nil, false, "", nil, nil).Screen)

	pending := activeSession(domain.RolePending)
	assert.Equal(t, ScreenJoinForm, ResolveView(pending, false, "", nil, nil).Screen)

	pending.PendingJoin = true
	assert.Equal(t, ScreenPendingWaiting, ResolveView(pending, false, "", nil, nil).Screen)

	// 승인 전에는 어떤 역할 정보도 메인 화면을 열지 못한다
	empty := activeSession("")
	assert.Equal(t, ScreenJoinForm, ResolveView(empty, false, "", nil, nil).Screen)

	member := activeSession(domain.RoleRegular)
	assert.Equal(t, ScreenMain, ResolveView(member, false, "", nil, nil).Screen)
}

func TestVisibleTabs_DefaultRole(t *testing.T) {
	cats := []*domain.BoardCategory{
		{ID: "c1", Name: "자유게시판"},
		{ID: "c2", Name: "악보나눔"},
	}

	tabs := VisibleTabs(activeSession(domain.RoleRegular), nil, cats)

	ids := tabIDs(tabs)
	assert.Contains(t, ids, domain.TabDashboard)
	assert.Contains(t, ids, domain.TabAttendance)
	assert.Contains(t, ids, "board_c1")
	assert.Contains(t, ids, "board_c2")
	// 게시판 탭은 고정 탭 뒤에 붙는다
	assert.Equal(t, "board_c1", ids[len(ids)-2])
}

func TestVisibleTabs_MenuConfigHidesTab(t *testing.T) {
	menu := domain.DefaultMenuConfig()
	for i := range menu {
		if menu[i].ID == domain.TabMembers {
			menu[i].Visible = false
		}
	}

	tabs := VisibleTabs(activeSession(domain.RoleRegular), menu, nil)

	ids := tabIDs(tabs)
	assert.NotContains(t, ids, domain.TabMembers)
	assert.Contains(t, ids, domain.TabDashboard)
}

func TestVisibleTabs_DashboardCannotBeHidden(t *testing.T) {
	menu := domain.DefaultMenuConfig()
	for i := range menu {
		menu[i].Visible = false
	}

	tabs := VisibleTabs(activeSession(domain.RoleRegular), menu, nil)

	assert.Equal(t, []string{domain.TabDashboard}, tabIDs(tabs))
}

func TestVisibleTabs_RestrictedRole(t *testing.T) {
	cats := []*domain.BoardCategory{{ID: "c1", Name: "자유게시판"}}

	tabs := VisibleTabs(activeSession(domain.RoleOpeningHymns), nil, cats)

	ids := tabIDs(tabs)
	assert.Contains(t, ids, domain.TabDashboard)
	assert.Contains(t, ids, domain.TabOpeningHymns)
	assert.Contains(t, ids, domain.TabHymns)
	assert.NotContains(t, ids, domain.TabMembers)
	assert.NotContains(t, ids, domain.TabAttendance)
	assert.NotContains(t, ids, "board_c1")
}

func TestResolveView_StaleBoardTabFallsBackToDashboard(t *testing.T) {
	cats := []*domain.BoardCategory{{ID: "c1", Name: "자유게시판"}}

	// 삭제된 게시판 탭을 보고 있던 클라이언트는 대시보드로
	view := ResolveView(activeSession(domain.RoleRegular), false, "board_deleted", nil, cats)
	assert.Equal(t, domain.TabDashboard, view.ActiveTab)

	// 살아있는 게시판 탭은 유지
	view = ResolveView(activeSession(domain.RoleRegular), false, "board_c1", nil, cats)
	assert.Equal(t, "board_c1", view.ActiveTab)
}

func tabIDs(tabs []Tab) []string {
	ids := make([]string, 0, len(tabs))
	for _, t := range tabs {
		ids = append(ids, t.ID)
	}
	return ids
}
