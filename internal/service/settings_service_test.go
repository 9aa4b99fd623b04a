package service

import (
	"testing"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func stubHymns(repo *MockSettingsRepository, hymns []domain.Hymn) {
	repo.On("Get", domain.DocHymns, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*[]domain.Hymn)
		*out = append([]domain.Hymn(nil), hymns...)
	}).Return(nil)
}

func TestHymns_SortedByMonthThenWeek(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	stubHymns(repo, []domain.Hymn{
		{Month: 3, Week: 2, Title: "주 하나님 지으신 모든 세계"},
		{Month: 1, Week: 1, Title: "거룩 거룩 거룩"},
		{Month: 3, Week: 1, Title: "내 영혼의 그윽히 깊은 데서"},
	})

	hymns, err := svc.Hymns()

	assert.NoError(t, err)
	assert.Equal(t, "거룩 거룩 거룩", hymns[0].Title)
	assert.Equal(t, "내 영혼의 그윽히 깊은 데서", hymns[1].Title)
	assert.Equal(t, "주 하나님 지으신 모든 세계", hymns[2].Title)
}

func TestReplaceHymns_RejectsBadMonth(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	err := svc.ReplaceHymns([]domain.Hymn{{Month: 13, Week: 1}})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestReplaceHymnMonth_SplicesOneMonth(t *testing.T) {
	repo := new(MockSettingsRepository)
	pub := &publishRecorder{}
	svc := NewSettingsService(repo, pub)

	stubHymns(repo, []domain.Hymn{
		{Month: 2, Week: 1, Title: "2월 1주"},
		{Month: 3, Week: 1, Title: "옛 3월 1주"},
		{Month: 3, Week: 2, Title: "옛 3월 2주"},
		{Month: 4, Week: 1, Title: "4월 1주"},
	})
	repo.On("Replace", domain.DocHymns, mock.MatchedBy(func(v interface{}) bool {
		hymns := v.([]domain.Hymn)
		if len(hymns) != 3 {
			return false
		}
		// 다른 달은 그대로, 3월만 교체
		return hymns[0].Title == "2월 1주" &&
			hymns[1].Title == "새 3월 1주" && hymns[1].Month == 3 &&
			hymns[2].Title == "4월 1주"
	})).Return(nil)

	err := svc.ReplaceHymnMonth(3, []domain.Hymn{{Week: 1, Title: "새 3월 1주"}})

	assert.NoError(t, err)
	assert.True(t, pub.published(live.TopicSettings(domain.DocHymns)))
	repo.AssertExpectations(t)
}

func TestAddOpeningHymn_AssignsID(t *testing.T) {
	repo := new(MockSettingsRepository)
	pub := &publishRecorder{}
	svc := NewSettingsService(repo, pub)

	repo.On("Get", domain.DocOpeningHymns, mock.Anything).Return(nil)
	repo.On("Replace", domain.DocOpeningHymns, mock.Anything).Return(nil)

	entry, err := svc.AddOpeningHymn(domain.OpeningHymn{
		Month: 5, Date: "2026-05-03", Type: domain.OpeningSunday, Leader: "김소프라노", Title: "나 같은 죄인 살리신",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.True(t, pub.published(live.TopicSettings(domain.DocOpeningHymns)))
}

func TestAddOpeningHymn_RejectsBadType(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	_, err := svc.AddOpeningHymn(domain.OpeningHymn{Month: 5, Type: "Friday"})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestUpdateOpeningHymn_UnknownID(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	repo.On("Get", domain.DocOpeningHymns, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*[]domain.OpeningHymn)
		*out = []domain.OpeningHymn{{ID: "oh-1", Month: 5, Type: domain.OpeningSunday}}
	}).Return(nil)

	err := svc.UpdateOpeningHymn(domain.OpeningHymn{ID: "oh-missing", Month: 5, Type: domain.OpeningSunday})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestReplaceMenuConfig_DashboardStaysVisible(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	repo.On("Replace", domain.DocMenuConfig, mock.MatchedBy(func(v interface{}) bool {
		items := v.([]domain.MenuItem)
		for _, item := range items {
			if item.ID == domain.TabDashboard {
				return item.Visible
			}
		}
		return false
	})).Return(nil)

	err := svc.ReplaceMenuConfig([]domain.MenuItem{
		{ID: domain.TabDashboard, Label: "대시보드", Visible: false},
		{ID: domain.TabMembers, Label: "단원", Visible: true},
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReplaceRoleCatalog_FiltersBlankAndPending(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	repo.On("Replace", domain.DocRoles, []string{"대장", "총무"}).Return(nil)

	err := svc.ReplaceRoleCatalog([]string{" 대장 ", "", domain.RolePending, "총무"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSnapshot_UnknownDocument(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := NewSettingsService(repo, &publishRecorder{})

	_, err := svc.Snapshot("no_such_doc")

	assert.Error(t, err)
}
