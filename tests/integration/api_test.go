package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/donghaechoir/choir-backend/internal/config"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/handler"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/migration"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/internal/routes"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/donghaechoir/choir-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APISuite drives the whole HTTP surface against an in-memory database
type APISuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	jwtManager *jwt.Manager
	hub        *live.Hub
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// SQLite for tests (no external DB dependency)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db
	s.Require().NoError(migration.Run(db))

	s.jwtManager = jwt.NewManager("test-secret-key-for-integration-tests", 30*time.Minute, 7*24*time.Hour)

	s.hub = live.NewHub(nil)
	go s.hub.Run()

	memberRepo := repository.NewMemberRepository(db)
	joinRepo := repository.NewJoinRequestRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	sessionSvc := service.NewSessionService(memberRepo, joinRepo, 2*time.Second)
	authSvc := service.NewAuthService(memberRepo, sessionSvc, s.jwtManager, config.OAuthConfig{})
	memberSvc := service.NewMemberService(memberRepo, s.hub)
	joinSvc := service.NewJoinService(joinRepo, memberRepo, s.hub)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, s.hub)
	settingsSvc := service.NewSettingsService(settingsRepo, s.hub)
	boardSvc := service.NewBoardService(boardRepo, s.hub)
	uploadSvc := service.NewUploadService(nil, nil)

	s.router = gin.New()
	routes.Setup(
		s.router,
		handler.NewAuthHandler(authSvc),
		handler.NewSessionHandler(settingsSvc, boardSvc),
		handler.NewMemberHandler(memberSvc, "http://choir.test"),
		handler.NewJoinHandler(joinSvc),
		handler.NewAttendanceHandler(attendanceSvc),
		handler.NewSettingsHandler(settingsSvc),
		handler.NewBoardHandler(boardSvc),
		handler.NewUploadHandler(uploadSvc),
		handler.NewDashboardHandler(memberSvc, settingsSvc, boardSvc, joinSvc, attendanceSvc),
		handler.NewWSHandler(s.hub, memberSvc, joinSvc, attendanceSvc, settingsSvc, boardSvc, ""),
		s.jwtManager,
		sessionSvc,
	)

	s.seedMembers()
}

func (s *APISuite) TearDownSuite() {
	s.hub.Stop()
}

func (s *APISuite) seedMembers() {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	for _, m := range []*domain.Member{
		{UID: "email:leader", Name: "박대장", Email: "leader@donghae.test", Part: domain.PartBass, Role: domain.RoleLeader, Password: string(hashed)},
		{UID: "email:tenor", Name: "김테너", Email: "tenor@donghae.test", Part: domain.PartTenor, Role: domain.RoleRegular, Password: string(hashed)},
		{UID: "email:alto", Name: "이알토", Email: "alto@donghae.test", Part: domain.PartAlto, Role: domain.RoleRegular, Password: string(hashed)},
		{UID: "email:waiting", Name: "최신입", Email: "waiting@donghae.test", Role: domain.RolePending, Password: string(hashed)},
	} {
		s.Require().NoError(s.db.Create(m).Error)
	}
}

// --- helpers ---

func (s *APISuite) token(uid, name, role string) string {
	token, err := s.jwtManager.GenerateAccessToken(uid, name, role)
	s.Require().NoError(err)
	return token
}

func (s *APISuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func (s *APISuite) dataList(w *httptest.ResponseRecorder) []interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	list, _ := resp["data"].([]interface{})
	return list
}

// --- auth ---

func (s *APISuite) TestLogin_Success() {
	w := s.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "leader@donghae.test",
		"password": "password123",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	data := s.data(w)
	assert.NotEmpty(s.T(), data["access_token"])
	sess := data["session"].(map[string]interface{})
	assert.Equal(s.T(), domain.RoleLeader, sess["role"])
}

func (s *APISuite) TestLogin_WrongPassword() {
	w := s.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "leader@donghae.test",
		"password": "wrong-password",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestAnonymousLogin_IsPending() {
	w := s.request(http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	token := s.data(w)["access_token"].(string)

	// 익명 계정은 대기권한이라 본대 화면 접근 불가
	denied := s.request(http.MethodGet, "/api/v1/members", token, nil)
	assert.Equal(s.T(), http.StatusForbidden, denied.Code)
}

// --- session & view ---

func (s *APISuite) TestSession_PendingSeesJoinForm() {
	token := s.token("email:waiting", "최신입", domain.RolePending)
	w := s.request(http.MethodGet, "/api/v1/session", token, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	data := s.data(w)
	view := data["view"].(map[string]interface{})
	assert.Equal(s.T(), "join_form", view["screen"])
}

func (s *APISuite) TestSession_ActiveSeesMainShell() {
	token := s.token("email:tenor", "김테너", domain.RoleRegular)
	w := s.request(http.MethodGet, "/api/v1/session?active_tab=attendance", token, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	view := s.data(w)["view"].(map[string]interface{})
	assert.Equal(s.T(), "main", view["screen"])
	assert.Equal(s.T(), "attendance", view["active_tab"])
}

// --- join flow ---

func (s *APISuite) TestJoinFlow_SubmitApprove() {
	// 신규 가입
	w := s.request(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    "newbie@donghae.test",
		"password": "password123",
		"name":     "정신입",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	token := s.data(w)["access_token"].(string)

	// 가입 신청
	w = s.request(http.MethodPost, "/api/v1/join/requests", token, map[string]interface{}{
		"name": "정신입",
		"part": "Soprano",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	requestID := s.data(w)["id"].(string)

	// 아직 대기 상태
	denied := s.request(http.MethodGet, "/api/v1/members", token, nil)
	assert.Equal(s.T(), http.StatusForbidden, denied.Code)

	// 대장이 승인
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)
	w = s.request(http.MethodPost, "/api/v1/join/requests/"+requestID+"/approve", leaderToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	// 토큰의 role 클레임은 그대로지만 세션은 다시 해석되므로 통과한다
	allowed := s.request(http.MethodGet, "/api/v1/members", token, nil)
	assert.Equal(s.T(), http.StatusOK, allowed.Code)

	sessW := s.request(http.MethodGet, "/api/v1/session", token, nil)
	sess := s.data(sessW)["session"].(map[string]interface{})
	assert.Equal(s.T(), domain.RoleRegular, sess["role"])
	assert.Equal(s.T(), "Soprano", sess["part"])
}

func (s *APISuite) TestJoinFlow_PendingCannotApprove() {
	token := s.token("email:waiting", "최신입", domain.RolePending)
	w := s.request(http.MethodGet, "/api/v1/join/requests", token, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *APISuite) TestJoinFlow_RegularCannotApprove() {
	token := s.token("email:tenor", "김테너", domain.RoleRegular)
	w := s.request(http.MethodGet, "/api/v1/join/requests", token, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

// --- boards ---

func (s *APISuite) TestBoards_CategoryLifecycle() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)

	w := s.request(http.MethodPost, "/api/v1/boards", leaderToken, map[string]string{"name": "자유게시판"})
	s.Require().Equal(http.StatusCreated, w.Code)
	firstID := s.data(w)["id"].(string)

	w = s.request(http.MethodPost, "/api/v1/boards", leaderToken, map[string]string{"name": "악보나눔"})
	s.Require().Equal(http.StatusCreated, w.Code)
	secondID := s.data(w)["id"].(string)

	// 두 번째 게시판을 위로
	w = s.request(http.MethodPost, "/api/v1/boards/"+secondID+"/move", leaderToken, map[string]string{"direction": "up"})
	s.Require().Equal(http.StatusOK, w.Code)

	list := s.request(http.MethodGet, "/api/v1/boards", leaderToken, nil)
	cats := s.dataList(list)
	s.Require().GreaterOrEqual(len(cats), 2)
	first := cats[0].(map[string]interface{})
	second := cats[1].(map[string]interface{})
	assert.Equal(s.T(), secondID, first["id"])
	assert.Equal(s.T(), firstID, second["id"])

	// 일반대원은 게시판을 만들 수 없다
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)
	denied := s.request(http.MethodPost, "/api/v1/boards", tenorToken, map[string]string{"name": "몰래게시판"})
	assert.Equal(s.T(), http.StatusForbidden, denied.Code)

	s.Require().Equal(http.StatusOK, s.request(http.MethodDelete, "/api/v1/boards/"+firstID, leaderToken, nil).Code)
	s.Require().Equal(http.StatusOK, s.request(http.MethodDelete, "/api/v1/boards/"+secondID, leaderToken, nil).Code)
}

func (s *APISuite) TestBoards_PostAuthorOnlyDelete() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)
	altoToken := s.token("email:alto", "이알토", domain.RoleRegular)

	w := s.request(http.MethodPost, "/api/v1/boards", leaderToken, map[string]string{"name": "연습게시판"})
	s.Require().Equal(http.StatusCreated, w.Code)
	boardID := s.data(w)["id"].(string)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/boards/%s/posts", boardID), tenorToken, map[string]string{
		"content": "이번 주 연습 공지입니다",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	postID := s.data(w)["id"].(string)

	// 작성자가 아닌 일반대원은 삭제 불가
	denied := s.request(http.MethodDelete, "/api/v1/posts/"+postID, altoToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, denied.Code)

	// 작성자 본인은 삭제 가능
	allowed := s.request(http.MethodDelete, "/api/v1/posts/"+postID, tenorToken, nil)
	assert.Equal(s.T(), http.StatusOK, allowed.Code)

	s.request(http.MethodDelete, "/api/v1/boards/"+boardID, leaderToken, nil)
}

func (s *APISuite) TestBoards_CommentDeleteByValue() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)

	w := s.request(http.MethodPost, "/api/v1/boards", leaderToken, map[string]string{"name": "댓글게시판"})
	s.Require().Equal(http.StatusCreated, w.Code)
	boardID := s.data(w)["id"].(string)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/boards/%s/posts", boardID), tenorToken, map[string]string{
		"content": "은혜로운 찬양이었습니다",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	postID := s.data(w)["id"].(string)

	// 같은 내용 댓글 두 개
	for i := 0; i < 2; i++ {
		cw := s.request(http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/comments", postID), tenorToken, map[string]string{
			"content": "아멘",
		})
		s.Require().Equal(http.StatusCreated, cw.Code)
	}

	// 내용 일치 삭제는 전부 한꺼번에 지운다
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/comments/delete", postID), tenorToken, map[string]string{
		"content": "아멘",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), float64(2), s.data(w)["removed"])

	// 더 지울 게 없으면 404
	w = s.request(http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/comments/delete", postID), tenorToken, map[string]string{
		"content": "아멘",
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	s.request(http.MethodDelete, "/api/v1/boards/"+boardID, leaderToken, nil)
}

// --- attendance ---

func (s *APISuite) TestAttendance_ToggleCycle() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)

	body := map[string]string{"member_uid": "email:tenor", "date": "2026-03-04"}

	// 미체크 → 출석
	w := s.request(http.MethodPost, "/api/v1/attendance/toggle", leaderToken, body)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(s.T(), "present", s.data(w)["status"])

	grid := s.request(http.MethodGet, "/api/v1/attendance?year=2026&month=3", leaderToken, nil)
	s.Require().Equal(http.StatusOK, grid.Code)
	records := s.data(grid)["records"].(map[string]interface{})
	row := records["email:tenor"].(map[string]interface{})
	assert.Equal(s.T(), "present", row["2026-03-04"])

	// 출석 → 결석 → 미체크 (행이 지워진다)
	w = s.request(http.MethodPost, "/api/v1/attendance/toggle", leaderToken, body)
	assert.Equal(s.T(), "absent", s.data(w)["status"])
	w = s.request(http.MethodPost, "/api/v1/attendance/toggle", leaderToken, body)
	assert.Equal(s.T(), "none", s.data(w)["status"])

	grid = s.request(http.MethodGet, "/api/v1/attendance?year=2026&month=3", leaderToken, nil)
	records = s.data(grid)["records"].(map[string]interface{})
	_, exists := records["email:tenor"]
	assert.False(s.T(), exists)
}

func (s *APISuite) TestAttendance_RegularCannotToggle() {
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)
	w := s.request(http.MethodPost, "/api/v1/attendance/toggle", tenorToken, map[string]string{
		"member_uid": "email:tenor", "date": "2026-03-04",
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

// --- settings ---

func (s *APISuite) TestSettings_HymnMonthSplice() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)

	before := s.request(http.MethodGet, "/api/v1/settings/hymns", leaderToken, nil)
	s.Require().Equal(http.StatusOK, before.Code)
	total := len(s.dataList(before))
	s.Require().Greater(total, 4)

	// 4월만 한 곡으로 교체
	w := s.request(http.MethodPut, "/api/v1/settings/hymns/4", leaderToken, []map[string]interface{}{
		{"week": 1, "title": "저 높은 곳을 향하여", "composer": "S.J. Vail"},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	after := s.request(http.MethodGet, "/api/v1/settings/hymns", leaderToken, nil)
	hymns := s.dataList(after)
	assert.Len(s.T(), hymns, total-3)

	aprilCount := 0
	for _, h := range hymns {
		if h.(map[string]interface{})["month"] == float64(4) {
			aprilCount++
		}
	}
	assert.Equal(s.T(), 1, aprilCount)
}

func (s *APISuite) TestSettings_RegularCannotReplace() {
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)
	w := s.request(http.MethodPut, "/api/v1/settings/schedules", tenorToken, []map[string]string{})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *APISuite) TestSettings_RoleCatalogFiltered() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)

	w := s.request(http.MethodPut, "/api/v1/settings/roles", leaderToken, []string{"대장", " 지휘자 ", "", domain.RolePending})
	s.Require().Equal(http.StatusOK, w.Code)

	list := s.request(http.MethodGet, "/api/v1/settings/roles", leaderToken, nil)
	roles := s.dataList(list)
	assert.Len(s.T(), roles, 2)
	assert.Equal(s.T(), "대장", roles[0])
	assert.Equal(s.T(), "지휘자", roles[1])
}

// --- dashboard ---

func (s *APISuite) TestDashboard_Aggregates() {
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)
	w := s.request(http.MethodGet, "/api/v1/dashboard", tenorToken, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	data := s.data(w)
	assert.Contains(s.T(), data, "part_counts")
	assert.Contains(s.T(), data, "month_hymns")
	assert.Contains(s.T(), data, "recent_posts")
	assert.Contains(s.T(), data, "week_attendance_rate")
}

func (s *APISuite) TestProfile_SelfEdit() {
	tenorToken := s.token("email:tenor", "김테너", domain.RoleRegular)

	w := s.request(http.MethodPatch, "/api/v1/profile", tenorToken, map[string]interface{}{
		"name": "김테너2",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/v1/members/email:tenor", tenorToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(s.T(), "김테너2", s.data(w)["name"])

	// 다른 대원을 고치는 경로는 권한이 필요하다
	w = s.request(http.MethodPatch, "/api/v1/members/email:alto", tenorToken, map[string]interface{}{
		"name": "해킹",
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodPatch, "/api/v1/profile", tenorToken, map[string]interface{}{
		"name": "김테너",
	})
	s.Require().Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestMembers_InviteLink() {
	leaderToken := s.token("email:leader", "박대장", domain.RoleLeader)
	w := s.request(http.MethodPost, "/api/v1/members/invite", leaderToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(s.T(), "http://choir.test?invite=true", s.data(w)["url"])
}
