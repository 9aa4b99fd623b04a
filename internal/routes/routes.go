package routes

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/handler"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/donghaechoir/choir-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	sessionHandler *handler.SessionHandler,
	memberHandler *handler.MemberHandler,
	joinHandler *handler.JoinHandler,
	attendanceHandler *handler.AttendanceHandler,
	settingsHandler *handler.SettingsHandler,
	boardHandler *handler.BoardHandler,
	uploadHandler *handler.UploadHandler,
	dashboardHandler *handler.DashboardHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
	sessions *service.SessionService,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.GoogleLogin)
	auth.POST("/easy-join", authHandler.EasyJoin)
	auth.POST("/anonymous", authHandler.AnonymousLogin)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	// 로그인만 하면 접근 가능 (대기권한 포함). 세션 조회와 가입 신청.
	authed := api.Group("", middleware.JWTAuth(jwtManager), middleware.ResolveSession(sessions))
	authed.GET("/auth/me", sessionHandler.Me)
	authed.GET("/session", sessionHandler.Get)
	authed.GET("/session/tabs", sessionHandler.Tabs)
	authed.POST("/join/requests", joinHandler.Submit)

	// 승인된 대원만 (대기권한 차단)
	active := authed.Group("", middleware.RequireActive())
	active.GET("/dashboard", dashboardHandler.Get)
	active.GET("/members", memberHandler.List)
	active.GET("/members/:uid", memberHandler.Get)
	active.GET("/attendance", attendanceHandler.Grid)
	active.GET("/attendance/summary", attendanceHandler.Summary)
	active.PATCH("/profile", memberHandler.UpdateSelf)
	active.POST("/upload", uploadHandler.Upload)

	// Settings reads are open to every approved member
	settings := active.Group("/settings")
	settings.GET("/hymns", settingsHandler.Hymns)
	settings.GET("/opening-hymns", settingsHandler.OpeningHymns)
	settings.GET("/schedules", settingsHandler.Schedules)
	settings.GET("/menu", settingsHandler.MenuConfig)
	settings.GET("/roles", settingsHandler.RoleCatalog)
	settings.GET("/advertisement", settingsHandler.Advertisement)

	// Boards: reads and authoring open to approved members
	active.GET("/boards", boardHandler.ListCategories)
	active.GET("/boards/:id/posts", boardHandler.ListPosts)
	active.POST("/boards/:id/posts", boardHandler.CreatePost)
	active.DELETE("/posts/:id", boardHandler.DeletePost)
	active.POST("/posts/:id/comments", boardHandler.AddComment)
	active.POST("/posts/:id/comments/delete", boardHandler.DeleteCommentByValue)
	active.DELETE("/comments/:id", boardHandler.DeleteComment)

	// 인원 관리 (대장/지휘자)
	manageMembers := active.Group("", middleware.RequireCapability(domain.CapManageMembers))
	manageMembers.PATCH("/members/:uid", memberHandler.Update)
	manageMembers.DELETE("/members/:uid", memberHandler.Delete)
	manageMembers.POST("/members/invite", memberHandler.Invite)
	manageMembers.GET("/join/requests", joinHandler.ListPending)
	manageMembers.POST("/join/requests/:id/approve", joinHandler.Approve)
	manageMembers.DELETE("/join/requests/:id", joinHandler.Reject)

	// 출석 관리 (대장/지휘자/총무/서기)
	manageAttendance := active.Group("", middleware.RequireCapability(domain.CapManageAttendance))
	manageAttendance.POST("/attendance/toggle", attendanceHandler.Toggle)
	manageAttendance.PUT("/attendance/cell", attendanceHandler.SetCell)

	// 게시판 관리
	manageBoards := active.Group("", middleware.RequireCapability(domain.CapManageBoards))
	manageBoards.POST("/boards", boardHandler.CreateCategory)
	manageBoards.PATCH("/boards/:id", boardHandler.UpdateCategory)
	manageBoards.POST("/boards/:id/move", boardHandler.MoveCategory)
	manageBoards.DELETE("/boards/:id", boardHandler.DeleteCategory)

	// 찬송가/시작찬송/스케줄/설정 관리
	manageHymns := active.Group("", middleware.RequireCapability(domain.CapManageHymns))
	manageHymns.PUT("/settings/hymns", settingsHandler.ReplaceHymns)
	manageHymns.PUT("/settings/hymns/:month", settingsHandler.ReplaceHymnMonth)

	manageOpening := active.Group("", middleware.RequireCapability(domain.CapManageOpeningHymns))
	manageOpening.POST("/settings/opening-hymns", settingsHandler.AddOpeningHymn)
	manageOpening.PUT("/settings/opening-hymns/:id", settingsHandler.UpdateOpeningHymn)
	manageOpening.DELETE("/settings/opening-hymns/:id", settingsHandler.DeleteOpeningHymn)

	manageSchedule := active.Group("", middleware.RequireCapability(domain.CapManageSchedule))
	manageSchedule.PUT("/settings/schedules", settingsHandler.ReplaceSchedules)

	manageSettings := active.Group("", middleware.RequireCapability(domain.CapManageSettings))
	manageSettings.PUT("/settings/menu", settingsHandler.ReplaceMenuConfig)
	manageSettings.PUT("/settings/roles", settingsHandler.ReplaceRoleCatalog)
	manageSettings.PUT("/settings/advertisement", settingsHandler.ReplaceAdvertisement)

	// 실시간 미러 (익명은 설정 토픽만 구독 가능)
	router.GET("/ws", middleware.OptionalJWTAuth(jwtManager), wsHandler.Connect)
}
