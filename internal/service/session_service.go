package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
	"gorm.io/gorm"
)

// Publisher pushes a full snapshot to live subscribers of a topic
type Publisher interface {
	Publish(topic string, payload interface{})
}

// Auto-promotion rules. A freshly created pending profile is promoted to
// 대장 when the login email matches the conductor account or the display
// name carries a leadership keyword. Promotion never fires on an account
// whose role was already assigned.
const autoAdminEmail = "conductor@donghae.or.kr"

var autoAdminNameKeywords = []string{"지휘자", "대장"}

// Identity is the authenticated principal before profile resolution
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Session is the fully resolved per-login state: profile, role and the
// capability set every gate downstream reads from. Capabilities are
// derived exactly once here.
type Session struct {
	UID          string              `json:"uid"`
	Name         string              `json:"name"`
	Email        string              `json:"email,omitempty"`
	Role         string              `json:"role"`
	Part         domain.Part         `json:"part,omitempty"`
	ImageURL     *string             `json:"image_url,omitempty"`
	Capabilities []domain.Capability `json:"capabilities"`
	PendingJoin  bool                `json:"pending_join"`
	Degraded     bool                `json:"degraded"`

	caps domain.CapabilitySet
}

// NewSession builds a session for a known profile with the capability
// set the role implies
func NewSession(uid, name, role string) *Session {
	caps := domain.CapabilitiesFor(role)
	return &Session{
		UID:          uid,
		Name:         name,
		Role:         role,
		Capabilities: capList(caps),
		caps:         caps,
	}
}

// Can reports whether the session holds cap
func (s *Session) Can(cap domain.Capability) bool {
	return s.caps.Has(cap)
}

// IsPending reports whether the session is still gated behind approval
func (s *Session) IsPending() bool {
	return s.Role == "" || s.Role == domain.RolePending
}

// SessionService resolves an authenticated identity into a Session
type SessionService struct {
	members        repository.MemberRepository
	requests       repository.JoinRequestRepository
	resolveTimeout time.Duration
}

// NewSessionService creates a SessionService
func NewSessionService(members repository.MemberRepository, requests repository.JoinRequestRepository, resolveTimeout time.Duration) *SessionService {
	if resolveTimeout <= 0 {
		resolveTimeout = 2 * time.Second
	}
	return &SessionService{
		members:        members,
		requests:       requests,
		resolveTimeout: resolveTimeout,
	}
}

// Resolve loads (or lazily creates) the member profile for id and derives
// the session's role and capability set. The profile fetch races a fixed
// deadline: when the lookup hangs or fails the session falls open to
// 대기권한, so a slow database never yields a spinner or an accidental
// admin. Resolve never returns an error.
func (s *SessionService) Resolve(ctx context.Context, id Identity) *Session {
	ctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	type result struct {
		member *domain.Member
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		m, err := s.fetchOrCreate(id)
		ch <- result{member: m, err: err}
	}()

	var member *domain.Member
	select {
	case res := <-ch:
		if res.err != nil {
			logger.Error("세션 프로필 조회 실패 uid=%s: %v", id.UID, res.err)
			return s.degradedSession(id)
		}
		member = res.member
	case <-ctx.Done():
		logger.Warn("세션 프로필 조회 시간 초과 uid=%s", id.UID)
		return s.degradedSession(id)
	}

	member = s.maybePromote(id, member)

	sess := NewSession(member.UID, member.Name, member.Role)
	sess.Email = member.Email
	sess.Part = member.Part
	sess.ImageURL = member.ImageURL

	if sess.IsPending() {
		sess.PendingJoin = s.hasPendingRequest(member.UID)
	}
	return sess
}

// fetchOrCreate loads the profile, creating a pending one on first login
func (s *SessionService) fetchOrCreate(id Identity) (*domain.Member, error) {
	member, err := s.members.FindByUID(id.UID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member = &domain.Member{
		UID:   id.UID,
		Name:  id.DisplayName,
		Email: id.Email,
		Role:  domain.RolePending,
	}
	if member.Name == "" {
		member.Name = id.Email
	}
	if err := s.members.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// maybePromote applies the auto-admin rule. Only a still-pending profile
// is eligible; a demotion by another admin is never overridden.
func (s *SessionService) maybePromote(id Identity, member *domain.Member) *domain.Member {
	if member.Role != "" && member.Role != domain.RolePending {
		return member
	}
	if !isAutoAdmin(id.Email, member.Name) {
		return member
	}
	if err := s.members.UpdateFields(member.UID, map[string]interface{}{"role": domain.RoleLeader}); err != nil {
		logger.Error("자동 관리자 승격 실패 uid=%s: %v", member.UID, err)
		return member
	}
	member.Role = domain.RoleLeader
	return member
}

func isAutoAdmin(email, name string) bool {
	if email != "" && email == autoAdminEmail {
		return true
	}
	for _, kw := range autoAdminNameKeywords {
		if name != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// hasPendingRequest probes for an open join request; lookup failures count
// as "no request" so the pending screen still renders.
func (s *SessionService) hasPendingRequest(uid string) bool {
	_, err := s.requests.FindPendingByUID(uid)
	if err == nil {
		return true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn("가입 신청 조회 실패 uid=%s: %v", uid, err)
	}
	return false
}

// degradedSession is the fail-open fallback: a pending, capability-less
// session tied to the identity alone.
func (s *SessionService) degradedSession(id Identity) *Session {
	name := id.DisplayName
	if name == "" {
		name = id.Email
	}
	caps := domain.CapabilitiesFor(domain.RolePending)
	return &Session{
		UID:          id.UID,
		Name:         name,
		Email:        id.Email,
		Role:         domain.RolePending,
		Capabilities: capList(caps),
		Degraded:     true,
		caps:         caps,
	}
}

func capList(set domain.CapabilitySet) []domain.Capability {
	caps := make([]domain.Capability, 0, len(set))
	for _, c := range []domain.Capability{
		domain.CapManageMembers, domain.CapManageAttendance, domain.CapManageBoards,
		domain.CapManageHymns, domain.CapManageOpeningHymns, domain.CapManageSchedule,
		domain.CapManageSettings,
	} {
		if set.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}
