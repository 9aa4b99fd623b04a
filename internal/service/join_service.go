package service

import (
	"errors"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JoinService runs the approval flow that moves a 대기권한 account into
// the roster: submit → admin approve (or reject, which deletes the
// request outright).
type JoinService struct {
	requests  repository.JoinRequestRepository
	members   repository.MemberRepository
	publisher Publisher
}

// NewJoinService creates a JoinService
func NewJoinService(requests repository.JoinRequestRepository, members repository.MemberRepository, publisher Publisher) *JoinService {
	return &JoinService{
		requests:  requests,
		members:   members,
		publisher: publisher,
	}
}

// Submit files a join request for the session member. One open request
// per account; re-submitting while pending returns the existing one.
func (s *JoinService) Submit(sess *Session, name string, part domain.Part) (*domain.JoinRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" || !domain.ValidPart(part) {
		return nil, common.ErrInvalidInput
	}
	if !sess.IsPending() {
		return nil, common.ErrForbidden
	}

	if existing, err := s.requests.FindPendingByUID(sess.UID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req := &domain.JoinRequest{
		ID:     uuid.NewString(),
		UID:    sess.UID,
		Name:   name,
		Part:   part,
		Status: domain.JoinStatusPending,
	}
	if err := s.requests.Create(req); err != nil {
		return nil, err
	}
	s.publishPending()
	return req, nil
}

// Pending lists all open join requests, oldest first
func (s *JoinService) Pending() ([]*domain.JoinRequest, error) {
	return s.requests.FindAllPending()
}

// Approve grants the request: the member becomes 일반대원 with the
// requested name and part. Request and profile change together or not
// at all.
func (s *JoinService) Approve(requestID string) error {
	req, err := s.requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrRequestNotFound
		}
		return err
	}
	if req.Status != domain.JoinStatusPending {
		return common.ErrRequestNotPending
	}
	if err := s.requests.Approve(req, domain.RoleRegular); err != nil {
		return err
	}
	s.publishPending()
	s.publishMembers()
	return nil
}

// Reject deletes the request; the account stays 대기권한 and may submit
// again.
func (s *JoinService) Reject(requestID string) error {
	req, err := s.requests.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrRequestNotFound
		}
		return err
	}
	if req.Status != domain.JoinStatusPending {
		return common.ErrRequestNotPending
	}
	if err := s.requests.Delete(requestID); err != nil {
		return err
	}
	s.publishPending()
	return nil
}

func (s *JoinService) publishPending() {
	reqs, err := s.requests.FindAllPending()
	if err != nil {
		logger.Error("가입 신청 스냅샷 조회 실패: %v", err)
		return
	}
	s.publisher.Publish(live.TopicJoinRequests, reqs)
}

func (s *JoinService) publishMembers() {
	members, err := s.members.FindAll("", "")
	if err != nil {
		logger.Error("대원 목록 스냅샷 조회 실패: %v", err)
		return
	}
	s.publisher.Publish(live.TopicMembers, toMemberResponses(members))
}
