package service

import (
	"errors"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
	"gorm.io/gorm"
)

// MemberService manages the roster. Mutations patch individual columns
// (never whole-row replace) and fan the updated roster out to live
// subscribers.
type MemberService struct {
	members   repository.MemberRepository
	publisher Publisher
}

// NewMemberService creates a MemberService
func NewMemberService(members repository.MemberRepository, publisher Publisher) *MemberService {
	return &MemberService{members: members, publisher: publisher}
}

// List returns members filtered by part and name keyword. part "" or
// "All" means every part.
func (s *MemberService) List(part domain.Part, keyword string) ([]domain.MemberResponse, error) {
	members, err := s.members.FindAll(part, strings.TrimSpace(keyword))
	if err != nil {
		return nil, err
	}
	return toMemberResponses(members), nil
}

// Get returns one member by uid
func (s *MemberService) Get(uid string) (*domain.MemberResponse, error) {
	member, err := s.members.FindByUID(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemberNotFound
		}
		return nil, err
	}
	resp := member.ToResponse()
	return &resp, nil
}

// MemberUpdate carries the patchable roster fields; nil means unchanged
type MemberUpdate struct {
	Name     *string      `json:"name"`
	Part     *domain.Part `json:"part"`
	Role     *string      `json:"role"`
	ImageURL *string      `json:"image_url"`
}

// Update patches a member's roster fields column by column
func (s *MemberService) Update(uid string, upd MemberUpdate) error {
	fields := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return common.ErrInvalidInput
		}
		fields["name"] = name
	}
	if upd.Part != nil {
		if !domain.ValidPart(*upd.Part) {
			return common.ErrInvalidInput
		}
		fields["part"] = *upd.Part
	}
	if upd.Role != nil {
		role := strings.TrimSpace(*upd.Role)
		if role == "" {
			return common.ErrInvalidInput
		}
		fields["role"] = role
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if len(fields) == 0 {
		return common.ErrInvalidInput
	}

	if err := s.members.UpdateFields(uid, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrMemberNotFound
		}
		return err
	}
	s.publishMembers()
	return nil
}

// Delete removes a member from the roster
func (s *MemberService) Delete(uid string) error {
	if _, err := s.members.FindByUID(uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrMemberNotFound
		}
		return err
	}
	if err := s.members.Delete(uid); err != nil {
		return err
	}
	s.publishMembers()
	return nil
}

// CountByPart counts approved members per part (dashboard widget)
func (s *MemberService) CountByPart() (map[domain.Part]int64, error) {
	return s.members.CountByPart()
}

// Roster returns every member (websocket snapshot)
func (s *MemberService) Roster() ([]domain.MemberResponse, error) {
	return s.List("", "")
}

func (s *MemberService) publishMembers() {
	members, err := s.members.FindAll("", "")
	if err != nil {
		logger.Error("대원 목록 스냅샷 조회 실패: %v", err)
		return
	}
	s.publisher.Publish(live.TopicMembers, toMemberResponses(members))
}

func toMemberResponses(members []*domain.Member) []domain.MemberResponse {
	out := make([]domain.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToResponse())
	}
	return out
}
