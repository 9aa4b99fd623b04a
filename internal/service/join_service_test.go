package service

import (
	"testing"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func pendingSession(uid string) *Session {
	return &Session{
		UID:  uid,
		Name: "신입",
		Role: domain.RolePending,
		caps: domain.CapabilitiesFor(domain.RolePending),
	}
}

func TestSubmit_CreatesRequest(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	pub := &publishRecorder{}
	svc := NewJoinService(requests, members, pub)

	requests.On("FindPendingByUID", "uid-new").Return(nil, gorm.ErrRecordNotFound)
	requests.On("Create", mock.MatchedBy(func(req *domain.JoinRequest) bool {
		return req.UID == "uid-new" && req.Name == "김테너" &&
			req.Part == domain.PartTenor && req.Status == domain.JoinStatusPending
	})).Return(nil)
	requests.On("FindAllPending").Return([]*domain.JoinRequest{}, nil)

	req, err := svc.Submit(pendingSession("uid-new"), "김테너", domain.PartTenor)

	assert.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.True(t, pub.published(live.TopicJoinRequests))
	requests.AssertExpectations(t)
}

func TestSubmit_ReturnsExistingPendingRequest(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	svc := NewJoinService(requests, members, &publishRecorder{})

	existing := &domain.JoinRequest{ID: "jr-1", UID: "uid-new", Status: domain.JoinStatusPending}
	requests.On("FindPendingByUID", "uid-new").Return(existing, nil)

	req, err := svc.Submit(pendingSession("uid-new"), "김테너", domain.PartTenor)

	assert.NoError(t, err)
	assert.Equal(t, "jr-1", req.ID)
	requests.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_ActiveMemberForbidden(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	svc := NewJoinService(requests, members, &publishRecorder{})

	_, err := svc.Submit(activeSession(domain.RoleRegular), "김테너", domain.PartTenor)

	assert.ErrorIs(t, err, common.ErrForbidden)
	requests.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmit_InvalidPart(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	svc := NewJoinService(requests, members, &publishRecorder{})

	_, err := svc.Submit(pendingSession("uid-new"), "김테너", domain.Part("드럼"))

	assert.Error(t, err)
}

func TestApprove_PublishesBothTopics(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	pub := &publishRecorder{}
	svc := NewJoinService(requests, members, pub)

	req := &domain.JoinRequest{ID: "jr-1", UID: "uid-new", Name: "김테너", Part: domain.PartTenor, Status: domain.JoinStatusPending}
	requests.On("FindByID", "jr-1").Return(req, nil)
	requests.On("Approve", req, domain.RoleRegular).Return(nil)
	requests.On("FindAllPending").Return([]*domain.JoinRequest{}, nil)
	members.On("FindAll", domain.Part(""), "").Return([]*domain.Member{
		{UID: "uid-new", Name: "김테너", Part: domain.PartTenor, Role: domain.RoleRegular},
	}, nil)

	err := svc.Approve("jr-1")

	assert.NoError(t, err)
	assert.True(t, pub.published(live.TopicJoinRequests))
	assert.True(t, pub.published(live.TopicMembers))
	requests.AssertExpectations(t)
}

func TestApprove_AlreadyHandled(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	svc := NewJoinService(requests, members, &publishRecorder{})

	req := &domain.JoinRequest{ID: "jr-1", Status: domain.JoinStatusApproved}
	requests.On("FindByID", "jr-1").Return(req, nil)

	err := svc.Approve("jr-1")

	assert.Error(t, err)
	requests.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestReject_DeletesRequest(t *testing.T) {
	requests := new(MockJoinRequestRepository)
	members := new(MockMemberRepository)
	pub := &publishRecorder{}
	svc := NewJoinService(requests, members, pub)

	req := &domain.JoinRequest{ID: "jr-1", UID: "uid-new", Status: domain.JoinStatusPending}
	requests.On("FindByID", "jr-1").Return(req, nil)
	requests.On("Delete", "jr-1").Return(nil)
	requests.On("FindAllPending").Return([]*domain.JoinRequest{}, nil)

	err := svc.Reject("jr-1")

	assert.NoError(t, err)
	assert.True(t, pub.published(live.TopicJoinRequests))
	requests.AssertExpectations(t)
}
