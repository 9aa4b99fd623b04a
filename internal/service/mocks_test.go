package service

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByUID(uid string) (*domain.Member, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(email string) (*domain.Member, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(part domain.Part, keyword string) ([]*domain.Member, error) {
	args := m.Called(part, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) Create(member *domain.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepository) Update(member *domain.Member) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateFields(uid string, fields map[string]interface{}) error {
	args := m.Called(uid, fields)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(uid string) error {
	args := m.Called(uid)
	return args.Error(0)
}

func (m *MockMemberRepository) CountByPart() (map[domain.Part]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Part]int64), args.Error(1)
}

// MockJoinRequestRepository is a mock implementation of JoinRequestRepository
type MockJoinRequestRepository struct {
	mock.Mock
}

func (m *MockJoinRequestRepository) Create(req *domain.JoinRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) FindByID(id string) (*domain.JoinRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) FindPendingByUID(uid string) (*domain.JoinRequest, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) FindAllPending() ([]*domain.JoinRequest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) Approve(req *domain.JoinRequest, role string) error {
	args := m.Called(req, role)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) FindCell(memberUID, date string) (domain.AttendanceStatus, error) {
	args := m.Called(memberUID, date)
	return args.Get(0).(domain.AttendanceStatus), args.Error(1)
}

func (m *MockAttendanceRepository) FindByDates(dates []string) ([]*domain.AttendanceRecord, error) {
	args := m.Called(dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) UpsertCell(memberUID, date string, status domain.AttendanceStatus) error {
	args := m.Called(memberUID, date, status)
	return args.Error(0)
}

func (m *MockAttendanceRepository) DeleteCell(memberUID, date string) error {
	args := m.Called(memberUID, date)
	return args.Error(0)
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) FindCategories() ([]*domain.BoardCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BoardCategory), args.Error(1)
}

func (m *MockBoardRepository) FindCategoryByID(id string) (*domain.BoardCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardCategory), args.Error(1)
}

func (m *MockBoardRepository) CreateCategory(cat *domain.BoardCategory) error {
	args := m.Called(cat)
	return args.Error(0)
}

func (m *MockBoardRepository) UpdateCategory(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteCategory(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBoardRepository) SwapOrder(a, b *domain.BoardCategory) error {
	args := m.Called(a, b)
	return args.Error(0)
}

func (m *MockBoardRepository) FindPosts(boardID string) ([]*domain.BoardPost, error) {
	args := m.Called(boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BoardPost), args.Error(1)
}

func (m *MockBoardRepository) FindRecentPosts(limit int) ([]*domain.BoardPost, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BoardPost), args.Error(1)
}

func (m *MockBoardRepository) FindPostByID(id string) (*domain.BoardPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardPost), args.Error(1)
}

func (m *MockBoardRepository) CreatePost(post *domain.BoardPost) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockBoardRepository) DeletePost(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBoardRepository) CreateComment(comment *domain.BoardComment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockBoardRepository) FindCommentByID(id string) (*domain.BoardComment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoardComment), args.Error(1)
}

func (m *MockBoardRepository) DeleteComment(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBoardRepository) DeleteCommentByValue(postID, authorUID, content string) (int64, error) {
	args := m.Called(postID, authorUID, content)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(name string, out interface{}) error {
	args := m.Called(name, out)
	return args.Error(0)
}

func (m *MockSettingsRepository) Replace(name string, value interface{}) error {
	args := m.Called(name, value)
	return args.Error(0)
}

// publishRecorder captures snapshot fan-outs instead of a real hub
type publishRecorder struct {
	topics   []string
	payloads []interface{}
}

func (r *publishRecorder) Publish(topic string, payload interface{}) {
	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, payload)
}

func (r *publishRecorder) published(topic string) bool {
	for _, t := range r.topics {
		if t == topic {
			return true
		}
	}
	return false
}
