package repository

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"gorm.io/gorm"
)

// JoinRequestRepository join request data access
type JoinRequestRepository interface {
	Create(req *domain.JoinRequest) error
	FindByID(id string) (*domain.JoinRequest, error)
	FindPendingByUID(uid string) (*domain.JoinRequest, error)
	FindAllPending() ([]*domain.JoinRequest, error)
	Delete(id string) error

	// Approve marks the request approved and writes role/part onto the
	// member profile inside one transaction; both rows change or neither.
	Approve(req *domain.JoinRequest, role string) error
}

type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository creates a JoinRequestRepository
func NewJoinRequestRepository(db *gorm.DB) JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

func (r *joinRequestRepository) Create(req *domain.JoinRequest) error {
	return r.db.Create(req).Error
}

func (r *joinRequestRepository) FindByID(id string) (*domain.JoinRequest, error) {
	var req domain.JoinRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	return &req, err
}

func (r *joinRequestRepository) FindPendingByUID(uid string) (*domain.JoinRequest, error) {
	var req domain.JoinRequest
	err := r.db.Where("uid = ? AND status = ?", uid, domain.JoinStatusPending).First(&req).Error
	return &req, err
}

func (r *joinRequestRepository) FindAllPending() ([]*domain.JoinRequest, error) {
	var reqs []*domain.JoinRequest
	err := r.db.Where("status = ?", domain.JoinStatusPending).Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *joinRequestRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.JoinRequest{}).Error
}

func (r *joinRequestRepository) Approve(req *domain.JoinRequest, role string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.JoinRequest{}).
			Where("id = ? AND status = ?", req.ID, domain.JoinStatusPending).
			Update("status", domain.JoinStatusApproved).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Member{}).
			Where("uid = ?", req.UID).
			Updates(map[string]interface{}{
				"role": role,
				"part": req.Part,
				"name": req.Name,
			}).Error
	})
}
