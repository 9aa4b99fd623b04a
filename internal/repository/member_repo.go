package repository

import (
	"github.com/donghaechoir/choir-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository choir member data access
type MemberRepository interface {
	FindByUID(uid string) (*domain.Member, error)
	FindByEmail(email string) (*domain.Member, error)
	FindAll(part domain.Part, keyword string) ([]*domain.Member, error)
	Create(member *domain.Member) error
	Update(member *domain.Member) error
	UpdateFields(uid string, fields map[string]interface{}) error
	Delete(uid string) error
	CountByPart() (map[domain.Part]int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByUID(uid string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.Where("uid = ?", uid).First(&member).Error
	return &member, err
}

func (r *memberRepository) FindByEmail(email string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	return &member, err
}

func (r *memberRepository) FindAll(part domain.Part, keyword string) ([]*domain.Member, error) {
	var members []*domain.Member
	query := r.db.Model(&domain.Member{})
	if part != "" && part != "All" {
		query = query.Where("part = ?", part)
	}
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	err := query.Order("part ASC, name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}

func (r *memberRepository) Update(member *domain.Member) error {
	return r.db.Save(member).Error
}

// UpdateFields patches individual columns without replacing the row
func (r *memberRepository) UpdateFields(uid string, fields map[string]interface{}) error {
	res := r.db.Model(&domain.Member{}).Where("uid = ?", uid).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) Delete(uid string) error {
	return r.db.Where("uid = ?", uid).Delete(&domain.Member{}).Error
}

func (r *memberRepository) CountByPart() (map[domain.Part]int64, error) {
	type row struct {
		Part  domain.Part `gorm:"column:part"`
		Count int64       `gorm:"column:count"`
	}
	var rows []row
	err := r.db.Model(&domain.Member{}).
		Select("part, COUNT(*) as count").
		Where("role <> ?", domain.RolePending).
		Group("part").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[domain.Part]int64, len(rows))
	for _, row := range rows {
		m[row.Part] = row.Count
	}
	return m, nil
}
