package repository

import (
	"errors"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository attendance grid data access. Every write touches a
// single cell (member_uid, date); there is no whole-grid replace.
type AttendanceRepository interface {
	FindCell(memberUID, date string) (domain.AttendanceStatus, error)
	FindByDates(dates []string) ([]*domain.AttendanceRecord, error)
	UpsertCell(memberUID, date string, status domain.AttendanceStatus) error
	DeleteCell(memberUID, date string) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates an AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// FindCell returns the stored status of one cell; a missing row is "none"
func (r *attendanceRepository) FindCell(memberUID, date string) (domain.AttendanceStatus, error) {
	var rec domain.AttendanceRecord
	err := r.db.Where("member_uid = ? AND date = ?", memberUID, date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AttendanceNone, nil
	}
	if err != nil {
		return domain.AttendanceNone, err
	}
	return rec.Status, nil
}

func (r *attendanceRepository) FindByDates(dates []string) ([]*domain.AttendanceRecord, error) {
	if len(dates) == 0 {
		return []*domain.AttendanceRecord{}, nil
	}
	var recs []*domain.AttendanceRecord
	err := r.db.Where("date IN ?", dates).Find(&recs).Error
	return recs, err
}

// UpsertCell writes one cell, creating the row when missing (the original's
// dotted-path update with create-on-missing fallback collapses to an upsert)
func (r *attendanceRepository) UpsertCell(memberUID, date string, status domain.AttendanceStatus) error {
	rec := domain.AttendanceRecord{MemberUID: memberUID, Date: date, Status: status}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_uid"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&rec).Error
}

func (r *attendanceRepository) DeleteCell(memberUID, date string) error {
	return r.db.Where("member_uid = ? AND date = ?", memberUID, date).
		Delete(&domain.AttendanceRecord{}).Error
}
