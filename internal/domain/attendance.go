package domain

import (
	"fmt"
	"time"
)

// AttendanceStatus 출석 상태. "none" is never stored: a missing row means
// unchecked, so clearing a cell deletes its row.
type AttendanceStatus string

const (
	AttendanceNone    AttendanceStatus = "none"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Next returns the successor in the click cycle
// none → present → absent → none.
func (s AttendanceStatus) Next() AttendanceStatus {
	switch s {
	case AttendancePresent:
		return AttendanceAbsent
	case AttendanceAbsent:
		return AttendanceNone
	default:
		return AttendancePresent
	}
}

// AttendanceRecord is one grid cell: one member on one practice date.
// Cells are written individually (field-level patch), never as a whole
// grid, so two admins marking different members do not clobber each other.
type AttendanceRecord struct {
	MemberUID string           `gorm:"column:member_uid;type:varchar(64);primaryKey" json:"member_uid"`
	Date      string           `gorm:"column:date;type:varchar(10);primaryKey" json:"date"` // YYYY-MM-DD
	Status    AttendanceStatus `gorm:"column:status;type:varchar(10)" json:"status"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }

// PracticeDate is one practice day of a month (Sunday, Wednesday or
// Saturday, matching the original grid columns)
type PracticeDate struct {
	Date          string `json:"date"` // YYYY-MM-DD
	DayName       string `json:"day_name"`
	FormattedDate string `json:"formatted_date"` // M/D
}

var practiceDayNames = map[time.Weekday]string{
	time.Sunday:    "일",
	time.Wednesday: "수",
	time.Saturday:  "토",
}

// PracticeDates returns every Sunday, Wednesday and Saturday of the given
// month in calendar order. month is 1-12.
func PracticeDates(year int, month time.Month) []PracticeDate {
	var dates []PracticeDate
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		if name, ok := practiceDayNames[day.Weekday()]; ok {
			dates = append(dates, PracticeDate{
				Date:          day.Format("2006-01-02"),
				DayName:       name,
				FormattedDate: fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}
