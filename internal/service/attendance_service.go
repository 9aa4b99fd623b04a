package service

import (
	"time"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/donghaechoir/choir-backend/pkg/logger"
)

// AttendanceService drives the monthly attendance grid. Every toggle
// touches exactly one (member, date) cell so two admins marking different
// members never overwrite each other.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	publisher  Publisher
}

// NewAttendanceService creates an AttendanceService
func NewAttendanceService(attendance repository.AttendanceRepository, publisher Publisher) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		publisher:  publisher,
	}
}

// AttendanceGrid is the full month view: practice dates as columns and a
// member_uid → date → status map as cells. Missing cells are unchecked.
type AttendanceGrid struct {
	Year    int                                           `json:"year"`
	Month   int                                           `json:"month"`
	Dates   []domain.PracticeDate                         `json:"dates"`
	Records map[string]map[string]domain.AttendanceStatus `json:"records"`
}

// Grid loads the attendance grid for year/month
func (s *AttendanceService) Grid(year, month int) (*AttendanceGrid, error) {
	if month < 1 || month > 12 {
		return nil, common.ErrInvalidInput
	}
	dates := domain.PracticeDates(year, time.Month(month))

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.Date
	}
	recs, err := s.attendance.FindByDates(keys)
	if err != nil {
		return nil, err
	}

	grid := &AttendanceGrid{
		Year:    year,
		Month:   month,
		Dates:   dates,
		Records: make(map[string]map[string]domain.AttendanceStatus),
	}
	for _, rec := range recs {
		cells, ok := grid.Records[rec.MemberUID]
		if !ok {
			cells = make(map[string]domain.AttendanceStatus)
			grid.Records[rec.MemberUID] = cells
		}
		cells[rec.Date] = rec.Status
	}
	return grid, nil
}

// Toggle advances one cell through the click cycle
// none → present → absent → none and returns the new status. Reaching
// none deletes the row instead of storing a sentinel.
func (s *AttendanceService) Toggle(memberUID, date string) (domain.AttendanceStatus, error) {
	if memberUID == "" || !validDateKey(date) {
		return domain.AttendanceNone, common.ErrInvalidInput
	}

	current, err := s.attendance.FindCell(memberUID, date)
	if err != nil {
		return domain.AttendanceNone, err
	}
	next := current.Next()

	if next == domain.AttendanceNone {
		err = s.attendance.DeleteCell(memberUID, date)
	} else {
		err = s.attendance.UpsertCell(memberUID, date, next)
	}
	if err != nil {
		return domain.AttendanceNone, err
	}

	s.publishMonth(date)
	return next, nil
}

// Set writes one cell to an explicit status (none clears the cell)
func (s *AttendanceService) Set(memberUID, date string, status domain.AttendanceStatus) error {
	if memberUID == "" || !validDateKey(date) {
		return common.ErrInvalidInput
	}
	switch status {
	case domain.AttendanceNone:
		if err := s.attendance.DeleteCell(memberUID, date); err != nil {
			return err
		}
	case domain.AttendancePresent, domain.AttendanceAbsent:
		if err := s.attendance.UpsertCell(memberUID, date, status); err != nil {
			return err
		}
	default:
		return common.ErrInvalidInput
	}
	s.publishMonth(date)
	return nil
}

// publishMonth pushes the updated month grid to live subscribers
func (s *AttendanceService) publishMonth(date string) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return
	}
	grid, err := s.Grid(t.Year(), int(t.Month()))
	if err != nil {
		logger.Error("출석부 스냅샷 조회 실패: %v", err)
		return
	}
	s.publisher.Publish(live.TopicAttendance, grid)
}

// validDateKey checks the YYYY-MM-DD cell key format
func validDateKey(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// CurrentGrid loads the grid of the present month (websocket snapshot)
func (s *AttendanceService) CurrentGrid() (*AttendanceGrid, error) {
	now := time.Now()
	return s.Grid(now.Year(), int(now.Month()))
}

// WeekRate computes the attendance rate over the practice dates of the
// seven days ending at now. Unmarked cells do not count; no marks at all
// yields 0.
func (s *AttendanceService) WeekRate(now time.Time) (float64, error) {
	start := now.AddDate(0, 0, -6)

	summary, err := s.Summary(now.Year(), int(now.Month()))
	if err != nil {
		return 0, err
	}
	// A window crossing the month boundary also needs the prior month's
	// practice dates
	if start.Month() != now.Month() || start.Year() != now.Year() {
		prev, err := s.Summary(start.Year(), int(start.Month()))
		if err != nil {
			return 0, err
		}
		for date, counts := range prev {
			summary[date] = counts
		}
	}

	from := start.Format("2006-01-02")
	to := now.Format("2006-01-02")

	var present, absent int
	for date, counts := range summary {
		if date < from || date > to {
			continue
		}
		present += counts[domain.AttendancePresent]
		absent += counts[domain.AttendanceAbsent]
	}
	if present+absent == 0 {
		return 0, nil
	}
	return float64(present) / float64(present+absent), nil
}

// Summary counts present/absent per practice date of the month
func (s *AttendanceService) Summary(year, month int) (map[string]map[domain.AttendanceStatus]int, error) {
	grid, err := s.Grid(year, month)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]map[domain.AttendanceStatus]int, len(grid.Dates))
	for _, d := range grid.Dates {
		summary[d.Date] = map[domain.AttendanceStatus]int{}
	}
	for _, cells := range grid.Records {
		for date, status := range cells {
			if _, ok := summary[date]; !ok {
				summary[date] = map[domain.AttendanceStatus]int{}
			}
			summary[date][status]++
		}
	}
	return summary, nil
}
