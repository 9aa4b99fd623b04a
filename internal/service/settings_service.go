package service

import (
	"sort"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/repository"
	"github.com/google/uuid"
)

// SettingsService manages the six whole-document singletons (hymns,
// opening hymns, schedules, menu config, role catalog, advertisement).
// Every update replaces the entire document; the last writer wins. The
// single-admin-editor assumption that makes this safe is deliberate.
type SettingsService struct {
	settings  repository.SettingsRepository
	publisher Publisher
}

// NewSettingsService creates a SettingsService
func NewSettingsService(settings repository.SettingsRepository, publisher Publisher) *SettingsService {
	return &SettingsService{settings: settings, publisher: publisher}
}

// Hymns returns the full monthly anthem list sorted by month then week
func (s *SettingsService) Hymns() ([]domain.Hymn, error) {
	var hymns []domain.Hymn
	if err := s.settings.Get(domain.DocHymns, &hymns); err != nil {
		return nil, err
	}
	sortHymns(hymns)
	if hymns == nil {
		hymns = []domain.Hymn{}
	}
	return hymns, nil
}

// ReplaceHymns overwrites the anthem list
func (s *SettingsService) ReplaceHymns(hymns []domain.Hymn) error {
	for _, h := range hymns {
		if h.Month < 1 || h.Month > 12 || h.Week < 1 {
			return common.ErrInvalidInput
		}
	}
	sortHymns(hymns)
	if err := s.settings.Replace(domain.DocHymns, hymns); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocHymns), hymns)
	return nil
}

// ReplaceHymnMonth swaps out one month's entries inside the list, keeping
// the other months untouched (read, splice, write whole document back).
func (s *SettingsService) ReplaceHymnMonth(month int, entries []domain.Hymn) error {
	if month < 1 || month > 12 {
		return common.ErrInvalidInput
	}
	hymns, err := s.Hymns()
	if err != nil {
		return err
	}
	kept := hymns[:0]
	for _, h := range hymns {
		if h.Month != month {
			kept = append(kept, h)
		}
	}
	for _, e := range entries {
		e.Month = month
		kept = append(kept, e)
	}
	return s.ReplaceHymns(kept)
}

// OpeningHymns returns the 시작찬송 list sorted by month then date
func (s *SettingsService) OpeningHymns() ([]domain.OpeningHymn, error) {
	var hymns []domain.OpeningHymn
	if err := s.settings.Get(domain.DocOpeningHymns, &hymns); err != nil {
		return nil, err
	}
	sortOpeningHymns(hymns)
	if hymns == nil {
		hymns = []domain.OpeningHymn{}
	}
	return hymns, nil
}

// AddOpeningHymn appends one entry, assigning its id
func (s *SettingsService) AddOpeningHymn(entry domain.OpeningHymn) (*domain.OpeningHymn, error) {
	if entry.Type != domain.OpeningSunday && entry.Type != domain.OpeningWednesday {
		return nil, common.ErrInvalidInput
	}
	if entry.Month < 1 || entry.Month > 12 {
		return nil, common.ErrInvalidInput
	}
	hymns, err := s.OpeningHymns()
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()
	hymns = append(hymns, entry)
	if err := s.replaceOpeningHymns(hymns); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateOpeningHymn replaces the entry with the same id
func (s *SettingsService) UpdateOpeningHymn(entry domain.OpeningHymn) error {
	hymns, err := s.OpeningHymns()
	if err != nil {
		return err
	}
	for i, h := range hymns {
		if h.ID == entry.ID {
			hymns[i] = entry
			return s.replaceOpeningHymns(hymns)
		}
	}
	return common.ErrNotFound
}

// DeleteOpeningHymn removes the entry with the given id
func (s *SettingsService) DeleteOpeningHymn(id string) error {
	hymns, err := s.OpeningHymns()
	if err != nil {
		return err
	}
	kept := hymns[:0]
	found := false
	for _, h := range hymns {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return common.ErrNotFound
	}
	return s.replaceOpeningHymns(kept)
}

func (s *SettingsService) replaceOpeningHymns(hymns []domain.OpeningHymn) error {
	sortOpeningHymns(hymns)
	if err := s.settings.Replace(domain.DocOpeningHymns, hymns); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocOpeningHymns), hymns)
	return nil
}

// Schedules returns the practice schedule rows in stored order
func (s *SettingsService) Schedules() ([]domain.ScheduleEntry, error) {
	var entries []domain.ScheduleEntry
	if err := s.settings.Get(domain.DocSchedules, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}
	return entries, nil
}

// ReplaceSchedules overwrites the schedule list; row order is positional
func (s *SettingsService) ReplaceSchedules(entries []domain.ScheduleEntry) error {
	if err := s.settings.Replace(domain.DocSchedules, entries); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocSchedules), entries)
	return nil
}

// MenuConfig returns the nav tab configuration, seeded with the defaults
// when nothing is stored yet
func (s *SettingsService) MenuConfig() ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := s.settings.Get(domain.DocMenuConfig, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = domain.DefaultMenuConfig()
	}
	return items, nil
}

// ReplaceMenuConfig overwrites the nav configuration. The dashboard tab
// cannot be hidden.
func (s *SettingsService) ReplaceMenuConfig(items []domain.MenuItem) error {
	for i, item := range items {
		if item.ID == domain.TabDashboard {
			items[i].Visible = true
		}
	}
	if err := s.settings.Replace(domain.DocMenuConfig, items); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocMenuConfig), items)
	return nil
}

// RoleCatalog returns the admin-editable role label list
func (s *SettingsService) RoleCatalog() ([]string, error) {
	var roles []string
	if err := s.settings.Get(domain.DocRoles, &roles); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		roles = domain.DefaultRoleCatalog
	}
	return roles, nil
}

// ReplaceRoleCatalog overwrites the role label list. Blank labels are
// dropped; 대기권한 is never part of the assignable catalog.
func (s *SettingsService) ReplaceRoleCatalog(roles []string) error {
	cleaned := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || r == domain.RolePending {
			continue
		}
		cleaned = append(cleaned, r)
	}
	if err := s.settings.Replace(domain.DocRoles, cleaned); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocRoles), cleaned)
	return nil
}

// Advertisement returns the dashboard notice banner
func (s *SettingsService) Advertisement() (*domain.Advertisement, error) {
	var ad domain.Advertisement
	if err := s.settings.Get(domain.DocAdvertisement, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// ReplaceAdvertisement overwrites the banner
func (s *SettingsService) ReplaceAdvertisement(ad domain.Advertisement) error {
	if err := s.settings.Replace(domain.DocAdvertisement, ad); err != nil {
		return err
	}
	s.publisher.Publish(live.TopicSettings(domain.DocAdvertisement), ad)
	return nil
}

// Snapshot loads the current value of one settings document by name
// (websocket initial snapshot)
func (s *SettingsService) Snapshot(name string) (interface{}, error) {
	switch name {
	case domain.DocHymns:
		return s.Hymns()
	case domain.DocOpeningHymns:
		return s.OpeningHymns()
	case domain.DocSchedules:
		return s.Schedules()
	case domain.DocMenuConfig:
		return s.MenuConfig()
	case domain.DocRoles:
		return s.RoleCatalog()
	case domain.DocAdvertisement:
		return s.Advertisement()
	default:
		return nil, common.ErrNotFound
	}
}

func sortHymns(hymns []domain.Hymn) {
	sort.SliceStable(hymns, func(i, j int) bool {
		if hymns[i].Month != hymns[j].Month {
			return hymns[i].Month < hymns[j].Month
		}
		return hymns[i].Week < hymns[j].Week
	})
}

func sortOpeningHymns(hymns []domain.OpeningHymn) {
	sort.SliceStable(hymns, func(i, j int) bool {
		if hymns[i].Month != hymns[j].Month {
			return hymns[i].Month < hymns[j].Month
		}
		return hymns[i].Date < hymns[j].Date
	})
}
