package domain

import "time"

// Settings document names. Each name keys one JSON document that is always
// replaced wholesale (read list, mutate in memory, write the entire list
// back); the last writer wins and concurrent partial edits are dropped.
const (
	DocHymns         = "hymns_data"
	DocOpeningHymns  = "opening_hymns"
	DocSchedules     = "schedules"
	DocMenuConfig    = "menu_config"
	DocRoles         = "roles"
	DocAdvertisement = "advertisement"
)

// SettingsDocument is one whole-document settings singleton
type SettingsDocument struct {
	Name      string    `gorm:"column:name;type:varchar(50);primaryKey" json:"name"`
	Value     string    `gorm:"column:value;type:json" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SettingsDocument) TableName() string { return "settings_documents" }

// Hymn is one monthly anthem entry (월별 찬송가)
type Hymn struct {
	Month    int    `json:"month"`
	Week     int    `json:"week"`
	Title    string `json:"title"`
	Composer string `json:"composer"`
	ScoreURL string `json:"score_url,omitempty"`
}

// OpeningHymnType 시작찬송 구분
const (
	OpeningSunday    = "Sunday"
	OpeningWednesday = "Wednesday"
)

// OpeningHymn is one 시작찬송 entry, keyed by service type
type OpeningHymn struct {
	ID     string `json:"id"`
	Month  int    `json:"month"`
	Date   string `json:"date"`
	Type   string `json:"type"` // Sunday | Wednesday
	Leader string `json:"leader"`
	Title  string `json:"title"`
}

// ScheduleEntry is one practice schedule row; ordering is positional
type ScheduleEntry struct {
	Day         string `json:"day"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// MenuItem is one nav tab with admin display overrides
type MenuItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// Advertisement is the dashboard notice banner
type Advertisement struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

// Fixed nav tab ids. Board tabs are dynamic (board_<categoryID>) and are
// appended per live BoardCategory.
const (
	TabDashboard    = "dashboard"
	TabMembers      = "members"
	TabAttendance   = "attendance"
	TabOpeningHymns = "opening-hymns"
	TabHymns        = "hymns"
	TabSchedule     = "schedule"
)

// DefaultMenuConfig seeds the menu_config document with the fixed tabs
func DefaultMenuConfig() []MenuItem {
	return []MenuItem{
		{ID: TabDashboard, Label: "대시보드", Visible: true},
		{ID: TabMembers, Label: "인원 관리", Visible: true},
		{ID: TabAttendance, Label: "출석부", Visible: true},
		{ID: TabOpeningHymns, Label: "시작찬송 관리", Visible: true},
		{ID: TabHymns, Label: "월별 찬송가", Visible: true},
		{ID: TabSchedule, Label: "연습 스케줄", Visible: true},
	}
}
