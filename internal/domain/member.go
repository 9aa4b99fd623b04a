package domain

import "time"

// Part 찬양대 파트 구분
type Part string

const (
	PartSoprano   Part = "Soprano"
	PartAlto      Part = "Alto"
	PartTenor     Part = "Tenor"
	PartBass      Part = "Bass"
	PartOrchestra Part = "Orchestra"
)

// Parts lists every selectable part in display order
var Parts = []Part{PartSoprano, PartAlto, PartTenor, PartBass, PartOrchestra}

// ValidPart reports whether p is a known part
func ValidPart(p Part) bool {
	for _, v := range Parts {
		if v == p {
			return true
		}
	}
	return false
}

// Member is the persisted profile binding an authenticated identity (UID)
// to choir attributes. Created lazily on first login with role 대기권한.
type Member struct {
	UID       string    `gorm:"column:uid;type:varchar(64);primaryKey" json:"uid"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);index" json:"email"`
	Part      Part      `gorm:"column:part;type:varchar(20)" json:"part,omitempty"`
	Role      string    `gorm:"column:role;type:varchar(50);default:'대기권한'" json:"role"`
	ImageURL  *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Password is set only for email/password accounts; OAuth and easy-join
	// identities leave it empty.
	Password string `gorm:"column:password;type:varchar(255)" json:"-"`
}

func (Member) TableName() string { return "choir_members" }

// MemberResponse is the member shape exposed to clients
type MemberResponse struct {
	UID      string  `json:"uid"`
	Name     string  `json:"name"`
	Email    string  `json:"email,omitempty"`
	Part     Part    `json:"part,omitempty"`
	Role     string  `json:"role"`
	ImageURL *string `json:"image_url,omitempty"`
}

// ToResponse converts a Member to its client representation
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		UID:      m.UID,
		Name:     m.Name,
		Email:    m.Email,
		Part:     m.Part,
		Role:     m.Role,
		ImageURL: m.ImageURL,
	}
}
