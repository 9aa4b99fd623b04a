package domain

import "time"

// JoinRequest status values. A request is either pending or approved;
// rejection deletes the row outright, there is no retract.
const (
	JoinStatusPending  = "pending"
	JoinStatusApproved = "approved"
)

// JoinRequest is one invite-link signup awaiting admin approval
type JoinRequest struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	UID       string    `gorm:"column:uid;type:varchar(64);index" json:"uid"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Part      Part      `gorm:"column:part;type:varchar(20)" json:"part"`
	Status    string    `gorm:"column:status;type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (JoinRequest) TableName() string { return "join_requests" }
