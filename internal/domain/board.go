package domain

import "time"

// BoardCategory defines one named sub-board. OrderNum is a swappable
// integer; swapping two categories' OrderNum is the only multi-row atomic
// write in the system.
type BoardCategory struct {
	ID          string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Description string    `gorm:"column:description;type:varchar(255)" json:"description"`
	OrderNum    int       `gorm:"column:order_num;default:0;index" json:"order"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BoardCategory) TableName() string { return "board_categories" }

// BoardPost is one bulletin-board entry
type BoardPost struct {
	ID         string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	BoardID    string    `gorm:"column:board_id;type:varchar(64);index" json:"board_id"`
	Author     string    `gorm:"column:author;type:varchar(100)" json:"author"`
	AuthorUID  string    `gorm:"column:author_uid;type:varchar(64);index" json:"author_uid"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	ImageURL   *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	YoutubeURL *string   `gorm:"column:youtube_url;type:varchar(500)" json:"youtube_url,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Comments []BoardComment `gorm:"foreignKey:PostID;references:ID" json:"comments"`
}

func (BoardPost) TableName() string { return "board_posts" }

// BoardComment is one comment under a post. Comments carry their own id so
// a delete targets exactly one row even when two comments are structurally
// identical.
type BoardComment struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	PostID    string    `gorm:"column:post_id;type:varchar(64);index" json:"post_id"`
	Author    string    `gorm:"column:author;type:varchar(100)" json:"author"`
	AuthorUID string    `gorm:"column:author_uid;type:varchar(64)" json:"author_uid"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	ImageURL  *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BoardComment) TableName() string { return "board_comments" }
