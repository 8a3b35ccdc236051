package model

import (
	"time"

	"gorm.io/gorm"
)

// Post 公众号文章；ReadNum 为 nil 表示尚未抓取阅读数据
type Post struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(24)"`
	Title       string     `json:"title" gorm:"type:text;not null"`
	Link        string     `json:"link" gorm:"type:text;not null"`
	PublishAt   *time.Time `json:"publishAt" gorm:"index:idx_post_biz_publish,priority:2"`
	MsgBiz      string     `json:"msgBiz" gorm:"type:varchar(64);not null;index:idx_post_biz_publish,priority:1"`
	MsgIdx      *int       `json:"msgIdx"`
	ReadNum     *int64     `json:"readNum"`
	LikeNum     *int64     `json:"likeNum"`
	UpdateNumAt *time.Time `json:"updateNumAt" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// 按 msg_biz 反查，查询时 Preload
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:MsgBiz;references:MsgBiz"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
