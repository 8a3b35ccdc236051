package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile 公众号
type Profile struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(24)"`
	MsgBiz            string     `json:"msgBiz" gorm:"type:varchar(64);not null;index"`
	Title             string     `json:"title" gorm:"type:varchar(255);not null"`
	Headimg           string     `json:"headimg" gorm:"type:text;not null"`
	Username          string     `json:"username" gorm:"type:varchar(128);not null"`
	Desc              string     `json:"desc" gorm:"column:description;type:text;not null"`
	OpenHistoryPageAt *time.Time `json:"openHistoryPageAt" gorm:"index"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// ProfileField 允许通过接口修改的字段（json 名）
type ProfileField string

const (
	ProfileFieldTitle    ProfileField = "title"
	ProfileFieldHeadimg  ProfileField = "headimg"
	ProfileFieldUsername ProfileField = "username"
	ProfileFieldDesc     ProfileField = "desc"
)

var profileFieldColumns = map[ProfileField]string{
	ProfileFieldTitle:    "title",
	ProfileFieldHeadimg:  "headimg",
	ProfileFieldUsername: "username",
	ProfileFieldDesc:     "description",
}

// Column 返回字段对应的列名；不在白名单内时 ok 为 false
func (f ProfileField) Column() (string, bool) {
	col, ok := profileFieldColumns[f]
	return col, ok
}
