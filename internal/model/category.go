package model

import (
	"time"

	"gorm.io/gorm"
)

// Category 公众号分组，MsgBizs 保持创建时的顺序
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(24)"`
	Name      string    `json:"name" gorm:"type:varchar(128);not null;uniqueIndex"`
	MsgBizs   []string  `json:"msgBizs" gorm:"type:text;serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
