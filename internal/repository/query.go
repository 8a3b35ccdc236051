package repository

import (
	"strings"

	"gorm.io/gorm"
)

// PostQuery 文章查询条件，各条件之间为 AND
type PostQuery struct {
	// MsgBizs 为 nil 表示不按公众号过滤；非 nil 时必须非空
	MsgBizs []string
	// Title 非空时按标题做大小写不敏感的子串匹配
	Title string
	// HasReadNum 为 nil 不限；true 仅有阅读数据，false 仅无阅读数据
	HasReadNum *bool
	// OrderBy 排序子句，按顺序生效
	OrderBy []string
}

func (q PostQuery) scope(db *gorm.DB) *gorm.DB {
	if q.MsgBizs != nil {
		db = db.Where("msg_biz IN ?", q.MsgBizs)
	}
	if q.Title != "" {
		db = titleLike(db, q.Title)
	}
	if q.HasReadNum != nil {
		if *q.HasReadNum {
			db = db.Where("read_num IS NOT NULL")
		} else {
			db = db.Where("read_num IS NULL")
		}
	}
	return db
}

// ProfileQuery 公众号查询条件
type ProfileQuery struct {
	MsgBizs []string
	Title   string
}

func (q ProfileQuery) scope(db *gorm.DB) *gorm.DB {
	if q.MsgBizs != nil {
		db = db.Where("msg_biz IN ?", q.MsgBizs)
	}
	if q.Title != "" {
		db = titleLike(db, q.Title)
	}
	return db
}

func titleLike(db *gorm.DB, s string) *gorm.DB {
	// 列与参数由同一个 LOWER 折叠；SQLite 的 LOWER 只处理 ASCII
	return db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, "%"+EscapeLike(s)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike 转义 LIKE 通配符，用户输入只按字面匹配
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
