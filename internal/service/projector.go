package service

import (
	"strconv"
	"time"

	"github.com/d60-Lab/postwatch/internal/model"
)

// PostProfile 文章列表里附带的公众号信息，只含标题和头像
type PostProfile struct {
	Title   string `json:"title"`
	Headimg string `json:"headimg"`
}

// PostView 文章列表项
type PostView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Link        string       `json:"link"`
	PublishAt   *time.Time   `json:"publishAt"`
	MsgBiz      string       `json:"msgBiz"`
	MsgIdx      string       `json:"msgIdx"`
	ReadNum     int64        `json:"readNum"`
	LikeNum     int64        `json:"likeNum"`
	UpdateNumAt *time.Time   `json:"updateNumAt"`
	Profile     *PostProfile `json:"profile"`
}

// ProfileView 公众号列表项；统计字段由 Enricher 填充
type ProfileView struct {
	ID                string     `json:"id"`
	OpenHistoryPageAt *time.Time `json:"openHistoryPageAt"`
	Headimg           string     `json:"headimg"`
	MsgBiz            string     `json:"msgBiz"`
	Title             string     `json:"title"`

	PostsAllCount     int64      `json:"postsAllCount"`
	PostsHasDataCount int64      `json:"postsHasDataCount"`
	NewestPostTime    *time.Time `json:"newestPostTime"`
	OldestPostTime    *time.Time `json:"oldestPostTime"`
}

func ProjectPost(p *model.Post) PostView {
	v := PostView{
		ID:          p.ID,
		Title:       p.Title,
		Link:        p.Link,
		PublishAt:   p.PublishAt,
		MsgBiz:      p.MsgBiz,
		ReadNum:     deref(p.ReadNum),
		LikeNum:     deref(p.LikeNum),
		UpdateNumAt: p.UpdateNumAt,
	}
	// 0 与缺省一样投影为 ""
	if p.MsgIdx != nil && *p.MsgIdx != 0 {
		v.MsgIdx = strconv.Itoa(*p.MsgIdx)
	}
	if p.Profile != nil {
		v.Profile = &PostProfile{Title: p.Profile.Title, Headimg: p.Profile.Headimg}
	}
	return v
}

func ProjectProfile(p *model.Profile) ProfileView {
	return ProfileView{
		ID:                p.ID,
		OpenHistoryPageAt: p.OpenHistoryPageAt,
		Headimg:           p.Headimg,
		MsgBiz:            p.MsgBiz,
		Title:             p.Title,
	}
}

func projectAll[S any, V any](in []S, fn func(S) V) []V {
	out := make([]V, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
