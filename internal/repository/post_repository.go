package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/internal/model"
)

// PostStats 单个公众号的文章统计
type PostStats struct {
	AllCount     int64
	HasDataCount int64
	Newest       *time.Time
	Oldest       *time.Time
}

// PostRepository 文章仓储接口
type PostRepository interface {
	Create(ctx context.Context, posts ...*model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Count(ctx context.Context, q PostQuery) (int64, error)
	// List 按 q.OrderBy 排序分页，并预加载所属公众号
	List(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error)
	// Stats 统计某公众号的文章数、有数据文章数以及最新 / 最早发布时间
	Stats(ctx context.Context, msgBiz string) (PostStats, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, posts ...*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Profile").CreateInBatches(posts, 500).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Count(ctx context.Context, q PostQuery) (int64, error) {
	var cnt int64
	err := q.scope(r.db.WithContext(ctx).Model(&model.Post{})).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) List(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error) {
	db := q.scope(r.db.WithContext(ctx).Model(&model.Post{}))
	for _, o := range q.OrderBy {
		db = db.Order(o)
	}
	var res []*model.Post
	err := db.Preload("Profile").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *postRepository) Stats(ctx context.Context, msgBiz string) (PostStats, error) {
	var st PostStats
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Post{}).Where("msg_biz = ?", msgBiz)
	}

	if err := base().Count(&st.AllCount).Error; err != nil {
		return st, err
	}
	if err := base().Where("read_num IS NOT NULL").Count(&st.HasDataCount).Error; err != nil {
		return st, err
	}

	var err error
	if st.Newest, err = r.publishBound(base(), "publish_at DESC"); err != nil {
		return st, err
	}
	if st.Oldest, err = r.publishBound(base(), "publish_at ASC"); err != nil {
		return st, err
	}
	return st, nil
}

// publishBound 取排序后第一篇有发布时间的文章的 publish_at
func (r *postRepository) publishBound(db *gorm.DB, order string) (*time.Time, error) {
	var rows []model.Post
	err := db.Select("publish_at").
		Where("publish_at IS NOT NULL").
		Order(order).
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0].PublishAt, nil
}
