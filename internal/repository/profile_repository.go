package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/internal/model"
)

// profileOrder 公众号列表固定按最近打开历史页时间倒序，未记录的排最后
const profileOrder = "open_history_page_at DESC NULLS LAST"

// ProfileRepository 公众号仓储接口
type ProfileRepository interface {
	Create(ctx context.Context, profiles ...*model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	Count(ctx context.Context, q ProfileQuery) (int64, error)
	List(ctx context.Context, q ProfileQuery, offset, limit int) ([]*model.Profile, error)
	ListByMsgBizs(ctx context.Context, msgBizs []string) ([]*model.Profile, error)
	// UpdateColumn 更新单列，返回受影响行数
	UpdateColumn(ctx context.Context, id, column string, value any) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) Create(ctx context.Context, profiles ...*model.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(profiles, 500).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Count(ctx context.Context, q ProfileQuery) (int64, error) {
	var cnt int64
	err := q.scope(r.db.WithContext(ctx).Model(&model.Profile{})).Count(&cnt).Error
	return cnt, err
}

func (r *profileRepository) List(ctx context.Context, q ProfileQuery, offset, limit int) ([]*model.Profile, error) {
	var res []*model.Profile
	err := q.scope(r.db.WithContext(ctx).Model(&model.Profile{})).
		Order(profileOrder).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *profileRepository) ListByMsgBizs(ctx context.Context, msgBizs []string) ([]*model.Profile, error) {
	res := []*model.Profile{}
	if len(msgBizs) == 0 {
		return res, nil
	}
	err := r.db.WithContext(ctx).Where("msg_biz IN ?", msgBizs).Find(&res).Error
	return res, err
}

func (r *profileRepository) UpdateColumn(ctx context.Context, id, column string, value any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update(column, value)
	return res.RowsAffected, res.Error
}
