package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/repository"
	"github.com/d60-Lab/postwatch/pkg/logger"
)

// CategoryProfile 分类下解析出的公众号
type CategoryProfile struct {
	ID      string `json:"id"`
	MsgBiz  string `json:"msgBiz"`
	Title   string `json:"title"`
	Headimg string `json:"headimg"`
}

// CategoryView 分类及其公众号；msgBizs 中找不到公众号的不出现在 Profiles 里
type CategoryView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	MsgBizs   []string          `json:"msgBizs"`
	Profiles  []CategoryProfile `json:"profiles"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CategoryRegistry 分类服务
type CategoryRegistry interface {
	CategoryLookup
	Create(ctx context.Context, name string, msgBizs []string) (*model.Category, error)
	ListAll(ctx context.Context) ([]CategoryView, error)
}

type categoryRegistry struct {
	categories repository.CategoryRepository
	profiles   repository.ProfileRepository
}

func NewCategoryRegistry(categories repository.CategoryRepository, profiles repository.ProfileRepository) CategoryRegistry {
	return &categoryRegistry{categories: categories, profiles: profiles}
}

func (s *categoryRegistry) Lookup(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get category", err)
	}
	return c, nil
}

func (s *categoryRegistry) Create(ctx context.Context, name string, msgBizs []string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	bizs := make([]string, 0, len(msgBizs))
	for _, b := range msgBizs {
		if b = strings.TrimSpace(b); b != "" {
			bizs = append(bizs, b)
		}
	}
	if name == "" {
		return nil, validationErr("name is required")
	}
	if len(bizs) == 0 {
		return nil, validationErr("msgBizs is required")
	}

	_, err := s.categories.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, ErrDuplicateName
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("get category by name", err)
	}

	c := &model.Category{Name: name, MsgBizs: bizs}
	if err := s.categories.Create(ctx, c); err != nil {
		// 并发创建同名分类时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, storeErr("create category", err)
	}
	logger.Info("category created", zap.String("id", c.ID), zap.String("name", c.Name), zap.Int("msg_bizs", len(bizs)))
	return c, nil
}

func (s *categoryRegistry) ListAll(ctx context.Context) ([]CategoryView, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, storeErr("list categories", err)
	}

	var all []string
	for _, c := range cats {
		all = append(all, c.MsgBizs...)
	}
	profiles, err := s.profiles.ListByMsgBizs(ctx, distinct(all))
	if err != nil {
		return nil, storeErr("list category profiles", err)
	}
	byBiz := make(map[string]*model.Profile, len(profiles))
	for _, p := range profiles {
		if _, ok := byBiz[p.MsgBiz]; !ok {
			byBiz[p.MsgBiz] = p
		}
	}

	out := make([]CategoryView, len(cats))
	for i, c := range cats {
		v := CategoryView{ID: c.ID, Name: c.Name, MsgBizs: c.MsgBizs, Profiles: []CategoryProfile{}, CreatedAt: c.CreatedAt}
		if v.MsgBizs == nil {
			v.MsgBizs = []string{}
		}
		for _, b := range c.MsgBizs {
			if p, ok := byBiz[b]; ok {
				v.Profiles = append(v.Profiles, CategoryProfile{ID: p.ID, MsgBiz: p.MsgBiz, Title: p.Title, Headimg: p.Headimg})
			}
		}
		out[i] = v
	}
	return out, nil
}
