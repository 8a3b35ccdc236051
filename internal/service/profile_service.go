package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/repository"
	"github.com/d60-Lab/postwatch/pkg/logger"
	"github.com/d60-Lab/postwatch/pkg/metrics"
)

// ListProfilesParams 公众号列表参数；公众号维度只支持 target 与 category
type ListProfilesParams struct {
	Target     bool
	CategoryID string
	Q          string
	Page       PageRequest
}

// ProfilePatch 单字段修改，Field 必须在 model.ProfileField 白名单内
type ProfilePatch struct {
	Field model.ProfileField
	Value string
}

// ProfileService 公众号查询服务
type ProfileService interface {
	List(ctx context.Context, p ListProfilesParams) (Page[ProfileView], error)
	Get(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, id string, patch ProfilePatch) (*model.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	resolver *FilterResolver
	enricher *Enricher
}

func NewProfileService(profiles repository.ProfileRepository, resolver *FilterResolver, enricher *Enricher) ProfileService {
	return &profileService{profiles: profiles, resolver: resolver, enricher: enricher}
}

func (s *profileService) List(ctx context.Context, p ListProfilesParams) (Page[ProfileView], error) {
	bf, err := s.resolver.Resolve(ctx, FilterInput{Target: p.Target, CategoryID: p.CategoryID})
	if err != nil {
		return Page[ProfileView]{}, err
	}
	if bf.Kind == BizFilterEmpty {
		metrics.EmptyIntersections.WithLabelValues("profile").Inc()
		return EmptyPage[ProfileView](p.Page), nil
	}

	q := repository.ProfileQuery{MsgBizs: bf.MsgBizs, Title: p.Q}
	page, err := paginate(ctx, p.Page,
		func(ctx context.Context) (int64, error) {
			n, err := s.profiles.Count(ctx, q)
			return n, storeErr("count profiles", err)
		},
		func(ctx context.Context, offset, limit int) ([]ProfileView, error) {
			rows, err := s.profiles.List(ctx, q, offset, limit)
			if err != nil {
				return nil, storeErr("list profiles", err)
			}
			return projectAll(rows, ProjectProfile), nil
		},
	)
	if err != nil {
		return Page[ProfileView]{}, err
	}
	if err := s.enricher.Enrich(ctx, page.Data); err != nil {
		return Page[ProfileView]{}, err
	}
	return page, nil
}

func (s *profileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, id string, patch ProfilePatch) (*model.Profile, error) {
	col, ok := patch.Field.Column()
	if !ok {
		return nil, validationErr("field %q is not updatable", patch.Field)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.profiles.UpdateColumn(ctx, id, col, patch.Value); err != nil {
		return nil, storeErr("update profile", err)
	}
	logger.Info("profile updated", zap.String("id", id), zap.String("field", string(patch.Field)))
	return s.Get(ctx, id)
}
