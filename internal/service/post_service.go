package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/repository"
	"github.com/d60-Lab/postwatch/pkg/metrics"
)

// ListPostsParams 文章列表参数
type ListPostsParams struct {
	Filter   FilterInput
	MainData *bool // nil 不限；true 仅有阅读数据；false 仅无阅读数据
	SortWay  SortWay
	Q        string
	Page     PageRequest
}

// ParseMainData 只认 "true" / "false"，其它取值视为不过滤
func ParseMainData(s string) *bool {
	switch s {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// PostService 文章查询服务
type PostService interface {
	List(ctx context.Context, p ListPostsParams) (Page[PostView], error)
	Get(ctx context.Context, id string) (*model.Post, error)
}

type postService struct {
	posts    repository.PostRepository
	resolver *FilterResolver
}

func NewPostService(posts repository.PostRepository, resolver *FilterResolver) PostService {
	return &postService{posts: posts, resolver: resolver}
}

func (s *postService) List(ctx context.Context, p ListPostsParams) (Page[PostView], error) {
	bf, err := s.resolver.Resolve(ctx, p.Filter)
	if err != nil {
		return Page[PostView]{}, err
	}
	if bf.Kind == BizFilterEmpty {
		metrics.EmptyIntersections.WithLabelValues("post").Inc()
		return EmptyPage[PostView](p.Page), nil
	}

	q := repository.PostQuery{
		MsgBizs:    bf.MsgBizs,
		Title:      p.Q,
		HasReadNum: p.MainData,
		OrderBy:    p.SortWay.OrderBy(),
	}
	return paginate(ctx, p.Page,
		func(ctx context.Context) (int64, error) {
			n, err := s.posts.Count(ctx, q)
			return n, storeErr("count posts", err)
		},
		func(ctx context.Context, offset, limit int) ([]PostView, error) {
			rows, err := s.posts.List(ctx, q, offset, limit)
			if err != nil {
				return nil, storeErr("list posts", err)
			}
			return projectAll(rows, ProjectPost), nil
		},
	)
}

func (s *postService) Get(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get post", err)
	}
	return p, nil
}
