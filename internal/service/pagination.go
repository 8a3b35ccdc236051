package service

import (
	"context"
	"strconv"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// PageRequest 1 起始的页码与每页条数
type PageRequest struct {
	Page    int
	PerPage int
}

// ParsePageRequest 解析字符串参数；缺省、非数字或小于 1 时取默认值
func ParsePageRequest(page, perPage string, defaultPerPage int) PageRequest {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	return PageRequest{
		Page:    positiveOr(page, DefaultPage),
		PerPage: positiveOr(perPage, defaultPerPage),
	}
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// Offset 仅在 Page 不超过总页数时使用，此时结果不超过 count
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// Metadata 分页元信息
type Metadata struct {
	Count       int64 `json:"count"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
}

// Page 分页结果；Data 永远不是 nil，序列化为 []
type Page[T any] struct {
	Metadata Metadata `json:"metadata"`
	Data     []T      `json:"data"`
}

// EmptyPage 交集为空时直接返回的空页
func EmptyPage[T any](req PageRequest) Page[T] {
	req = req.normalize()
	return Page[T]{
		Metadata: Metadata{CurrentPage: req.Page, PerPage: req.PerPage},
		Data:     []T{},
	}
}

// TotalPages ceil(count / perPage)
func TotalPages(count int64, perPage int) int64 {
	if perPage < 1 || count <= 0 {
		return 0
	}
	return (count-1)/int64(perPage) + 1
}

// paginate 先 count 再按 offset/limit 取数据；页码超出范围时返回空 Data
func paginate[T any](
	ctx context.Context,
	req PageRequest,
	count func(ctx context.Context) (int64, error),
	fetch func(ctx context.Context, offset, limit int) ([]T, error),
) (Page[T], error) {
	req = req.normalize()
	total, err := count(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	page := Page[T]{
		Metadata: Metadata{
			Count:       total,
			TotalPages:  TotalPages(total, req.PerPage),
			CurrentPage: req.Page,
			PerPage:     req.PerPage,
		},
		Data: []T{},
	}
	// 先比页码再算 offset，超大页码不会让乘法溢出回到第一页
	if int64(req.Page) > page.Metadata.TotalPages {
		return page, nil
	}
	rows, err := fetch(ctx, req.Offset(), req.PerPage)
	if err != nil {
		return Page[T]{}, err
	}
	if rows != nil {
		page.Data = rows
	}
	return page, nil
}
