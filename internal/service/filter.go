package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/d60-Lab/postwatch/internal/model"
)

// BizFilterKind 公众号维度的过滤结果
type BizFilterKind int

const (
	// BizFilterNone 没有任何公众号来源集合，不限制
	BizFilterNone BizFilterKind = iota
	// BizFilterSet 限定在 MsgBizs 内
	BizFilterSet
	// BizFilterEmpty 各来源交集为空，无需查库
	BizFilterEmpty
)

// BizFilter 解析后的公众号过滤条件
type BizFilter struct {
	Kind    BizFilterKind
	MsgBizs []string
}

// FilterInput 请求里与公众号维度相关的参数
type FilterInput struct {
	Target     bool
	MsgBiz     string // 逗号分隔
	CategoryID string
}

// CategoryLookup 按 id 查分类，不存在时返回 ErrNotFound
type CategoryLookup interface {
	Lookup(ctx context.Context, id string) (*model.Category, error)
}

// FilterResolver 把 target / msgBiz / category 三个来源求交集
type FilterResolver struct {
	targets    []string
	categories CategoryLookup
}

// NewFilterResolver targets 为启动时配置的重点公众号白名单
func NewFilterResolver(targets []string, categories CategoryLookup) *FilterResolver {
	return &FilterResolver{targets: append([]string(nil), targets...), categories: categories}
}

func (r *FilterResolver) Resolve(ctx context.Context, in FilterInput) (BizFilter, error) {
	var sources [][]string

	if in.Target && len(r.targets) > 0 {
		sources = append(sources, r.targets)
	}
	if bizs := SplitMsgBizs(in.MsgBiz); len(bizs) > 0 {
		sources = append(sources, bizs)
	}
	if in.CategoryID != "" && model.IsObjectID(in.CategoryID) {
		c, err := r.categories.Lookup(ctx, in.CategoryID)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return BizFilter{}, err
		case c != nil && len(c.MsgBizs) > 0:
			sources = append(sources, c.MsgBizs)
		}
	}

	if len(sources) == 0 {
		return BizFilter{Kind: BizFilterNone}, nil
	}
	bizs := Intersect(sources...)
	if len(bizs) == 0 {
		return BizFilter{Kind: BizFilterEmpty}, nil
	}
	return BizFilter{Kind: BizFilterSet, MsgBizs: bizs}, nil
}

// Intersect 求多个集合的交集，结果去重并排序，与参数顺序无关
func Intersect(sets ...[]string) []string {
	if len(sets) == 0 {
		return nil
	}
	acc := toSet(sets[0])
	for _, s := range sets[1:] {
		next := toSet(s)
		for k := range acc {
			if _, ok := next[k]; !ok {
				delete(acc, k)
			}
		}
	}
	return sortedKeys(acc)
}

func distinct(s []string) []string { return sortedKeys(toSet(s)) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toSet(s []string) map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}

// SplitMsgBizs 拆分逗号分隔的 msgBiz 列表，丢弃空项
func SplitMsgBizs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
