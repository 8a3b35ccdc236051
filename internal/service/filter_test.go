package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/postwatch/internal/model"
)

const catID = "5b2b8f3e9d1c4a0012345678"

// fakeLookup 内存分类表，记录调用次数
type fakeLookup struct {
	cats  map[string]*model.Category
	err   error
	calls int
}

func (f *fakeLookup) Lookup(_ context.Context, id string) (*model.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cats[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func lookupWith(bizs ...string) *fakeLookup {
	return &fakeLookup{cats: map[string]*model.Category{catID: {ID: catID, Name: "c", MsgBizs: bizs}}}
}

func TestResolve_NoSources(t *testing.T) {
	r := NewFilterResolver(nil, lookupWith("A"))
	bf, err := r.Resolve(context.Background(), FilterInput{Target: true})
	require.NoError(t, err)
	assert.Equal(t, BizFilterNone, bf.Kind)
	assert.Nil(t, bf.MsgBizs)
}

func TestResolve_TargetIgnoredUnlessAsserted(t *testing.T) {
	r := NewFilterResolver([]string{"A", "B"}, lookupWith())
	bf, err := r.Resolve(context.Background(), FilterInput{MsgBiz: "C"})
	require.NoError(t, err)
	assert.Equal(t, BizFilter{Kind: BizFilterSet, MsgBizs: []string{"C"}}, bf)
}

func TestResolve_Intersection(t *testing.T) {
	r := NewFilterResolver([]string{"A", "B", "C"}, lookupWith("C", "B", "Z"))
	bf, err := r.Resolve(context.Background(), FilterInput{Target: true, MsgBiz: "B,C,D", CategoryID: catID})
	require.NoError(t, err)
	assert.Equal(t, BizFilter{Kind: BizFilterSet, MsgBizs: []string{"B", "C"}}, bf)
}

func TestResolve_DisjointIsEmpty(t *testing.T) {
	cases := []struct {
		name    string
		targets []string
		cat     []string
		in      FilterInput
	}{
		{"target vs msgBiz", []string{"A"}, nil, FilterInput{Target: true, MsgBiz: "B"}},
		{"msgBiz vs category", nil, []string{"C"}, FilterInput{MsgBiz: "A,B", CategoryID: catID}},
		{"target vs category", []string{"A"}, []string{"B"}, FilterInput{Target: true, CategoryID: catID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewFilterResolver(tc.targets, lookupWith(tc.cat...))
			bf, err := r.Resolve(context.Background(), tc.in)
			require.NoError(t, err)
			assert.Equal(t, BizFilterEmpty, bf.Kind)
		})
	}
}

func TestResolve_CategoryPatternMismatchSkipsLookup(t *testing.T) {
	lookup := lookupWith("A")
	r := NewFilterResolver(nil, lookup)
	for _, id := range []string{"abc", "5b2b8f3e9d1c4a001234567", "5b2b8f3e9d1c4a0012345678x", "5b2b8f3e-9d1c-4a00-1234-5678"} {
		bf, err := r.Resolve(context.Background(), FilterInput{CategoryID: id})
		require.NoError(t, err)
		assert.Equal(t, BizFilterNone, bf.Kind, id)
	}
	assert.Zero(t, lookup.calls)
}

func TestResolve_MissingOrEmptyCategoryIsAbsent(t *testing.T) {
	r := NewFilterResolver(nil, lookupWith())
	bf, err := r.Resolve(context.Background(), FilterInput{MsgBiz: "A", CategoryID: catID})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, bf.MsgBizs)

	r = NewFilterResolver(nil, &fakeLookup{cats: map[string]*model.Category{}})
	bf, err = r.Resolve(context.Background(), FilterInput{MsgBiz: "A", CategoryID: model.NewID()})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, bf.MsgBizs)
}

func TestResolve_LookupErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := NewFilterResolver(nil, &fakeLookup{err: boom})
	_, err := r.Resolve(context.Background(), FilterInput{CategoryID: catID})
	assert.ErrorIs(t, err, boom)
}

func TestIntersect_OrderIndependent(t *testing.T) {
	a := []string{"A", "B", "C", "D"}
	b := []string{"D", "B", "X"}
	c := []string{"B", "D", "D", "Y"}
	want := []string{"B", "D"}

	perms := [][][]string{{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}}
	for _, p := range perms {
		assert.Equal(t, want, Intersect(p...))
	}
	assert.Equal(t, []string{"A"}, Intersect([]string{"A", "A"}))
	assert.Empty(t, Intersect([]string{"A"}, []string{"B"}))
	assert.Nil(t, Intersect())
}

func TestSplitMsgBizs(t *testing.T) {
	assert.Nil(t, SplitMsgBizs(""))
	assert.Empty(t, SplitMsgBizs(" , ,"))
	assert.Equal(t, []string{"A", "B"}, SplitMsgBizs(" A,,B "))
}
