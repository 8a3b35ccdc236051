package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		count   int64
		perPage int
		want    int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{3, 2, 2},
		{5, 0, 0},
		{5, math.MaxInt, 1},
		{math.MaxInt64, 1, math.MaxInt64},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, tc.perPage), "%d/%d", tc.count, tc.perPage)
	}
}

func TestParsePageRequest(t *testing.T) {
	assert.Equal(t, PageRequest{Page: 1, PerPage: 20}, ParsePageRequest("", "", 20))
	assert.Equal(t, PageRequest{Page: 3, PerPage: 5}, ParsePageRequest("3", "5", 20))
	assert.Equal(t, PageRequest{Page: 1, PerPage: 50}, ParsePageRequest("abc", "-1", 50))
	assert.Equal(t, PageRequest{Page: 1, PerPage: 20}, ParsePageRequest("0", "0", 0))
}

func TestEmptyPage(t *testing.T) {
	p := EmptyPage[PostView](PageRequest{Page: 7, PerPage: 3})
	assert.Equal(t, Metadata{Count: 0, TotalPages: 0, CurrentPage: 7, PerPage: 3}, p.Metadata)
	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var fetches int
	count := func(context.Context) (int64, error) { return int64(len(items)), nil }
	fetch := func(_ context.Context, offset, limit int) ([]int, error) {
		fetches++
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		return items[offset:end], nil
	}
	ctx := context.Background()

	p, err := paginate(ctx, PageRequest{Page: 2, PerPage: 2}, count, fetch)
	require.NoError(t, err)
	assert.Equal(t, Metadata{Count: 5, TotalPages: 3, CurrentPage: 2, PerPage: 2}, p.Metadata)
	assert.Equal(t, []int{3, 4}, p.Data)

	p, err = paginate(ctx, PageRequest{Page: 9, PerPage: 2}, count, fetch)
	require.NoError(t, err)
	assert.Equal(t, Metadata{Count: 5, TotalPages: 3, CurrentPage: 9, PerPage: 2}, p.Metadata)
	assert.Empty(t, p.Data)
	assert.NotNil(t, p.Data)
	assert.Equal(t, 1, fetches)
}

func TestPaginate_HugePageIsOutOfRange(t *testing.T) {
	var fetched bool
	count := func(context.Context) (int64, error) { return 2, nil }
	fetch := func(context.Context, int, int) ([]int, error) {
		fetched = true
		return []int{1, 2}, nil
	}
	ctx := context.Background()

	// (page-1)*perPage 在 int 上会回绕到 0
	req := ParsePageRequest("4611686018427387905", "4", 20)
	p, err := paginate(ctx, req, count, fetch)
	require.NoError(t, err)
	assert.Equal(t, Metadata{Count: 2, TotalPages: 1, CurrentPage: req.Page, PerPage: 4}, p.Metadata)
	assert.Empty(t, p.Data)
	assert.False(t, fetched)

	p, err = paginate(ctx, PageRequest{Page: 2, PerPage: math.MaxInt}, count, fetch)
	require.NoError(t, err)
	assert.Empty(t, p.Data)
	assert.False(t, fetched)

	p, err = paginate(ctx, PageRequest{Page: 1, PerPage: math.MaxInt}, count, fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, p.Data)
	assert.True(t, fetched)
}

func TestPaginate_Errors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	_, err := paginate(ctx, PageRequest{Page: 1, PerPage: 2},
		func(context.Context) (int64, error) { return 0, boom },
		func(context.Context, int, int) ([]int, error) { return nil, nil })
	assert.ErrorIs(t, err, boom)

	_, err = paginate(ctx, PageRequest{Page: 1, PerPage: 2},
		func(context.Context) (int64, error) { return 3, nil },
		func(context.Context, int, int) ([]int, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestSortWayOrderBy(t *testing.T) {
	assert.Equal(t, []string{"publish_at ASC NULLS FIRST", "msg_idx ASC NULLS FIRST", "id ASC"}, SortPublishAtAsc.OrderBy())
	assert.Equal(t, []string{"update_num_at DESC NULLS LAST", "id ASC"}, SortUpdateNumAtDesc.OrderBy())
	assert.Equal(t, []string{"update_num_at ASC NULLS FIRST", "id ASC"}, SortUpdateNumAtAsc.OrderBy())
	for _, s := range []SortWay{"", "bogus", "-publishAt"} {
		assert.Equal(t, SortPublishAtDesc.OrderBy(), s.OrderBy(), string(s))
		assert.Equal(t, SortPublishAtDesc, s.Resolve())
	}
}
