package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

var baseTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func at(h int) *time.Time { return ptr(baseTime.Add(time.Duration(h) * time.Hour)) }

func seedPosts(t *testing.T, repo PostRepository, posts ...*model.Post) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), posts...))
}

func ids(posts []*model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestPostRepository_FilterDimensions(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedPosts(t, repo,
		&model.Post{ID: "p1", MsgBiz: "A", Title: "Go 并发实践", ReadNum: ptr(int64(10)), PublishAt: at(1)},
		&model.Post{ID: "p2", MsgBiz: "A", Title: "100% 覆盖率", PublishAt: at(2)},
		&model.Post{ID: "p3", MsgBiz: "B", Title: "go_modules 指南", ReadNum: ptr(int64(0)), PublishAt: at(3)},
		&model.Post{ID: "p4", MsgBiz: "C", Title: "Rust", PublishAt: at(4)},
	)

	cases := []struct {
		name string
		q    PostQuery
		want []string
	}{
		{"no filter", PostQuery{}, []string{"p1", "p2", "p3", "p4"}},
		{"msg biz set", PostQuery{MsgBizs: []string{"A", "C"}}, []string{"p1", "p2", "p4"}},
		{"title case insensitive", PostQuery{Title: "GO"}, []string{"p1", "p3"}},
		{"percent is literal", PostQuery{Title: "100%"}, []string{"p2"}},
		{"underscore is literal", PostQuery{Title: "o_m"}, []string{"p3"}},
		{"bare percent", PostQuery{Title: "%"}, []string{"p2"}},
		{"bare underscore", PostQuery{Title: "_"}, []string{"p3"}},
		{"has read num", PostQuery{HasReadNum: ptr(true)}, []string{"p1", "p3"}},
		{"no read num", PostQuery{HasReadNum: ptr(false)}, []string{"p2", "p4"}},
		{"combined", PostQuery{MsgBizs: []string{"A", "B"}, Title: "go", HasReadNum: ptr(true)}, []string{"p1", "p3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.q.OrderBy = []string{"id ASC"}
			cnt, err := repo.Count(ctx, tc.q)
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), cnt)

			list, err := repo.List(ctx, tc.q, 0, 10)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(list))
		})
	}
}

func TestPostRepository_TitleNonASCII(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedPosts(t, repo,
		&model.Post{ID: "w1", MsgBiz: "A", Title: "ＡＩ周报"},
		&model.Post{ID: "w2", MsgBiz: "A", Title: "ÉCOLE News"},
		&model.Post{ID: "w3", MsgBiz: "A", Title: "普通标题"},
	)

	for q, want := range map[string][]string{
		"ＡＩ周报":  {"w1"},
		"ＡＩ":    {"w1"},
		"ÉCOLE": {"w2"},
		"news":  {"w2"},
		"É":     {"w2"},
	} {
		list, err := repo.List(ctx, PostQuery{Title: q, OrderBy: []string{"id ASC"}}, 0, 10)
		require.NoError(t, err, q)
		assert.Equal(t, want, ids(list), q)

		cnt, err := repo.Count(ctx, PostQuery{Title: q})
		require.NoError(t, err, q)
		assert.EqualValues(t, len(want), cnt, q)
	}
}

func TestPostRepository_ListPaginatesAndPreloadsProfile(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	require.NoError(t, NewProfileRepository(db).Create(ctx, &model.Profile{MsgBiz: "A", Title: "号A", Headimg: "http://img/a"}))
	seedPosts(t, repo,
		&model.Post{ID: "p1", MsgBiz: "A", PublishAt: at(3)},
		&model.Post{ID: "p2", MsgBiz: "A", PublishAt: at(2)},
		&model.Post{ID: "p3", MsgBiz: "Z", PublishAt: at(1)},
	)

	q := PostQuery{OrderBy: []string{"publish_at DESC NULLS LAST"}}
	page1, err := repo.List(ctx, q, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(page1))
	require.NotNil(t, page1[0].Profile)
	assert.Equal(t, "号A", page1[0].Profile.Title)

	page2, err := repo.List(ctx, q, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, ids(page2))
	assert.Nil(t, page2[0].Profile)

	page3, err := repo.List(ctx, q, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestPostRepository_NullOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedPosts(t, repo,
		&model.Post{ID: "n1", MsgBiz: "A"},
		&model.Post{ID: "t1", MsgBiz: "A", UpdateNumAt: at(1)},
		&model.Post{ID: "t2", MsgBiz: "A", UpdateNumAt: at(2)},
	)

	desc, err := repo.List(ctx, PostQuery{OrderBy: []string{"update_num_at DESC NULLS LAST"}}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t1", "n1"}, ids(desc))

	asc, err := repo.List(ctx, PostQuery{OrderBy: []string{"update_num_at ASC NULLS FIRST"}}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "t1", "t2"}, ids(asc))
}

func TestPostRepository_Stats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedPosts(t, repo,
		&model.Post{MsgBiz: "A", PublishAt: at(5), ReadNum: ptr(int64(1))},
		&model.Post{MsgBiz: "A", PublishAt: at(1)},
		&model.Post{MsgBiz: "A"},
		&model.Post{MsgBiz: "B", PublishAt: at(9), ReadNum: ptr(int64(3))},
	)

	st, err := repo.Stats(ctx, "A")
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.AllCount)
	assert.EqualValues(t, 1, st.HasDataCount)
	require.NotNil(t, st.Newest)
	require.NotNil(t, st.Oldest)
	assert.True(t, st.Newest.Equal(*at(5)))
	assert.True(t, st.Oldest.Equal(*at(1)))

	empty, err := repo.Stats(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, PostStats{}, empty)
}

func TestPostRepository_GetByID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	p := &model.Post{MsgBiz: "A", Title: "t"}
	seedPosts(t, repo, p)
	require.True(t, model.IsObjectID(p.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)

	_, err = repo.GetByID(ctx, model.NewID())
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, EscapeLike(`50%_off\`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
