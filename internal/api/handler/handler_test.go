package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

type stubPosts struct {
	got service.ListPostsParams
	err error
}

func (s *stubPosts) List(_ context.Context, p service.ListPostsParams) (service.Page[service.PostView], error) {
	s.got = p
	if s.err != nil {
		return service.Page[service.PostView]{}, s.err
	}
	return service.EmptyPage[service.PostView](p.Page), nil
}

func (s *stubPosts) Get(context.Context, string) (*model.Post, error) { return nil, s.err }

type stubProfiles struct {
	patch service.ProfilePatch
	err   error
}

func (s *stubProfiles) List(_ context.Context, p service.ListProfilesParams) (service.Page[service.ProfileView], error) {
	return service.EmptyPage[service.ProfileView](p.Page), s.err
}

func (s *stubProfiles) Get(context.Context, string) (*model.Profile, error) { return nil, s.err }

func (s *stubProfiles) Update(_ context.Context, id string, patch service.ProfilePatch) (*model.Profile, error) {
	s.patch = patch
	if s.err != nil {
		return nil, s.err
	}
	return &model.Profile{ID: id}, nil
}

type stubCategories struct {
	name    string
	msgBizs []string
	err     error
}

func (s *stubCategories) Lookup(context.Context, string) (*model.Category, error) { return nil, s.err }

func (s *stubCategories) Create(_ context.Context, name string, msgBizs []string) (*model.Category, error) {
	s.name, s.msgBizs = name, msgBizs
	if s.err != nil {
		return nil, s.err
	}
	return &model.Category{ID: model.NewID(), Name: name, MsgBizs: msgBizs}, nil
}

func (s *stubCategories) ListAll(context.Context) ([]service.CategoryView, error) { return nil, s.err }

func newTestEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/posts", h.ListPosts)
	r.GET("/posts/:id", h.GetPost)
	r.GET("/profiles", h.ListProfiles)
	r.PUT("/profiles/:id", h.UpdateProfile)
	r.POST("/categories", h.CreateCategory)
	r.GET("/categories", h.ListCategories)
	return r
}

func serve(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPosts_QueryParsing(t *testing.T) {
	posts := &stubPosts{}
	r := newTestEngine(NewHandler(posts, &stubProfiles{}, &stubCategories{}, 30))

	w := serve(r, http.MethodGet, "/posts?target=true&mainData=false&msgBiz=A,B&category=c1&sortWay=publishAt&q=go&page=2&perPage=x", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ListPostsParams{
		Filter:   service.FilterInput{Target: true, MsgBiz: "A,B", CategoryID: "c1"},
		MainData: service.ParseMainData("false"),
		SortWay:  service.SortPublishAtAsc,
		Q:        "go",
		Page:     service.PageRequest{Page: 2, PerPage: 30},
	}, posts.got)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"metadata":{"count":0,"totalPages":0,"currentPage":2,"perPage":30},"data":[]}}`, w.Body.String())

	serve(r, http.MethodGet, "/posts?target=yes&mainData=1", "", "")
	assert.False(t, posts.got.Filter.Target)
	assert.Nil(t, posts.got.MainData)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{errors.Join(service.ErrValidation, errors.New("bad")), http.StatusBadRequest},
		{service.ErrDuplicateName, http.StatusConflict},
		{&service.StoreError{Op: "count posts", Err: errors.New("conn refused")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := newTestEngine(NewHandler(&stubPosts{err: tc.err}, &stubProfiles{}, &stubCategories{err: tc.err}, 20))
		assert.Equal(t, tc.code, serve(r, http.MethodGet, "/posts/abc", "", "").Code, tc.err.Error())
		assert.Equal(t, tc.code, serve(r, http.MethodGet, "/categories", "", "").Code, tc.err.Error())
	}

	r := newTestEngine(NewHandler(&stubPosts{err: errors.New("secret dsn leaked")}, &stubProfiles{}, &stubCategories{}, 20))
	w := serve(r, http.MethodGet, "/posts", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestUpdateProfile_FieldWhitelist(t *testing.T) {
	profiles := &stubProfiles{}
	r := newTestEngine(NewHandler(&stubPosts{}, profiles, &stubCategories{}, 20))

	for _, f := range []string{"title", "headimg", "username", "desc"} {
		w := serve(r, http.MethodPut, "/profiles/x", "application/json", `{"field":"`+f+`","value":"v"}`)
		assert.Equal(t, http.StatusOK, w.Code, f)
		assert.Equal(t, model.ProfileField(f), profiles.patch.Field)
	}
	for _, body := range []string{`{"field":"msgBiz","value":"v"}`, `{"value":"v"}`, `not json`} {
		w := serve(r, http.MethodPut, "/profiles/x", "application/json", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCreateCategory_Sources(t *testing.T) {
	cats := &stubCategories{}
	r := newTestEngine(NewHandler(&stubPosts{}, &stubProfiles{}, cats, 20))

	w := serve(r, http.MethodPost, "/categories?name=q&msgBizs=A,,B", "", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "q", cats.name)
	assert.Equal(t, []string{"A", "B"}, cats.msgBizs)

	w = serve(r, http.MethodPost, "/categories", "application/x-www-form-urlencoded", "name=f&msgBizs=C")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "f", cats.name)
	assert.Equal(t, []string{"C"}, cats.msgBizs)

	w = serve(r, http.MethodPost, "/categories?name=fromquery", "application/json", `{"msgBizs":"D, E"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "fromquery", cats.name)
	assert.Equal(t, []string{"D", "E"}, cats.msgBizs)
}
