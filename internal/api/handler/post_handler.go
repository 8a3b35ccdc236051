package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postwatch/internal/service"
	"github.com/d60-Lab/postwatch/pkg/response"
)

// ListPosts 文章列表
// @Summary 查询文章列表
// @Description 多个公众号来源（target / msgBiz / category）取交集后再分页
// @Tags 文章
// @Produce json
// @Param target query string false "仅重点公众号" Enums(true, false)
// @Param mainData query string false "是否有阅读数据" Enums(true, false)
// @Param msgBiz query string false "公众号 msgBiz，逗号分隔"
// @Param category query string false "分类 ID"
// @Param sortWay query string false "排序方式" Enums(-updateNumAt, updateNumAt, -publishAt, publishAt) default(-publishAt)
// @Param q query string false "标题关键字"
// @Param page query int false "页码" default(1)
// @Param perPage query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=service.Page[service.PostView]}
// @Failure 500 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := h.postService.List(c.Request.Context(), service.ListPostsParams{
		Filter: service.FilterInput{
			Target:     c.Query("target") == "true",
			MsgBiz:     c.Query("msgBiz"),
			CategoryID: c.Query("category"),
		},
		MainData: service.ParseMainData(c.Query("mainData")),
		SortWay:  service.SortWay(c.Query("sortWay")),
		Q:        c.Query("q"),
		Page:     h.pageRequest(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}

// GetPost 文章详情
// @Summary 查询单篇文章
// @Tags 文章
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}
