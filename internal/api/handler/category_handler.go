package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postwatch/internal/service"
	"github.com/d60-Lab/postwatch/pkg/response"
)

// msgBizs 在 query / form / JSON 中都是逗号分隔的字符串
type createCategoryRequest struct {
	Name    string `form:"name" json:"name"`
	MsgBizs string `form:"msgBizs" json:"msgBizs"`
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags 分类
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param name query string false "分类名称"
// @Param msgBizs query string false "公众号 msgBiz，逗号分隔"
// @Param request body createCategoryRequest false "也可以放在请求体里"
// @Success 201 {object} response.Response{data=model.Category}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	cat, err := h.categoryService.Create(c.Request.Context(), req.Name, service.SplitMsgBizs(req.MsgBizs))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, cat)
}

// ListCategories 分类列表
// @Summary 查询全部分类及其公众号
// @Tags 分类
// @Produce json
// @Success 200 {object} response.Response{data=[]service.CategoryView}
// @Failure 500 {object} response.Response
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.categoryService.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}
