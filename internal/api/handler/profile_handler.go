package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/service"
	"github.com/d60-Lab/postwatch/pkg/response"
)

type updateProfileRequest struct {
	Field string `json:"field" binding:"required,profilefield"`
	Value string `json:"value"`
}

// ListProfiles 公众号列表，附带文章统计
// @Summary 查询公众号列表
// @Tags 公众号
// @Produce json
// @Param target query string false "仅重点公众号" Enums(true, false)
// @Param category query string false "分类 ID"
// @Param q query string false "名称关键字"
// @Param page query int false "页码" default(1)
// @Param perPage query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=service.Page[service.ProfileView]}
// @Failure 500 {object} response.Response
// @Router /api/v1/profiles [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	page, err := h.profileService.List(c.Request.Context(), service.ListProfilesParams{
		Target:     c.Query("target") == "true",
		CategoryID: c.Query("category"),
		Q:          c.Query("q"),
		Page:       h.pageRequest(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}

// GetProfile 公众号详情
// @Summary 查询单个公众号
// @Tags 公众号
// @Produce json
// @Param id path string true "公众号ID"
// @Success 200 {object} response.Response{data=model.Profile}
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.profileService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

// UpdateProfile 修改公众号单个字段
// @Summary 修改公众号
// @Tags 公众号
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "公众号ID"
// @Param request body updateProfileRequest true "field 取值 title / headimg / username / desc"
// @Success 200 {object} response.Response{data=model.Profile}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{id} [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.profileService.Update(c.Request.Context(), c.Param("id"), service.ProfilePatch{
		Field: model.ProfileField(req.Field),
		Value: req.Value,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}
