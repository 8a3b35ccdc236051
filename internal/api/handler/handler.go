package handler

import (
	"errors"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/service"
	"github.com/d60-Lab/postwatch/pkg/response"
)

// Handler HTTP 处理器
type Handler struct {
	postService     service.PostService
	profileService  service.ProfileService
	categoryService service.CategoryRegistry
	defaultPerPage  int
}

func NewHandler(
	postService service.PostService,
	profileService service.ProfileService,
	categoryService service.CategoryRegistry,
	defaultPerPage int,
) *Handler {
	registerValidators()
	return &Handler{
		postService:     postService,
		profileService:  profileService,
		categoryService: categoryService,
		defaultPerPage:  defaultPerPage,
	}
}

var validatorsOnce sync.Once

// registerValidators 在 gin 默认的 validator 上注册自定义规则
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("profilefield", func(fl validator.FieldLevel) bool {
			_, ok := model.ProfileField(fl.Field().String()).Column()
			return ok
		})
	})
}

func (h *Handler) pageRequest(c *gin.Context) service.PageRequest {
	return service.ParsePageRequest(c.Query("page"), c.Query("perPage"), h.defaultPerPage)
}

// fail 把 service 层错误映射为 HTTP 响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "not found")
	case errors.Is(err, service.ErrDuplicateName):
		response.Conflict(c, err.Error())
	default:
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetRequest(c.Request)
			scope.SetTag("request_id", c.GetString("request_id"))
			sentry.CaptureException(err)
		})
		response.InternalError(c, err)
	}
}
