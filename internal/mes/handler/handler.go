package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handlers 处理器集合
type Handlers struct {
	Auth          *AuthHandler
	Dashboard     *DashboardHandler
	Inventory     *InventoryHandler
	Catalog       *CatalogHandler
	Manufacturing *ManufacturingHandler
	Quality       *QualityHandler
	Machine       *MachineHandler
	Planning      *PlanningHandler
	ShopFloor     *ShopFloorHandler
	Export        *ExportHandler
	SSE           *SSEHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, hub *sse.Hub, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Auth:          NewAuthHandler(svc.Auth),
		Dashboard:     NewDashboardHandler(svc.Dashboard),
		Inventory:     NewInventoryHandler(svc.Inventory),
		Catalog:       NewCatalogHandler(svc.Catalog),
		Manufacturing: NewManufacturingHandler(svc.Manufacturing),
		Quality:       NewQualityHandler(svc.Quality),
		Machine:       NewMachineHandler(svc.Machine),
		Planning:      NewPlanningHandler(svc.Planning),
		ShopFloor:     NewShopFloorHandler(svc.ShopFloor),
		Export:        NewExportHandler(svc.Export, logger),
		SSE:           NewSSEHandler(hub),
	}
}

// ErrorResponse body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK 成功响应, the body is the bare payload
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Fail maps a service error onto its status code
func Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBadInput):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		Error(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON decodes the body into obj and reports a 400 on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, bindingMessage(err))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "gt", "gte":
			return fmt.Sprintf("%s must be %s %s", fe.Field(), comparison[fe.Tag()], fe.Param())
		default:
			return fmt.Sprintf("Invalid %s: %v", fe.Field(), fe.Value())
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return "Invalid " + typeErr.Field
	}
	if errors.Is(err, io.EOF) {
		return "Request body is required"
	}
	return "Invalid request body"
}

var comparison = map[string]string{"gt": "greater than", "gte": "at least"}

// queryInt reads an optional integer query parameter; absent means 0
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		BadRequest(c, "Invalid "+name+": "+raw)
		return 0, false
	}
	return v, true
}

// actor the display name recorded against mutations
func actor(c *gin.Context) string {
	return middleware.ActorName(c, service.DefaultActor)
}
