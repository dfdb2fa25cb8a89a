package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"grocery/internal/config"
	"grocery/internal/domain/model"
	"grocery/internal/middleware"
	repo "grocery/internal/repository"
	"grocery/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/orders をまとめる
type AdminOrderHandler struct {
	orders  *usecase.OrderUsecase
	reports *usecase.ReportUsecase
}

// DI
func NewAdminOrderHandler(orders *usecase.OrderUsecase, reports *usecase.ReportUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders, reports: reports}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin/orders")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("", h.list)
	admin.GET("/statistics", h.statistics)
	admin.PUT("/:id/status", h.updateStatus)
	admin.DELETE("/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	f := repo.AdminOrderListFilter{Page: 1, Limit: 50}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		f.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = l
	}
	f.Status = strings.TrimSpace(c.QueryParam("status"))
	if v := strings.TrimSpace(c.QueryParam("customer_id")); v != "" {
		f.CustomerID = &v
	}
	//期間はRFC3339で受ける
	if t, ok := parseDateTimeRFC3339(c.QueryParam("from")); ok {
		f.From = t
	}
	if t, ok := parseDateTimeRFC3339(c.QueryParam("to")); ok {
		f.To = t
	}

	outs, total, err := h.reports.ListAdmin(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": outs,
		"total": total,
		"page":  f.Page,
		"limit": f.Limit,
	})
}

func (h *AdminOrderHandler) statistics(c echo.Context) error {
	stats, err := h.reports.Statistics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getAdminIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	newStatus := model.OrderStatus(strings.TrimSpace(req.Status))
	if err := h.orders.TransitionStatus(c.Request().Context(), adminID, orderID, newStatus); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	adminID, ok := getAdminIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.orders.DeleteOrder(c.Request().Context(), adminID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

// 期間パラメータでtime.Timeが必要なら、ここでtime.Parseして渡す
func parseDateTimeRFC3339(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
