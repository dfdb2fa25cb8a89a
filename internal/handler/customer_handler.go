package handler

import (
	"net/http"

	"grocery/internal/config"
	"grocery/internal/middleware"
	"grocery/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 顧客プロフィールと管理者向け顧客管理
type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

// DI
func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//登録フォームの事前チェック用（認証不要）
	e.GET("/customers/check-email", h.checkEmail)

	me := e.Group("/customers/me")
	me.Use(middleware.AuthJWT(cfg))
	me.GET("", h.profile)
	me.PUT("", h.updateProfile)

	admin := e.Group("/admin/customers")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.list)
	admin.GET("/search", h.search)
	admin.DELETE("/:id", h.delete)
}

type UpdateCustomerRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`

	//空なら据え置き
	Password string `json:"password,omitempty"`
}

func (h *CustomerHandler) profile(c echo.Context) error {
	customerID, ok := getSubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetProfile(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) updateProfile(c echo.Context) error {
	customerID, ok := getSubjectFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), customerID, usecase.UpdateCustomerInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) list(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CustomerHandler) search(c echo.Context) error {
	items, err := h.uc.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CustomerHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *CustomerHandler) checkEmail(c echo.Context) error {
	exists, err := h.uc.EmailExists(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}
