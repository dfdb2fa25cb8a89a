package handler

import (
	"errors"
	"net/http"
	"strconv"

	"grocery/internal/usecase"
	"grocery/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseの型付きエラーをHTTPステータスへ写す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message})
	}

	var nf *usecase.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
	}

	var is *usecase.InsufficientStockError
	if errors.As(err, &is) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: is.Error()})
	}

	var it *usecase.InvalidTransitionError
	if errors.As(err, &it) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: it.Error()})
	}

	if errors.Is(err, usecase.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}

	//補償解放の失敗は在庫不整合の可能性。必ずログに残す
	var ic *usecase.InconsistencyError
	if errors.As(err, &ic) {
		logger.Log.Error("inventory inconsistency",
			zap.Int64("product_id", ic.ProductID),
			zap.Int64("quantity", ic.Quantity),
			zap.Error(ic.Err),
		)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	//500
	logger.Log.Error("request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/search", h.search)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	//available=true で販売可能のみに絞る
	if c.QueryParam("available") == "true" {
		items, err := h.uc.ListAvailable(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, items)
	}

	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) search(c echo.Context) error {
	items, err := h.uc.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
