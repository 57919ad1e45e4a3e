package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 画像・3Dモデルのバイト列配信。
type BlobHandler struct {
	uc *usecase.BlobUsecase
}

// DI
func NewBlobHandler(uc *usecase.BlobUsecase) *BlobHandler {
	return &BlobHandler{uc: uc}
}

func (h *BlobHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/images/:id", h.image)
	e.GET("/models/:id", h.model)
}

func (h *BlobHandler) image(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.FetchImage(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, out.MimeType, out.Data)
}

func (h *BlobHandler) model(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.FetchModel(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, out.MimeType, out.Data)
}
