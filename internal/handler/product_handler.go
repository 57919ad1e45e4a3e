package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products のAPI。閲覧は公開、変更は管理者セッション必須。
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	g := e.Group("")
	g.Use(middleware.AdminSession(cfg))

	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.DELETE("/products/:id", h.delete)
	g.PUT("/products/:id/images/reorder", h.reorderImages)
	g.DELETE("/products/:id/model", h.deleteModel)
	g.DELETE("/images/:id", h.deleteImage)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	in, err := bindProductInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := bindProductInput(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

type reorderImagesRequest struct {
	Images []int64 `json:"images"`
}

func (h *ProductHandler) reorderImages(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req reorderImagesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ReorderImages(c.Request().Context(), id, req.Images); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "images reordered"})
}

func (h *ProductHandler) deleteImage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteImage(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image deleted"})
}

func (h *ProductHandler) deleteModel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteModel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "model deleted"})
}

// multipart/formのどちらでも同じ形に受ける。ファイルは任意。
func bindProductInput(c echo.Context) (usecase.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	collectionID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("collectionId")), 10, 64)
	if err != nil {
		return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid collectionId")
	}

	//isActiveは省略時true
	isActive := true
	if v := c.FormValue("isActive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return usecase.ProductInput{}, usecase.NewHTTPError(http.StatusBadRequest, "invalid isActive")
		}
		isActive = b
	}

	in := usecase.ProductInput{
		Name:           c.FormValue("name"),
		Description:    c.FormValue("description"),
		Composition:    c.FormValue("composition"),
		Price:          price,
		CollectionID:   collectionID,
		ModelURL:       c.FormValue("modelUrl"),
		GlbAttribution: c.FormValue("glbAttribution"),
		GlbLink:        c.FormValue("glbLink"),
		IsActive:       isActive,
		Sizes:          splitSizes(c.FormValue("sizes")),
	}

	img, err := readFormFile(c, "imageFile")
	if err != nil {
		return usecase.ProductInput{}, err
	}
	in.Image = img

	mdl, err := readFormFile(c, "modelFile")
	if err != nil {
		return usecase.ProductInput{}, err
	}
	in.Model = mdl

	return in, nil
}

// "S, M,L" → ["S","M","L"]
func splitSizes(raw string) []string {
	parts := strings.Split(raw, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// フォームのファイルを読み込む。未指定ならnil。
func readFormFile(c echo.Context, field string) (*usecase.BlobInput, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		//ファイルなしは許容
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "invalid file")
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "invalid file")
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	return &usecase.BlobInput{Data: data, MimeType: mime}, nil
}
