package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type checkoutItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
}

type checkoutRequest struct {
	Items   []checkoutItemRequest `json:"items"`
	Address string                `json:"address"`
	Email   string                `json:"email"`
}

type orderUpdateRequest struct {
	Status      string `json:"status"`
	Address     string `json:"address"`
	ShippedAt   string `json:"shippedAt"`
	DeliveredAt string `json:"deliveredAt"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//注文の作成と一覧は公開、ステータス更新は管理者のみ
	e.GET("/orders", h.list)
	e.POST("/orders", h.create)

	g := e.Group("")
	g.Use(middleware.AdminSession(cfg))
	g.PUT("/orders/:id", h.update)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CheckoutItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
		})
	}

	out, err := h.uc.Checkout(c.Request().Context(), usecase.CheckoutInput{
		Items:   items,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req orderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.UpdateOrderInput{
		Status:  req.Status,
		Address: req.Address,
	}
	if req.ShippedAt != "" {
		t, err := time.Parse(time.RFC3339, req.ShippedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid shippedAt"})
		}
		in.ShippedAt = &t
	}
	if req.DeliveredAt != "" {
		t, err := time.Parse(time.RFC3339, req.DeliveredAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid deliveredAt"})
		}
		in.DeliveredAt = &t
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
