package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 固定の配送料
var deliveryPrice = decimal.RequireFromString("15.00")

type OrderUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CheckoutItemInput struct {
	ProductID int64
	Quantity  int64
	Size      string
}

type CheckoutInput struct {
	Items   []CheckoutItemInput
	Address string
	Email   string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Size      *string         `json:"size"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderOutput struct {
	ID                 int64             `json:"id"`
	Number             string            `json:"number"`
	Address            string            `json:"address"`
	Email              string            `json:"email"`
	Status             string            `json:"status"`
	TotalProductsPrice decimal.Decimal   `json:"total_products_price"`
	DeliveryPrice      decimal.Decimal   `json:"delivery_price"`
	CreatedAt          time.Time         `json:"created_at"`
	ShippedAt          *time.Time        `json:"shipped_at"`
	DeliveredAt        *time.Time        `json:"delivered_at"`
	Items              []OrderItemOutput `json:"items"`
}

// Checkoutはカート内容を検証して注文を確定する。
// 単価は必ずストアから引き直す。クライアントの価格は一切信用しない。
func (u *OrderUsecase) Checkout(ctx context.Context, in CheckoutInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "no items in order")
	}
	if strings.TrimSpace(in.Address) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "email is required")
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	var out OrderOutput

	//注文処理はトランザクション。どれか1つでも失敗したら何も残さない。
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product with id %d not found", it.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("product with id %d not available", it.ProductID))
			}

			//商品名と単価はここでスナップショットする
			item := model.OrderItem{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				ProductName: p.Name,
				UnitPrice:   p.Price,
			}
			if s := strings.TrimSpace(it.Size); s != "" {
				item.Size = &s
			}
			orderItems = append(orderItems, item)

			total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}

		now := time.Now()
		order := model.Order{
			Number:             uuid.NewString(),
			Address:            in.Address,
			Email:              in.Email,
			Status:             model.OrderStatusPending,
			TotalProductsPrice: total,
			DeliveryPrice:      deliveryPrice,
			CreatedAt:          now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		for i := range orderItems {
			orderItems[i].OrderID = orderID
		}
		out = toOrderOutput(order, orderItems)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type UpdateOrderInput struct {
	Status      string
	Address     string
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// UpdateOrderは管理者によるステータス更新。
// PENDING→PAID→COMPLETED、PENDING/PAIDからはCANCELEDにも遷移できる。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	switch newStatus {
	case "PENDING", "PAID", "COMPLETED", "CANCELED":
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := checkStatusTransition(o.Status, model.OrderStatus(newStatus)); err != nil {
			return err
		}

		o.Status = model.OrderStatus(newStatus)
		if strings.TrimSpace(in.Address) != "" {
			o.Address = in.Address
		}
		o.ShippedAt = in.ShippedAt
		o.DeliveredAt = in.DeliveredAt

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 許可される遷移だけ通す。同一ステータスは何もしない扱いで許可。
func checkStatusTransition(from model.OrderStatus, to model.OrderStatus) error {
	if from == to {
		return nil
	}

	switch from {
	case model.OrderStatusPending:
		if to == model.OrderStatusPaid || to == model.OrderStatusCanceled {
			return nil
		}
	case model.OrderStatusPaid:
		if to == model.OrderStatusCompleted || to == model.OrderStatusCanceled {
			return nil
		}
	}

	return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot change %s order to %s", from, to))
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			Size:      it.Size,
			UnitPrice: it.UnitPrice,
		})
	}

	return OrderOutput{
		ID:                 o.ID,
		Number:             o.Number,
		Address:            o.Address,
		Email:              o.Email,
		Status:             string(o.Status),
		TotalProductsPrice: o.TotalProductsPrice,
		DeliveryPrice:      o.DeliveryPrice,
		CreatedAt:          o.CreatedAt,
		ShippedAt:          o.ShippedAt,
		DeliveredAt:        o.DeliveredAt,
		Items:              outItems,
	}
}
