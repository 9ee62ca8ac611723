package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/metrics"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrOrderItemsRequired = errors.New("order items are required")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrOrderNotFound      = errors.New("order not found")
)

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	FindByID(orderID uint) (models.Order, bool, error)
	ListByUser(userID uint) ([]models.Order, error)
}

type OrderProductReader interface {
	FindByIDs(productIDs []uint) ([]models.Product, error)
}

// OrderLine is one requested item; Quantity 0 means 1.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

type OrderService struct {
	orders   OrderRepository
	products OrderProductReader
	log      *logrus.Entry
}

func NewOrderService(orders OrderRepository, products OrderProductReader, logger logrus.FieldLogger) *OrderService {
	return &OrderService{orders: orders, products: products, log: logging.Component(logger, "orders")}
}

func (service *OrderService) Create(userID uint, lines []OrderLine, now time.Time) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, ErrOrderItemsRequired
	}

	productIDs := make([]uint, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return models.Order{}, ErrInvalidQuantity
		}
		if line.ProductID == 0 {
			return models.Order{}, ErrProductUnavailable
		}
		productIDs = append(productIDs, line.ProductID)
	}

	products, err := service.products.FindByIDs(productIDs)
	if err != nil {
		return models.Order{}, fmt.Errorf("load order products: %w", err)
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	order := models.Order{
		UserID:    userID,
		Status:    models.OrderStatusNew,
		Items:     make([]models.OrderItem, 0, len(lines)),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok || !product.IsActive {
			return models.Order{}, ErrProductUnavailable
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductType: product.Type,
			Quantity:    quantity,
			UnitPrice:   product.Price,
		})
	}
	order.CalculateTotal()
	if !order.FitsAmountColumns() {
		return models.Order{}, ErrInvalidQuantity
	}

	if err := service.orders.CreateWithItems(&order); err != nil {
		if errors.Is(err, db.ErrProductsUnavailable) {
			return models.Order{}, ErrProductUnavailable
		}
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	metrics.RecordOrderCreated()
	service.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount.StringFixed(2),
	}).Info("order created")
	return order, nil
}

func (service *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	orders, err := service.orders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetForUser treats orders of other users as missing.
func (service *OrderService) GetForUser(userID uint, orderID uint) (models.Order, error) {
	order, found, err := service.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("load order: %w", err)
	}
	if !found || order.UserID != userID {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}
