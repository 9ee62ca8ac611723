package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/logging"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const DefaultPrimaryAdminEmail = "admin@dailymood.com"

var (
	ErrPrimaryAdminProtected   = errors.New("primary admin cannot be demoted")
	ErrLastAdmin               = errors.New("cannot remove the last admin")
	ErrSelfDelete              = errors.New("admins cannot delete their own account")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

var orderStatusTransitions = map[string][]string{
	models.OrderStatusNew:        {models.OrderStatusProcessing, models.OrderStatusCompleted, models.OrderStatusCanceled},
	models.OrderStatusProcessing: {models.OrderStatusCompleted, models.OrderStatusCanceled},
}

type AdminUserRepository interface {
	List() ([]models.User, error)
	FindByID(userID uint) (models.User, error)
	CountUsers() (int64, error)
	CountPremium(now time.Time) (int64, error)
	UpdateByID(userID uint, updates map[string]any) error
	DemoteAdmin(userID uint) (bool, error)
	DeleteAccountAndRelatedData(userID uint) error
}

type AdminOrderRepository interface {
	ListAll(status string) ([]models.Order, error)
	FindByID(orderID uint) (models.Order, bool, error)
	UpdateStatus(orderID uint, status string) error
	CountByStatus() (map[string]int64, error)
}

type AdminRevenueReader interface {
	SumCompleted() (decimal.Decimal, error)
}

type DashboardStats struct {
	Users          int64            `json:"total_users"`
	PremiumUsers   int64            `json:"premium_users"`
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	Revenue        decimal.Decimal  `json:"total_revenue"`
}

type AdminService struct {
	users        AdminUserRepository
	orders       AdminOrderRepository
	revenue      AdminRevenueReader
	primaryEmail string
	log          *logrus.Entry
}

func NewAdminService(users AdminUserRepository, orders AdminOrderRepository, revenue AdminRevenueReader, primaryEmail string, logger logrus.FieldLogger) *AdminService {
	primaryEmail = strings.ToLower(strings.TrimSpace(primaryEmail))
	if primaryEmail == "" {
		primaryEmail = DefaultPrimaryAdminEmail
	}
	return &AdminService{
		users:        users,
		orders:       orders,
		revenue:      revenue,
		primaryEmail: primaryEmail,
		log:          logging.Component(logger, "admin"),
	}
}

func (service *AdminService) IsPrimaryAdmin(user models.User) bool {
	return strings.ToLower(strings.TrimSpace(user.Email)) == service.primaryEmail
}

func (service *AdminService) ListUsers() ([]models.User, error) {
	users, err := service.users.List()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (service *AdminService) ToggleAdmin(actorID uint, targetID uint) (models.User, error) {
	target, err := service.loadUser(targetID)
	if err != nil {
		return models.User{}, err
	}
	return service.setAdmin(actorID, target, !target.IsAdmin)
}

func (service *AdminService) SetAdmin(actorID uint, targetID uint, isAdmin bool) (models.User, error) {
	target, err := service.loadUser(targetID)
	if err != nil {
		return models.User{}, err
	}
	return service.setAdmin(actorID, target, isAdmin)
}

func (service *AdminService) setAdmin(actorID uint, target models.User, isAdmin bool) (models.User, error) {
	if target.IsAdmin == isAdmin {
		return target, nil
	}

	if isAdmin {
		if err := service.users.UpdateByID(target.ID, map[string]any{"is_admin": true}); err != nil {
			return models.User{}, fmt.Errorf("promote user: %w", err)
		}
	} else if err := service.demote(target); err != nil {
		return models.User{}, err
	}

	target.IsAdmin = isAdmin
	service.log.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"target_id": target.ID,
		"is_admin":  isAdmin,
	}).Info("admin role changed")
	return target, nil
}

func (service *AdminService) demote(target models.User) error {
	if service.IsPrimaryAdmin(target) {
		return ErrPrimaryAdminProtected
	}
	demoted, err := service.users.DemoteAdmin(target.ID)
	if err != nil {
		return fmt.Errorf("demote user: %w", err)
	}
	if !demoted {
		return ErrLastAdmin
	}
	return nil
}

// TogglePremium revokes active premium or grants open-ended premium.
func (service *AdminService) TogglePremium(actorID uint, targetID uint, now time.Time) (models.User, error) {
	target, err := service.loadUser(targetID)
	if err != nil {
		return models.User{}, err
	}

	if target.HasActivePremium(now) {
		target.IsPremium = false
		target.PremiumStartedAt = nil
		target.PremiumExpiresAt = nil
	} else {
		startedAt := now.UTC()
		target.IsPremium = true
		target.PremiumStartedAt = &startedAt
		target.PremiumExpiresAt = nil
	}

	if err := service.users.UpdateByID(target.ID, map[string]any{
		"is_premium":         target.IsPremium,
		"premium_started_at": target.PremiumStartedAt,
		"premium_expires_at": target.PremiumExpiresAt,
	}); err != nil {
		return models.User{}, fmt.Errorf("update premium: %w", err)
	}

	service.log.WithFields(logrus.Fields{
		"actor_id":   actorID,
		"target_id":  target.ID,
		"is_premium": target.IsPremium,
	}).Info("premium changed")
	return target, nil
}

func (service *AdminService) DeleteUser(actorID uint, targetID uint) error {
	if actorID == targetID {
		return ErrSelfDelete
	}
	target, err := service.loadUser(targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		if err := service.demote(target); err != nil {
			return err
		}
	}

	if err := service.users.DeleteAccountAndRelatedData(target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	service.log.WithFields(logrus.Fields{"actor_id": actorID, "target_id": target.ID}).Warn("user deleted")
	return nil
}

func (service *AdminService) ListOrders(status string) ([]models.Order, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	orders, err := service.orders.ListAll(status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (service *AdminService) UpdateOrderStatus(orderID uint, status string) (models.Order, error) {
	status = strings.TrimSpace(status)
	if !models.IsValidOrderStatus(status) {
		return models.Order{}, ErrInvalidStatus
	}

	order, found, err := service.orders.FindByID(orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("load order: %w", err)
	}
	if !found {
		return models.Order{}, ErrOrderNotFound
	}
	if !CanTransitionOrder(order.Status, status) {
		return models.Order{}, ErrInvalidStatusTransition
	}

	if err := service.orders.UpdateStatus(order.ID, status); err != nil {
		return models.Order{}, fmt.Errorf("update order status: %w", err)
	}
	service.log.WithFields(logrus.Fields{"order_id": order.ID, "from": order.Status, "to": status}).Info("order status changed")
	order.Status = status
	return order, nil
}

func CanTransitionOrder(from string, to string) bool {
	for _, candidate := range orderStatusTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func (service *AdminService) Dashboard(now time.Time) (DashboardStats, error) {
	users, err := service.users.CountUsers()
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count users: %w", err)
	}
	premium, err := service.users.CountPremium(now)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count premium users: %w", err)
	}
	byStatus, err := service.orders.CountByStatus()
	if err != nil {
		return DashboardStats{}, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := service.revenue.SumCompleted()
	if err != nil {
		return DashboardStats{}, fmt.Errorf("sum revenue: %w", err)
	}

	stats := DashboardStats{
		Users:          users,
		PremiumUsers:   premium,
		OrdersByStatus: byStatus,
		Revenue:        revenue,
	}
	for _, count := range byStatus {
		stats.TotalOrders += count
	}
	return stats, nil
}

func (service *AdminService) loadUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
