package orders

import (
	"context"
	"fmt"

	"myRoomStore/domain"
	"myRoomStore/pkg/logger"
	"myRoomStore/pkg/metrics"
)

type OrdersRepository interface {
	CreateFromCart(ctx context.Context, userID uint, address, paymentMethod string) (domain.Order, error)
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

const (
	subjectOrderPlaced   = "Your order has been placed!"
	emailBodyOrderPlaced = `Hi %v, we received your order #%v for a total of %v. We will let you know once it ships.`
)

type ordersService struct {
	ordersRepo OrdersRepository
	userRepo   UserRepository
	notifRepo  NotificationRepository
}

func NewOrdersService(ordersRepo OrdersRepository, userRepo UserRepository, notifRepo NotificationRepository) *ordersService {
	return &ordersService{
		ordersRepo: ordersRepo,
		userRepo:   userRepo,
		notifRepo:  notifRepo,
	}
}

// PlaceOrder converts the caller's cart into an order. Any client-supplied
// total, items or status never reach this point; the repository computes the
// total inside the transaction. A confirmation email is best-effort.
func (s *ordersService) PlaceOrder(ctx context.Context, userID uint, address, paymentMethod string) (domain.Order, error) {
	if address == "" {
		return domain.Order{}, domain.NewValidationError("address", "address is required")
	}

	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	order, err := s.ordersRepo.CreateFromCart(ctx, userID, address, paymentMethod)
	if err != nil {
		logger.Error("Failed to place order", err)
		return domain.Order{}, err
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderTotalAmount.Observe(order.Total.InexactFloat64())

	if s.notifRepo != nil {
		if user, uerr := s.userRepo.FindByID(ctx, userID); uerr == nil {
			body := fmt.Sprintf(emailBodyOrderPlaced, user.Username, order.ID, order.Total.StringFixed(2))
			if merr := s.notifRepo.SendEmail(user.Username, user.Email, subjectOrderPlaced, body); merr != nil {
				logger.Warn("Failed to send order confirmation email", merr)
			}
		}
	}

	logger.Info("Order placed", "order_id", order.ID, "user_id", userID)

	return order, nil
}

// GetOrders lists orders: owners see their own, staff sees all.
func (s *ordersService) GetOrders(ctx context.Context, userID uint, isStaff bool) ([]domain.Order, error) {
	if isStaff {
		return s.ordersRepo.FindAll(ctx)
	}

	return s.ordersRepo.FindAllByUser(ctx, userID)
}

// GetOrder fetches one order, owner-scoped unless the caller is staff.
func (s *ordersService) GetOrder(ctx context.Context, id, userID uint, isStaff bool) (domain.Order, error) {
	if isStaff {
		return s.ordersRepo.FindByID(ctx, id)
	}

	return s.ordersRepo.FindByIDForUser(ctx, id, userID)
}
