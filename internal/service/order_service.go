package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/palengke/storefront/internal/constants"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/models"
	"github.com/palengke/storefront/internal/queue"
	"github.com/palengke/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles checkout and the order lifecycle.
type OrderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	cartRepo         repository.CartRepository
	queueClient      *queue.Client
	shippingFee      int
	autoCompleteDays int
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, shippingFee, autoCompleteDays int) *OrderService {
	if shippingFee <= 0 {
		shippingFee = constants.ShippingFee
	}
	if autoCompleteDays <= 0 {
		autoCompleteDays = constants.DeliveredAutoCompleteDays
	}
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		queueClient:      queueClient,
		shippingFee:      shippingFee,
		autoCompleteDays: autoCompleteDays,
	}
}

// CheckoutInput carries the shipping and payment details for checkout.
// ItemIDs restricts the checkout to those cart lines; when empty the whole
// cart is consumed.
type CheckoutInput struct {
	UserID        uint
	ItemIDs       []uint
	PaymentMethod string
	ShippingName  string
	ShippingPhone string
	ShippingAddr  string
}

var knownStatuses = map[string]bool{
	constants.OrderStatusPending:         true,
	constants.OrderStatusProcessing:      true,
	constants.OrderStatusShipped:         true,
	constants.OrderStatusDelivered:       true,
	constants.OrderStatusReturnRequested: true,
	constants.OrderStatusCompleted:       true,
	constants.OrderStatusCancelled:       true,
}

// allowedTransitions is the customer-facing state machine. A return
// request parks the order until an admin resolves it, so return_requested
// has no owner-reachable targets. Admin overrides bypass the map but still
// settle stock when crossing the cancelled boundary.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusShipped:    true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered:       true,
		constants.OrderStatusReturnRequested: true,
		constants.OrderStatusCompleted:       true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted: true,
	},
}

// Checkout turns the user's cart into an order inside one transaction:
// price each line at its current selling price, reserve stock with a
// guarded decrement, write the order with its item snapshots, then clear
// the cart. Any failure rolls the whole thing back.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderNotFound
	}
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	var created *models.Order
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		var cartItems []models.CartItem
		var err error
		if len(input.ItemIDs) > 0 {
			cartItems, err = cartRepo.ListByUserAndIDs(input.UserID, input.ItemIDs)
		} else {
			cartItems, err = cartRepo.ListByUser(input.UserID)
		}
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		// Re-read the products inside the transaction; cart preloads may
		// be stale by the time checkout runs.
		productIDs := make([]uint, 0, len(cartItems))
		for _, item := range cartItems {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := productRepo.ListByIDs(productIDs)
		if err != nil {
			return err
		}
		productByID := make(map[uint]*models.Product, len(products))
		for i := range products {
			productByID[products[i].ID] = &products[i]
		}

		subtotal := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			product := productByID[item.ProductID]
			if product == nil || !product.IsActive {
				return ErrProductNotActive
			}
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			affected, err := productRepo.DecrementStock(product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
			}

			unitPrice := product.SellingPrice()
			lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				PriceAtPurchase: unitPrice,
				Quantity:        item.Quantity,
				TotalPrice:      models.NewMoneyFromDecimal(lineTotal),
			})
		}

		shippingFee := decimal.NewFromInt(int64(s.shippingFee))
		order := &models.Order{
			OrderNo:        generateOrderNo(),
			UserID:         input.UserID,
			Status:         constants.OrderStatusPending,
			SubtotalAmount: models.NewMoneyFromDecimal(subtotal),
			ShippingFee:    models.NewMoneyFromDecimal(shippingFee),
			TotalAmount:    models.NewMoneyFromDecimal(subtotal.Add(shippingFee)),
			PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
			ShippingName:   strings.TrimSpace(input.ShippingName),
			ShippingPhone:  strings.TrimSpace(input.ShippingPhone),
			ShippingAddr:   strings.TrimSpace(input.ShippingAddr),
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		consumed := make([]uint, 0, len(cartItems))
		for _, item := range cartItems {
			consumed = append(consumed, item.ID)
		}
		if err := cartRepo.DeleteByUserAndIDs(input.UserID, consumed); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", created.ID,
		"order_no", created.OrderNo,
		"user_id", created.UserID,
		"total", created.TotalAmount.String(),
	)
	s.notifyStatus(created.ID, created.Status)
	return created, nil
}

// CancelOrder lets the owner cancel an order that has not shipped yet.
// Reserved stock goes back to the shelf in the same transaction.
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending && order.Status != constants.OrderStatusProcessing {
		return nil, ErrOrderNotCancelable
	}
	if err := s.cancelAndRestock(order); err != nil {
		return nil, err
	}
	s.notifyStatus(order.ID, constants.OrderStatusCancelled)
	return s.orderRepo.GetByID(order.ID)
}

// RequestReturn moves a shipped order into return_requested for admin
// review.
func (s *OrderService) RequestReturn(orderID, userID uint) (*models.Order, error) {
	return s.advanceByUser(orderID, userID, constants.OrderStatusReturnRequested)
}

// MarkReceived lets the owner confirm delivery, completing the order from
// shipped or delivered.
func (s *OrderService) MarkReceived(orderID, userID uint) (*models.Order, error) {
	return s.advanceByUser(orderID, userID, constants.OrderStatusCompleted)
}

func (s *OrderService) advanceByUser(orderID, userID uint, target string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !allowedTransitions[order.Status][target] {
		return nil, ErrInvalidTransition
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, statusTimestamps(target, time.Now())); err != nil {
		return nil, err
	}
	s.notifyStatus(order.ID, target)
	return s.orderRepo.GetByID(order.ID)
}

// AdminSetStatus forces an order into a target status. Setting the current
// status is a no-op. Stock is restored when an order enters cancelled and
// re-reserved when it leaves, so inventory stays consistent either way.
func (s *OrderService) AdminSetStatus(orderID uint, target string) (*models.Order, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if !knownStatuses[target] {
		return nil, ErrUnknownStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}

	switch {
	case target == constants.OrderStatusCancelled:
		if err := s.cancelAndRestock(order); err != nil {
			return nil, err
		}
	case order.Status == constants.OrderStatusCancelled:
		if err := s.reviveFromCancelled(order, target); err != nil {
			return nil, err
		}
	default:
		if err := s.orderRepo.UpdateStatus(order.ID, target, statusTimestamps(target, time.Now())); err != nil {
			return nil, err
		}
	}

	logger.Infow("order_status_forced",
		"order_id", order.ID,
		"from", order.Status,
		"to", target,
	)
	s.notifyStatus(order.ID, target)
	return s.orderRepo.GetByID(order.ID)
}

// CompleteAgedDeliveries completes every delivered order older than the
// configured window. Returns how many were completed.
func (s *OrderService) CompleteAgedDeliveries(now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -s.autoCompleteDays)
	orders, err := s.orderRepo.ListDeliveredBefore(cutoff)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, order := range orders {
		updates := statusTimestamps(constants.OrderStatusCompleted, now)
		if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCompleted, updates); err != nil {
			logger.Errorw("order_auto_complete_failed", "order_id", order.ID, "error", err)
			continue
		}
		completed++
		s.notifyStatus(order.ID, constants.OrderStatusCompleted)
	}
	if completed > 0 {
		logger.Infow("orders_auto_completed", "count", completed, "cutoff", cutoff)
	}
	return completed, nil
}

// GetByUser fetches an order owned by a user.
func (s *OrderService) GetByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByUserAndOrderNo resolves an order by its public number. Ownership is
// checked the same way as an id lookup: a stranger's number reads as not
// found.
func (s *OrderService) GetByUserAndOrderNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser returns a user's orders.
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListForAdmin returns orders for the admin panel.
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetForAdmin fetches any order by ID.
func (s *OrderService) GetForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) cancelAndRestock(order *models.Order) error {
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		updates := statusTimestamps(constants.OrderStatusCancelled, time.Now())
		return orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates)
	})
}

// reviveFromCancelled re-reserves the order's stock before moving it out
// of cancelled. Fails with ErrInsufficientStock when the shelf has been
// sold out in the meantime.
func (s *OrderService) reviveFromCancelled(order *models.Order, target string) error {
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		for _, item := range order.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w for product %s", ErrInsufficientStock, item.ProductName)
			}
		}
		updates := statusTimestamps(target, time.Now())
		updates["cancelled_at"] = nil
		return orderRepo.UpdateStatus(order.ID, target, updates)
	})
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if !s.queueClient.Enabled() {
		return
	}
	err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func validateCheckoutInput(input CheckoutInput) error {
	method := strings.TrimSpace(input.PaymentMethod)
	if method != constants.PaymentMethodCard && method != constants.PaymentMethodCashOnDelivery {
		return ErrInvalidPayment
	}
	if strings.TrimSpace(input.ShippingName) == "" ||
		strings.TrimSpace(input.ShippingPhone) == "" ||
		strings.TrimSpace(input.ShippingAddr) == "" {
		return ErrInvalidShippingInfo
	}
	return nil
}

func statusTimestamps(status string, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"updated_at": now}
	switch status {
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCompleted:
		updates["completed_at"] = now
	}
	return updates
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("PK%s%s", now, randNumeric(6))
}
