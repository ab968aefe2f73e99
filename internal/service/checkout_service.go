package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/queue"
	"github.com/vitrine-next/internal/repository"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// CheckoutService 结算与订单服务
type CheckoutService struct {
	cartService  *CartService
	orderRepo    repository.OrderRepository
	queueClient  *queue.Client
	currency     string
	confirmDelay time.Duration
	now          func() time.Time
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartService *CartService, orderRepo repository.OrderRepository, queueClient *queue.Client, currency string, confirmDelay time.Duration) *CheckoutService {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return &CheckoutService{
		cartService:  cartService,
		orderRepo:    orderRepo,
		queueClient:  queueClient,
		currency:     currency,
		confirmDelay: confirmDelay,
		now:          time.Now,
	}
}

// Checkout 把当前购物车写成订单。订单落库后才清空购物车，随后投递延迟确认任务。
func (s *CheckoutService) Checkout(ctx context.Context, owner string, input CheckoutInput) (*models.Order, error) {
	input = normalizeCheckoutInput(input)
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	unlock, err := s.cartService.lock(owner)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ledger, err := s.cartService.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	if ledger.Len() == 0 {
		return nil, ErrCartEmpty
	}
	orderNo, err := generateOrderNo(s.now())
	if err != nil {
		logger.Errorw("checkout_order_no_failed", "owner", owner, "error", err)
		return nil, err
	}

	order := &models.Order{
		OrderNo:      orderNo,
		Owner:        owner,
		Status:       constants.OrderStatusPending,
		Currency:     s.currency,
		TotalItems:   ledger.TotalItems(),
		TotalAmount:  models.NewMoneyFromDecimal(ledger.TotalPrice()),
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
	}
	for _, line := range ledger.Items() {
		order.Items = append(order.Items, models.OrderItem{
			LineID:      line.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			SizeCode:    line.SelectedSize.ID,
			SizeName:    line.SelectedSize.Name,
			ColorCode:   line.SelectedColor.ID,
			ColorName:   line.SelectedColor.Name,
			UnitPrice:   models.NewMoneyFromDecimal(line.Product.Price),
			Quantity:    line.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(line.Subtotal()),
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Errorw("checkout_order_create_failed", "owner", owner, "error", err)
		return nil, err
	}
	logger.Infow("checkout_order_created",
		"order_no", order.OrderNo,
		"total_items", order.TotalItems,
		"total_amount", order.TotalAmount.String(),
	)

	s.cartService.clearLocked(ctx, owner)
	s.scheduleConfirm(order)
	return order, nil
}

// scheduleConfirm 投递延迟确认任务，队列不可用时直接确认
func (s *CheckoutService) scheduleConfirm(order *models.Order) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderConfirm(queue.OrderConfirmPayload{OrderNo: order.OrderNo}, s.confirmDelay)
		if err == nil {
			return
		}
		logger.Warnw("checkout_enqueue_confirm_failed", "order_no", order.OrderNo, "error", err)
	}
	if _, err := s.ConfirmOrder(order.OrderNo); err != nil {
		logger.Errorw("checkout_confirm_inline_failed", "order_no", order.OrderNo, "error", err)
		return
	}
	if refreshed, err := s.orderRepo.GetByOrderNo(order.OrderNo); err == nil && refreshed != nil {
		order.Status = refreshed.Status
		order.ConfirmedAt = refreshed.ConfirmedAt
	}
}

// ConfirmOrder 把待确认订单标记为已确认，重复调用无副作用
func (s *CheckoutService) ConfirmOrder(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	switch order.Status {
	case constants.OrderStatusConfirmed:
		return order, nil
	case constants.OrderStatusPending:
	default:
		return nil, ErrOrderStatusInvalid
	}

	now := s.now()
	moved, err := s.orderRepo.Transition(orderNo, constants.OrderStatusPending, constants.OrderStatusConfirmed, now)
	if err != nil {
		return nil, err
	}
	if moved {
		logger.Infow("order_confirmed", "order_no", orderNo)
	}
	return s.orderRepo.GetByOrderNo(orderNo)
}

// GetOrder 获取持有者自己的订单
func (s *CheckoutService) GetOrder(owner, orderNo string) (*models.Order, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrOwnerRequired
	}
	order, err := s.orderRepo.GetByOrderNoAndOwner(strings.TrimSpace(orderNo), owner)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 分页获取持有者订单
func (s *CheckoutService) ListOrders(owner string, page, pageSize int) ([]models.Order, int64, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, 0, ErrOwnerRequired
	}
	return s.orderRepo.ListByOwner(owner, page, pageSize)
}

func normalizeCheckoutInput(input CheckoutInput) CheckoutInput {
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.ContactEmail = strings.ToLower(strings.TrimSpace(input.ContactEmail))
	input.ContactPhone = strings.TrimSpace(input.ContactPhone)
	input.AddressLine1 = strings.TrimSpace(input.AddressLine1)
	input.AddressLine2 = strings.TrimSpace(input.AddressLine2)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.PostalCode = strings.TrimSpace(input.PostalCode)
	input.Country = strings.TrimSpace(input.Country)
	return input
}

func validateCheckoutInput(input CheckoutInput) error {
	required := []struct {
		field string
		value string
	}{
		{"contact_name", input.ContactName},
		{"contact_email", input.ContactEmail},
		{"address_line1", input.AddressLine1},
		{"city", input.City},
		{"postal_code", input.PostalCode},
		{"country", input.Country},
	}
	for _, item := range required {
		if item.value == "" {
			return fmt.Errorf("%w: %s is required", ErrCheckoutInvalid, item.field)
		}
	}
	if addr, err := mail.ParseAddress(input.ContactEmail); err != nil || addr.Address != input.ContactEmail {
		return fmt.Errorf("%w: contact_email", ErrCheckoutInvalid)
	}
	return nil
}

// orderNoEntropy 订单号随机源
var orderNoEntropy io.Reader = rand.Reader

func generateOrderNo(now time.Time) (string, error) {
	digits, err := randNumeric(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("VT%s%s", now.Format("20060102150405"), digits), nil
}

func randNumeric(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(orderNoEntropy, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("read order number entropy: %w", err)
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}

// ConfirmStale 确认创建超过延迟时间仍未确认的订单，用于补偿丢失的队列任务
func (s *CheckoutService) ConfirmStale(limit int) (int, error) {
	cutoff := s.now().Add(-s.confirmDelay)
	orderNos, err := s.orderRepo.ListPendingBefore(cutoff, limit)
	if err != nil {
		return 0, err
	}
	confirmed := 0
	for _, orderNo := range orderNos {
		if _, err := s.ConfirmOrder(orderNo); err != nil {
			logger.Warnw("order_confirm_stale_failed", "order_no", orderNo, "error", err)
			continue
		}
		confirmed++
	}
	return confirmed, nil
}
