package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/provider"
	"github.com/vitrine-next/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cfg := &config.Config{
		Session: config.SessionConfig{SecretKey: "secret"},
		Order:   config.OrderConfig{Currency: "USD", ConfirmDelaySeconds: 2},
	}
	return NewConsumer(provider.NewContainerWithDB(cfg, db, nil)), db
}

func TestHandleOrderConfirmMarksOrderConfirmed(t *testing.T) {
	consumer, db := newTestConsumer(t)
	order := &models.Order{
		OrderNo:      "VT-WORKER-1",
		Owner:        "owner",
		Status:       constants.OrderStatusPending,
		Currency:     "USD",
		ContactName:  "Ada",
		ContactEmail: "ada@example.com",
		AddressLine1: "1 Main St",
		City:         "London",
		PostalCode:   "N1",
		Country:      "GB",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderConfirmTask(queue.OrderConfirmPayload{OrderNo: order.OrderNo})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirm(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	var stored models.Order
	if err := db.Where("order_no = ?", order.OrderNo).First(&stored).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusConfirmed || stored.ConfirmedAt == nil {
		t.Fatalf("order not confirmed: %+v", stored)
	}

	if err := consumer.handleOrderConfirm(context.Background(), task); err != nil {
		t.Fatalf("redelivery should be a no-op: %v", err)
	}
}

func TestHandleOrderConfirmSkipsUnknownAndInvalid(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	missing, _ := queue.NewOrderConfirmTask(queue.OrderConfirmPayload{OrderNo: "VT-NOPE"})
	if err := consumer.handleOrderConfirm(context.Background(), missing); err != nil {
		t.Fatalf("unknown order should be dropped, got %v", err)
	}

	bad := asynq.NewTask(queue.TaskOrderConfirm, []byte(`{}`))
	err := consumer.handleOrderConfirm(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("invalid payload should skip retry, got %v", err)
	}
}
