package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"mandorpro-backend/models"
	"mandorpro-backend/utils"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubSender struct {
	status   int
	payloads []string
	targets  []string
}

func (s *stubSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	s.payloads = append(s.payloads, string(payload))
	s.targets = append(s.targets, sub.Endpoint)
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func setupPushDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.PushSubscription{}))
	return db
}

func seedPushOrder(t *testing.T, db *gorm.DB, mandorID uuid.UUID) models.Order {
	t.Helper()
	date, err := utils.ParseDate("2025-12-28")
	require.NoError(t, err)
	order := models.Order{
		OrderNo:      "ORD-20251201-PUSH01",
		CustomerID:   uuid.New(),
		CustomerName: "Ibu Wati",
		ServiceID:    uuid.New(),
		ServiceName:  "Renovasi Dapur",
		Date:         date,
		Time:         "09:00",
		Address:      "Jl. Kenanga No. 5",
		MandorID:     &mandorID,
		Status:       "ON_PROGRESS",
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestNotifyAssignmentSendsToEverySubscription(t *testing.T) {
	db := setupPushDB(t)
	mandorID := uuid.New()
	order := seedPushOrder(t, db, mandorID)

	for i := 0; i < 2; i++ {
		sub := models.PushSubscription{
			Endpoint: fmt.Sprintf("https://push.example.com/sub-%d", i),
			MandorID: mandorID,
			P256DH:   "p256dh-key",
			Auth:     "auth-key",
		}
		require.NoError(t, db.Create(&sub).Error)
	}

	sender := &stubSender{status: http.StatusCreated}
	pool := NewPushPool(1, db, &webpush.Options{TTL: 60})
	pool.sender = sender

	pool.notifyAssignment(context.Background(), assignmentJob{OrderID: order.ID, MandorID: mandorID})

	require.Len(t, sender.payloads, 2)
	assert.Contains(t, sender.payloads[0], "Renovasi Dapur")
	assert.Contains(t, sender.payloads[0], order.OrderNo)
}

func TestNotifyAssignmentDropsStaleSubscriptions(t *testing.T) {
	db := setupPushDB(t)
	mandorID := uuid.New()
	order := seedPushOrder(t, db, mandorID)

	sub := models.PushSubscription{
		Endpoint: "https://push.example.com/expired",
		MandorID: mandorID,
		P256DH:   "p256dh-key",
		Auth:     "auth-key",
	}
	require.NoError(t, db.Create(&sub).Error)

	sender := &stubSender{status: http.StatusGone}
	pool := NewPushPool(1, db, &webpush.Options{TTL: 60})
	pool.sender = sender

	pool.notifyAssignment(context.Background(), assignmentJob{OrderID: order.ID, MandorID: mandorID})

	var count int64
	require.NoError(t, db.Model(&models.PushSubscription{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWorkerProcessesQueuedJob(t *testing.T) {
	db := setupPushDB(t)
	mandorID := uuid.New()
	order := seedPushOrder(t, db, mandorID)

	sub := models.PushSubscription{
		Endpoint: "https://push.example.com/worker",
		MandorID: mandorID,
		P256DH:   "p256dh-key",
		Auth:     "auth-key",
	}
	require.NoError(t, db.Create(&sub).Error)

	done := make(chan string, 1)
	sender := &chanSender{done: done}
	pool := NewPushPool(2, db, &webpush.Options{TTL: 60})
	pool.sender = sender

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	pool.DispatchAssignment(order.ID, mandorID)

	select {
	case endpoint := <-done:
		assert.Equal(t, "https://push.example.com/worker", endpoint)
	case <-time.After(2 * time.Second):
		t.Fatal("push job was never processed")
	}
}

type chanSender struct {
	done chan string
}

func (s *chanSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	s.done <- sub.Endpoint
	return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader(""))}, nil
}
