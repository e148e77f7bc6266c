// services/push.go
package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"mandorpro-backend/models"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PushSender sends one web push notification. Split out so tests can stub the
// network.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

type webPushSender struct{}

func (s *webPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

type assignmentJob struct {
	OrderID  uuid.UUID
	MandorID uuid.UUID
}

// PushPool fans assignment notifications out to a mandor's registered browsers
// through a small worker pool.
type PushPool struct {
	size    int
	jobs    chan assignmentJob
	db      *gorm.DB
	options *webpush.Options
	sender  PushSender
}

func NewPushPool(size int, db *gorm.DB, options *webpush.Options) *PushPool {
	return &PushPool{
		size:    size,
		jobs:    make(chan assignmentJob, size),
		db:      db,
		options: options,
		sender:  &webPushSender{},
	}
}

// Start launches the worker goroutines.
func (p *PushPool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.worker(ctx, i)
	}
}

func (p *PushPool) worker(ctx context.Context, id int) {
	for {
		select {
		case job := <-p.jobs:
			p.notifyAssignment(ctx, job)
		case <-ctx.Done():
			log.Printf("push worker %d shutting down", id)
			return
		}
	}
}

// DispatchAssignment queues a push for a newly assigned order.
func (p *PushPool) DispatchAssignment(orderID, mandorID uuid.UUID) {
	p.jobs <- assignmentJob{OrderID: orderID, MandorID: mandorID}
}

func (p *PushPool) notifyAssignment(ctx context.Context, job assignmentJob) {
	var order models.Order
	if err := p.db.WithContext(ctx).First(&order, "id = ?", job.OrderID).Error; err != nil {
		log.Printf("push: order %s not found: %v", job.OrderID, err)
		return
	}

	var subs []models.PushSubscription
	if err := p.db.WithContext(ctx).Where("mandor_id = ?", job.MandorID).Find(&subs).Error; err != nil {
		log.Printf("push: fetching subscriptions for mandor %s: %v", job.MandorID, err)
		return
	}

	payload, err := json.Marshal(map[string]string{
		"title": "Penugasan baru",
		"body":  order.ServiceName + " - " + order.Address,
		"order": order.OrderNo,
	})
	if err != nil {
		log.Printf("push: marshaling payload: %v", err)
		return
	}

	for _, sub := range subs {
		resp, err := p.sender.Send(payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys:     webpush.Keys{P256dh: sub.P256DH, Auth: sub.Auth},
		}, p.options)
		if err != nil {
			log.Printf("push: sending to %s: %v", sub.Endpoint, err)
			continue
		}
		resp.Body.Close()

		// Expired or revoked subscriptions are dropped.
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			if err := p.db.WithContext(ctx).Delete(&models.PushSubscription{}, "endpoint = ?", sub.Endpoint).Error; err != nil {
				log.Printf("push: deleting stale subscription: %v", err)
			}
		}
	}
}
