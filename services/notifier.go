// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mandorpro-backend/models"
	"mandorpro-backend/scheduling"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier sends WhatsApp/SMS messages to mandors when work is assigned or an
// order changes status, and a nightly agenda for the next day.
type Notifier struct {
	db      *gorm.DB
	client  *twilio.RestClient
	enabled bool
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		enabled: accountSid != "" && authToken != "",
	}
}

// StartScheduler registers the nightly agenda job.
func (n *Notifier) StartScheduler() {
	c := cron.New()

	// Every day at 18:00, remind mandors of tomorrow's jobs.
	c.AddFunc("0 18 * * *", n.SendTomorrowAgenda)

	c.Start()
	log.Println("Agenda scheduler started")
}

// NotifyAssignment tells a mandor a new job has been assigned.
func (n *Notifier) NotifyAssignment(order models.Order, mandor models.Mandor) {
	message := fmt.Sprintf(
		"Halo %s, Anda ditugaskan untuk pesanan %s: %s pada %s %s di %s.",
		mandor.Name, order.OrderNo, order.ServiceName,
		scheduling.DateKey(order.Date), order.Time, order.Address,
	)
	orderID := order.ID
	n.send(mandor.Phone, message, "assignment", &orderID)
}

// NotifyStatusChange tells the customer the order moved to a new status.
func (n *Notifier) NotifyStatusChange(order models.Order) {
	message := fmt.Sprintf(
		"Pesanan %s (%s) sekarang berstatus %s.",
		order.OrderNo, order.ServiceName, string(scheduling.FromOrderStatus(order.Status)),
	)
	orderID := order.ID
	n.send(order.Phone, message, "status_change", &orderID)
}

// SendTomorrowAgenda sends each assigned mandor a summary of tomorrow's jobs.
func (n *Notifier) SendTomorrowAgenda() {
	log.Println("Starting daily agenda processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	end := start.AddDate(0, 0, 1)

	var orders []models.Order
	if err := n.db.Preload("Mandor").
		Where("mandor_id IS NOT NULL AND date >= ? AND date < ? AND status IN ?",
			start, end, []string{scheduling.OrderNeedValidation, scheduling.OrderOnProgress}).
		Order("created_at").
		Find(&orders).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's orders: %v", err)
		return
	}

	byMandor := make(map[uuid.UUID][]models.Order)
	for _, o := range orders {
		if o.MandorID == nil || o.Mandor == nil {
			continue
		}
		byMandor[*o.MandorID] = append(byMandor[*o.MandorID], o)
	}

	for _, jobs := range byMandor {
		mandor := jobs[0].Mandor
		var lines []string
		for _, o := range jobs {
			lines = append(lines, fmt.Sprintf("- %s %s, %s (%s)", o.Time, o.ServiceName, o.Address, o.CustomerName))
		}
		message := fmt.Sprintf("Halo %s, jadwal Anda besok:\n%s", mandor.Name, strings.Join(lines, "\n"))
		n.send(mandor.Phone, message, "agenda", nil)
	}

	log.Println("Daily agenda processing completed")
}

func (n *Notifier) send(phone, message, notifType string, orderID *uuid.UUID) {
	if phone == "" {
		return
	}

	// WhatsApp for E.164 numbers, plain SMS otherwise.
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	status := "sent"
	errorMsg := ""

	if !n.enabled {
		log.Printf("Twilio disabled, skipping %s message to %s", notifType, phone)
		status = "skipped"
	} else {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := n.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send message to %s: %v", phone, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
		}
	}

	entry := models.NotificationLog{
		OrderID:      orderID,
		Recipient:    phone,
		Channel:      channel,
		Type:         notifType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for %s: %v", phone, err)
	}
}
