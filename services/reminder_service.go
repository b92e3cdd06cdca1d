// services/reminder_service.go
package services

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Days before the due date at which a due-soon reminder goes out.
const dueSoonWindowDays = 3

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.RunDailySweep)

	c.Start()
	log.Println("Invoice reminder scheduler started")
}

// RunDailySweep marks pending invoices past their due date as overdue and
// sends payment reminders for every user.
func (s *ReminderService) RunDailySweep() {
	log.Println("Starting daily invoice sweep...")

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		log.Printf("Failed to fetch users: %v", err)
		return
	}

	for _, user := range users {
		s.ProcessUserInvoices(user.ID)
	}

	log.Println("Daily invoice sweep completed")
}

func (s *ReminderService) ProcessUserInvoices(userID uuid.UUID) {
	now := time.Now()

	// Transition pending invoices past due to overdue, then remind
	overdue, err := s.markOverdueInvoices(userID, now)
	if err != nil {
		log.Printf("User %s: failed to mark overdue invoices: %v", userID, err)
	} else {
		s.sendReminders(userID, overdue, "overdue")
	}

	// Pending invoices coming due inside the window
	var dueSoon []models.Invoice
	if err := s.db.Where(
		"user_id = ? AND status = ? AND due_date >= ? AND due_date < ?",
		userID, models.StatusPending,
		utils.BeginningOfDay(now), utils.BeginningOfDay(now).AddDate(0, 0, dueSoonWindowDays),
	).Find(&dueSoon).Error; err != nil {
		log.Printf("User %s: failed to fetch due-soon invoices: %v", userID, err)
		return
	}
	s.sendReminders(userID, dueSoon, "due_soon")
}

func (s *ReminderService) markOverdueInvoices(userID uuid.UUID, now time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Where(
		"user_id = ? AND status = ? AND due_date < ?",
		userID, models.StatusPending, utils.BeginningOfDay(now),
	).Find(&invoices).Error; err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	if err := s.db.Model(&models.Invoice{}).Where("id IN ?", ids).
		Update("status", models.StatusOverdue).Error; err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Status = models.StatusOverdue
	}
	return invoices, nil
}

func (s *ReminderService) sendReminders(userID uuid.UUID, invoices []models.Invoice, reminderType string) {
	if len(invoices) == 0 {
		return
	}

	// Get the active template for this reminder type
	var template models.ReminderTemplate
	if err := s.db.Where("user_id = ? AND type = ? AND is_active = true", userID, reminderType).
		First(&template).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User %s: failed to load %s template: %v", userID, reminderType, err)
		}
		return
	}

	for _, invoice := range invoices {
		// One reminder of each type per invoice
		var sent int64
		s.db.Model(&models.ReminderLog{}).
			Where("invoice_id = ? AND type = ? AND status = ?", invoice.ID, reminderType, "sent").
			Count(&sent)
		if sent > 0 {
			continue
		}

		var client models.Client
		if err := s.db.First(&client, "id = ?", invoice.ClientID).Error; err != nil {
			log.Printf("Invoice %s: failed to load client: %v", invoice.ID, err)
			continue
		}
		if client.Phone == "" {
			continue
		}

		message := strings.NewReplacer(
			"[ClientName]", client.Name,
			"[InvoiceNumber]", invoice.InvoiceNumber,
			"[Total]", invoice.Total.StringFixed(2),
			"[DueDate]", invoice.DueDate.Format("2006-01-02"),
		).Replace(template.Message)

		// WhatsApp for E.164 numbers, SMS otherwise
		channel := "sms"
		to := client.Phone
		if strings.HasPrefix(client.Phone, "+") {
			to = "whatsapp:" + client.Phone
			channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send reminder for invoice %s: %v", invoice.InvoiceNumber, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Reminder sent for invoice %s, SID: %s", invoice.InvoiceNumber, *resp.Sid)
		} else {
			log.Printf("Reminder sent for invoice %s, but no SID returned", invoice.InvoiceNumber)
		}

		reminderLog := models.ReminderLog{
			UserID:       userID,
			InvoiceID:    invoice.ID,
			TemplateID:   template.ID,
			Type:         reminderType,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      channel,
			SentAt:       time.Now(),
		}

		if err := s.db.Create(&reminderLog).Error; err != nil {
			log.Printf("Failed to log reminder for invoice %s: %v", invoice.ID, err)
		}
	}
}
