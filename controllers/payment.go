// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreatePaymentInput defines the expected JSON structure for recording a payment
type CreatePaymentInput struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Notes         string          `json:"notes"`
}

func invoiceFromPath(c *gin.Context, tx *gorm.DB) (*models.Invoice, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return nil, false
	}

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return nil, false
	}

	var invoice models.Invoice
	if err := tx.Preload("Payments").
		Where("user_id = ? AND id = ?", userUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &invoice, true
}

// CreatePayment records a payment against an invoice. When the recorded
// payments cover the invoice total, the invoice is marked paid in the same
// transaction.
func CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !input.Amount.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment amount must be positive")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invoice, ok := invoiceFromPath(c, tx)
	if !ok {
		tx.Rollback()
		return
	}

	if invoice.Status == models.StatusCancelled {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Cannot record a payment on a cancelled invoice")
		return
	}

	paymentDate := time.Now()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := models.Payment{
		ID:            uuid.New(),
		InvoiceID:     invoice.ID,
		Amount:        input.Amount.Round(2),
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	// Settle the invoice when payments cover the total
	paid := invoice.PaidAmount().Add(payment.Amount)
	if paid.GreaterThanOrEqual(invoice.Total) && invoice.Status != models.StatusPaid {
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Update("status", models.StatusPaid).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists the payments recorded against an invoice
func GetPayments(c *gin.Context) {
	invoice, ok := invoiceFromPath(c, config.DB)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, invoice.Payments)
}

// DeletePayment removes a recorded payment. If the invoice was settled and
// the remaining payments no longer cover the total, it reverts to pending.
func DeletePayment(c *gin.Context) {
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invoice, ok := invoiceFromPath(c, tx)
	if !ok {
		tx.Rollback()
		return
	}

	paymentID := c.Param("paymentId")
	paymentUUID, err := uuid.Parse(paymentID)
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var payment models.Payment
	if err := tx.Where("invoice_id = ? AND id = ?", invoice.ID, paymentUUID).
		First(&payment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Delete(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		return
	}

	remaining := invoice.PaidAmount().Sub(payment.Amount)
	if invoice.Status == models.StatusPaid && remaining.LessThan(invoice.Total) {
		if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Update("status", models.StatusPending).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
