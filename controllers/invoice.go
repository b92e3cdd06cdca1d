// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/listing"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for one invoice line item
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice. Totals are never accepted from the client; they are derived
// from the items and tax rate on the server.
type CreateInvoiceInput struct {
	ClientID      uuid.UUID          `json:"clientId" binding:"required"`
	InvoiceNumber string             `json:"invoiceNumber"`
	Status        string             `json:"status" binding:"omitempty,oneof=draft pending paid overdue cancelled"`
	IssueDate     *time.Time         `json:"issueDate"`
	DueDate       time.Time          `json:"dueDate" binding:"required"`
	Subject       string             `json:"subject"`
	Notes         string             `json:"notes"`
	TaxRate       decimal.Decimal    `json:"taxRate"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	ClientID      *uuid.UUID          `json:"clientId"`
	InvoiceNumber *string             `json:"invoiceNumber"`
	Status        *string             `json:"status" binding:"omitempty,oneof=draft pending paid overdue cancelled"`
	IssueDate     *time.Time          `json:"issueDate"`
	DueDate       *time.Time          `json:"dueDate"`
	Subject       *string             `json:"subject"`
	Notes         *string             `json:"notes"`
	TaxRate       *decimal.Decimal    `json:"taxRate"`
	Items         *[]InvoiceItemInput `json:"items"`
}

// CreateInvoice creates a new invoice for the current user
func CreateInvoice(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate client exists and belongs to the same user
	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	items, ok := buildInvoiceItems(c, input.Items)
	if !ok {
		return
	}

	issueDate := time.Now()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}

	status := models.StatusDraft
	if input.Status != "" {
		status = models.InvoiceStatus(input.Status)
	}

	invoice := models.Invoice{
		ID:            uuid.New(),
		UserID:        userUUID,
		ClientID:      input.ClientID,
		InvoiceNumber: input.InvoiceNumber,
		Status:        status,
		IssueDate:     issueDate,
		DueDate:       input.DueDate,
		Subject:       input.Subject,
		Notes:         input.Notes,
		TaxRate:       input.TaxRate,
		Items:         items,
	}
	invoice.ComputeTotals()

	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = utils.GenerateInvoiceNumber(issueDate)
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func buildInvoiceItems(c *gin.Context, inputs []InvoiceItemInput) ([]models.InvoiceItem, bool) {
	var items []models.InvoiceItem
	for _, item := range inputs {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Item quantity and unit price must not be negative")
			return nil, false
		}
		items = append(items, models.InvoiceItem{
			ID:          uuid.New(),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return items, true
}

// GetInvoices retrieves the current user's invoices as list rows, filtered
// and sorted by the query parameters (search, status, sortBy, sortDir)
func GetInvoices(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	query, ok := parseInvoiceQuery(c)
	if !ok {
		return
	}

	rows, err := fetchInvoiceRows(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, listing.Invoices(rows, query))
}

func fetchInvoiceRows(userUUID uuid.UUID) ([]listing.InvoiceRow, error) {
	var rows []listing.InvoiceRow
	err := config.DB.Raw(`
        SELECT i.id, i.invoice_number, c.name AS client, i.total AS amount,
               i.status, i.issue_date, i.due_date
        FROM invoices i
        JOIN clients c ON c.id = i.client_id
        WHERE i.user_id = ?
    `, userUUID).Scan(&rows).Error
	return rows, err
}

func parseInvoiceQuery(c *gin.Context) (listing.InvoiceQuery, bool) {
	query := listing.InvoiceQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   listing.DefaultInvoiceSort(),
	}
	if query.Status != "" && query.Status != listing.StatusAll &&
		!models.InvoiceStatus(query.Status).Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter: "+query.Status)
		return query, false
	}
	if key := c.Query("sortBy"); key != "" {
		if !listing.ValidInvoiceSortKey(key) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid sort key: "+key)
			return query, false
		}
		query.Sort.Key = key
		query.Sort.Direction = listing.Ascending
	}
	if dir := c.Query("sortDir"); dir != "" {
		switch listing.Direction(dir) {
		case listing.Ascending, listing.Descending:
			query.Sort.Direction = listing.Direction(dir)
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid sort direction: "+dir)
			return query, false
		}
	}
	return query, true
}

// GetInvoice retrieves a specific invoice by ID with items and payments
func GetInvoice(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("Payments").
		Where("user_id = ? AND id = ?", userUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice. Submitting items replaces the
// line items wholesale and recomputes the totals.
func UpdateInvoice(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Preload("Items").
		Where("user_id = ? AND id = ?", userUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		// Validate client exists and belongs to the same user
		var client models.Client
		if err := tx.Where("user_id = ? AND id = ?", userUUID, *input.ClientID).
			First(&client).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		invoice.ClientID = *input.ClientID
	}

	if input.InvoiceNumber != nil {
		invoice.InvoiceNumber = *input.InvoiceNumber
	}
	if input.Status != nil {
		invoice.Status = models.InvoiceStatus(*input.Status)
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.DueDate != nil {
		invoice.DueDate = *input.DueDate
	}
	if input.Subject != nil {
		invoice.Subject = *input.Subject
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.TaxRate != nil {
		invoice.TaxRate = *input.TaxRate
	}

	if input.Items != nil {
		// Delete existing items and recreate from the submitted set
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		items, ok := buildInvoiceItems(c, *input.Items)
		if !ok {
			tx.Rollback()
			return
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		invoice.Items = items
	}

	// Totals are always rederived on the server
	invoice.ComputeTotals()

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice deletes an invoice with its items and payments
func DeleteInvoice(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	invoiceID := c.Param("id")
	invoiceUUID, err := uuid.Parse(invoiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("user_id = ? AND id = ?", userUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.Payment{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payments")
		return
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}

	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
