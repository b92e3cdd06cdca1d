package controllers

import (
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/listing"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StatusSlice struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Value  decimal.Decimal `json:"value"`
}

// GetDashboardOverview returns the headline numbers and recent activity
// for the current user
func GetDashboardOverview(c *gin.Context) {
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

	// Total Clients
	var totalClients int64
	config.DB.Model(&models.Client{}).Where("user_id = ?", userUUID).Count(&totalClients)

	// Total Invoices
	var totalInvoices int64
	config.DB.Model(&models.Invoice{}).Where("user_id = ?", userUUID).Count(&totalInvoices)

	// This Month's Revenue (paid invoices issued since the 1st)
	firstOfMonth := utils.BeginningOfMonth(time.Now())
	var monthlyRevenue decimal.Decimal
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ? AND issue_date >= ?", userUUID, models.StatusPaid, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyRevenue)

	// Outstanding amount (pending + overdue)
	var outstanding decimal.Decimal
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status IN ?", userUUID, []models.InvoiceStatus{models.StatusPending, models.StatusOverdue}).
		Select("COALESCE(SUM(total), 0)").Scan(&outstanding)

	// Status distribution
	var statusDistribution []StatusSlice
	config.DB.Raw(`
        SELECT status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS value
        FROM invoices
        WHERE user_id = ?
        GROUP BY status
    `, userUUID).Scan(&statusDistribution)

	// Recent invoices: newest first through the listing engine
	rows, err := fetchInvoiceRows(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}
	recent := listing.Invoices(rows, listing.InvoiceQuery{Sort: listing.DefaultInvoiceSort()})
	if len(recent) > 4 {
		recent = recent[:4]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":       totalClients,
		"totalInvoices":      totalInvoices,
		"monthlyRevenue":     monthlyRevenue,
		"outstanding":        outstanding,
		"statusDistribution": statusDistribution,
		"recentInvoices":     recent,
	})
}
