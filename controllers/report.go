// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"invoicehub-backend/config"
	"invoicehub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// MonthlyRevenue is one bar of the revenue-by-month chart
type MonthlyRevenue struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyClients is one point of the client-growth chart
type MonthlyClients struct {
	Month   string `json:"month"`
	Clients int    `json:"clients"`
}

// TopClient is one row of the top-clients table
type TopClient struct {
	Name     string          `json:"name"`
	Invoices int             `json:"invoices"`
	Spent    decimal.Decimal `json:"spent"`
}

// GetReportAnalytics returns the chart series for the reports page
func (rc ReportController) GetReportAnalytics(c *gin.Context) {
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

	since := utils.BeginningOfMonth(time.Now()).AddDate(-1, 1, 0) // trailing 12 months

	// Revenue by month (paid invoices)
	var revenueByMonth []MonthlyRevenue
	config.DB.Raw(`
        SELECT TO_CHAR(DATE_TRUNC('month', issue_date), 'YYYY-MM') AS month,
               COALESCE(SUM(total), 0) AS total
        FROM invoices
        WHERE user_id = ? AND status = 'paid' AND issue_date >= ?
        GROUP BY DATE_TRUNC('month', issue_date)
        ORDER BY DATE_TRUNC('month', issue_date)
    `, userUUID, since).Scan(&revenueByMonth)

	// Client growth by month
	var clientGrowth []MonthlyClients
	config.DB.Raw(`
        SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') AS month,
               COUNT(*) AS clients
        FROM clients
        WHERE user_id = ? AND created_at >= ?
        GROUP BY DATE_TRUNC('month', created_at)
        ORDER BY DATE_TRUNC('month', created_at)
    `, userUUID, since).Scan(&clientGrowth)

	// Status distribution over all invoices
	var statusDistribution []StatusSlice
	config.DB.Raw(`
        SELECT status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS value
        FROM invoices
        WHERE user_id = ?
        GROUP BY status
    `, userUUID).Scan(&statusDistribution)

	// Top clients by total billed
	var topClients []TopClient
	config.DB.Raw(`
        SELECT c.name, COUNT(i.id) AS invoices, COALESCE(SUM(i.total), 0) AS spent
        FROM clients c
        JOIN invoices i ON i.client_id = c.id
        WHERE c.user_id = ?
        GROUP BY c.id
        ORDER BY spent DESC
        LIMIT 5
    `, userUUID).Scan(&topClients)

	c.JSON(http.StatusOK, gin.H{
		"revenueByMonth":     revenueByMonth,
		"clientGrowth":       clientGrowth,
		"statusDistribution": statusDistribution,
		"topClients":         topClients,
	})
}
