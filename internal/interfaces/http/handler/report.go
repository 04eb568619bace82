package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/pranavkamat7/SusegadSnacks/internal/application/report"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/report"
)

// ReportHandler handles reporting API endpoints. Reports are read-only
// aggregations; all period parameters use YYYY-MM-DD dates and the
// period end is exclusive.
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/sales/summary", h.SalesSummary)
		reports.GET("/sales/monthly", h.MonthlySales)
		reports.GET("/sales/products", h.ProductRanking)
		reports.GET("/sales/customers", h.CustomerRanking)
		reports.GET("/finance/cash-flow", h.CashFlowSummary)
		reports.GET("/finance/aging", h.ARAging)
		reports.GET("/finance/statements", h.CustomerStatements)
		reports.GET("/inventory/snapshot", h.StockSnapshot)
		reports.GET("/inventory/activity", h.MovementActivity)
	}
}

// periodQuery holds the common report period parameters
type periodQuery struct {
	StartDate  string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	BrandID    string `form:"brand_id" binding:"omitempty,uuid"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	TopN       int    `form:"top_n" binding:"omitempty,min=1,max=100"`
}

func (q *periodQuery) dates() (start, end time.Time) {
	if q.StartDate != "" {
		start, _ = time.Parse("2006-01-02", q.StartDate)
	}
	if q.EndDate != "" {
		end, _ = time.Parse("2006-01-02", q.EndDate)
	}
	return start, end
}

func (q *periodQuery) optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func (q *periodQuery) salesFilter() report.SalesReportFilter {
	start, end := q.dates()
	return report.SalesReportFilter{
		StartDate:  start,
		EndDate:    end,
		BrandID:    q.optionalUUID(q.BrandID),
		CustomerID: q.optionalUUID(q.CustomerID),
		ProductID:  q.optionalUUID(q.ProductID),
		TopN:       q.TopN,
	}
}

func (q *periodQuery) financeFilter() report.FinanceReportFilter {
	start, end := q.dates()
	return report.FinanceReportFilter{
		StartDate:  start,
		EndDate:    end,
		CustomerID: q.optionalUUID(q.CustomerID),
	}
}

func (q *periodQuery) inventoryFilter() report.InventoryReportFilter {
	start, end := q.dates()
	return report.InventoryReportFilter{
		StartDate:  start,
		EndDate:    end,
		ProductID:  q.optionalUUID(q.ProductID),
		LocationID: q.optionalUUID(q.LocationID),
	}
}

// Dashboard returns the current-month headline figures in one call
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.reports.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SalesSummary returns aggregated delivered sales for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetSalesSummary(c.Request.Context(), q.salesFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MonthlySales returns per-month sales totals for a period
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetMonthlySales(c.Request.Context(), q.salesFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ProductRanking returns the top products by delivered sales value
func (h *ReportHandler) ProductRanking(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetProductSalesRanking(c.Request.Context(), q.salesFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CustomerRanking returns the top customers by delivered sales value
func (h *ReportHandler) CustomerRanking(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetCustomerSalesRanking(c.Request.Context(), q.salesFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CashFlowSummary returns receipts against expenses for a period
func (h *ReportHandler) CashFlowSummary(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetCashFlowSummary(c.Request.Context(), q.financeFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ARAging buckets open invoice balances by days outstanding
func (h *ReportHandler) ARAging(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetARAgingReport(c.Request.Context(), q.financeFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CustomerStatements returns per-customer billing and payment positions
func (h *ReportHandler) CustomerStatements(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetCustomerStatements(c.Request.Context(), q.financeFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// StockSnapshot returns the current stock position
func (h *ReportHandler) StockSnapshot(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetStockSnapshot(c.Request.Context(), q.inventoryFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MovementActivity summarizes stock movements for a period
func (h *ReportHandler) MovementActivity(c *gin.Context) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reports.GetMovementActivity(c.Request.Context(), q.inventoryFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
