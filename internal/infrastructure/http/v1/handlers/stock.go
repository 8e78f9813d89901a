package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"posadmin/internal/core/apperror"
	appctx "posadmin/internal/core/context"
	"posadmin/internal/core/id"
	"posadmin/internal/domain/catalog/gateway"
	"posadmin/internal/domain/ledger"
	"posadmin/internal/infrastructure/http/v1/dto"
)

// StockHandler exposes the stock ledger (mutations, history) and the
// gateway read side (totals, status, valuation).
type StockHandler struct {
	*BaseHandler
	ledger  *ledger.Service
	gateway *gateway.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, ledgerSvc *ledger.Service, gatewaySvc *gateway.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		ledger:      ledgerSvc,
		gateway:     gatewaySvc,
	}
}

// Adjust handles POST /stock/adjust.
func (h *StockHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, branchID, ok := h.parsePair(c, req.ProductID, req.BranchID)
	if !ok {
		return
	}

	change, err := req.SignedChange()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.ledger.Adjust(ctx, productID, branchID, change, req.Reason, appctx.GetUserID(ctx))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.gateway.InvalidateSummary(ctx, productID)

	c.JSON(http.StatusOK, dto.AdjustStockResponse{
		AdjustmentID: result.AdjustmentID.String(),
		NewQuantity:  result.NewQuantity,
	})
}

// SetReorderLevel handles PUT /stock/reorder-level.
func (h *StockHandler) SetReorderLevel(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetReorderLevelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, branchID, ok := h.parsePair(c, req.ProductID, req.BranchID)
	if !ok {
		return
	}

	if err := h.ledger.SetReorderLevel(ctx, productID, branchID, req.Level); err != nil {
		h.Error(c, err)
		return
	}

	h.gateway.InvalidateSummary(ctx, productID)

	h.Success(c, "reorder level updated")
}

// Initialize handles POST /stock/initialize - one-time stock seeding.
func (h *StockHandler) Initialize(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.InitializeStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, branchID, ok := h.parsePair(c, req.ProductID, req.BranchID)
	if !ok {
		return
	}

	record, err := h.ledger.InitializeStock(ctx, productID, branchID, req.InitialQuantity, req.ReorderLevel)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.gateway.InvalidateSummary(ctx, productID)

	c.JSON(http.StatusCreated, dto.FromStockRecord(record))
}

// ProductStock handles GET /stock/products/:productId.
func (h *StockHandler) ProductStock(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	records, err := h.ledger.ProductStock(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromStockRecords(records)})
}

// AdjustmentHistory handles GET /stock/products/:productId/adjustments.
func (h *StockHandler) AdjustmentHistory(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	filter := ledger.AdjustmentFilter{
		Descending: c.DefaultQuery("order", "asc") == "desc",
		Limit:      h.ParseIntQuery(c, "limit", 100),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	if branchStr := c.Query("branchId"); branchStr != "" {
		branchID, err := id.Parse(branchStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid branchId format"))
			return
		}
		filter.BranchID = &branchID
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date, expected RFC3339"))
			return
		}
		filter.FromDate = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date, expected RFC3339"))
			return
		}
		filter.ToDate = &to
	}

	adjustments, err := h.ledger.AdjustmentHistory(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromAdjustments(adjustments)})
}

// Summary handles GET /stock/products/:productId/summary.
func (h *StockHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	summary, err := h.gateway.Summary(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// TotalStock handles GET /stock/products/:productId/total.
func (h *StockHandler) TotalStock(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	total, err := h.gateway.TotalStock(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID.String(), "totalStock": total})
}

// Status handles GET /stock/products/:productId/status.
func (h *StockHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	status, err := h.gateway.Classify(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID.String(), "status": status})
}

// InventoryValue handles GET /stock/products/:productId/value.
func (h *StockHandler) InventoryValue(c *gin.Context) {
	ctx := c.Request.Context()

	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	value, err := h.gateway.InventoryValue(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID.String(), "inventoryValue": value})
}

func (h *StockHandler) parseProductID(c *gin.Context) (id.ID, bool) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return id.ID{}, false
	}
	return productID, true
}

func (h *StockHandler) parsePair(c *gin.Context, productStr, branchStr string) (id.ID, id.ID, bool) {
	productID, err := id.Parse(productStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return id.ID{}, id.ID{}, false
	}
	branchID, err := id.Parse(branchStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid branchId format"))
		return id.ID{}, id.ID{}, false
	}
	return productID, branchID, true
}
