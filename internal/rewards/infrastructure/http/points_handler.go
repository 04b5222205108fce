package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/pkg/metrics"
	"github.com/trash2cash/rewards/internal/rewards/domain"
)

type checkReceiverRequestBody struct {
	EmailOrPhone string `json:"email_or_phone" binding:"required"`
}

type transferRequestBody struct {
	ReceiverEmailOrPhone string `json:"receiver_email_or_phone" binding:"required"`
	Points               uint32 `json:"points" binding:"required,gt=0"`
}

type scanRequestBody struct {
	MaterialType string    `json:"material_type" binding:"required"`
	Points       uint32    `json:"points" binding:"required,gt=0"`
	ScannedAt    time.Time `json:"scanned_at"`
}

type entryResponse struct {
	ID           string `json:"id"`
	Points       uint32 `json:"points"`
	Action       string `json:"action"`
	MaterialType string `json:"material_type,omitempty"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	Label        string `json:"label"`
}

type historySummaryResponse struct {
	TotalReceived int `json:"total_received"`
	TotalSent     int `json:"total_sent"`
	TotalScanned  int `json:"total_scanned"`
	NetPoints     int `json:"net_points"`
	TotalCount    int `json:"total_count"`
}

type PointsHandler struct {
	transferService domain.TransferService
	scanService     domain.ScanService
	historyService  domain.HistoryService
	metrics         *metrics.Metrics
	logger          logging.Logger
}

func NewPointsHandler(
	transferService domain.TransferService,
	scanService domain.ScanService,
	historyService domain.HistoryService,
	appMetrics *metrics.Metrics,
	logger logging.Logger,
) *PointsHandler {
	return &PointsHandler{
		transferService: transferService,
		scanService:     scanService,
		historyService:  historyService,
		metrics:         appMetrics,
		logger:          logger,
	}
}

func (h *PointsHandler) CheckReceiver(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
		return
	}

	var body checkReceiverRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email_or_phone": "this field is required"}})
		return
	}

	check, err := h.transferService.CheckReceiver(c.Request.Context(), userID, body.EmailOrPhone)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := gin.H{
		"exists":  check.Exists,
		"is_self": check.IsSelf,
	}
	if check.Exists {
		resp["receiver"] = gin.H{
			"full_name": check.FullName,
			"eco_level": check.EcoLevel,
		}
	}
	if check.FailureCause != "" {
		resp["message"] = check.FailureCause
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PointsHandler) Transfer(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
		return
	}

	var body transferRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	result, err := h.transferService.SendPoints(c.Request.Context(), userID, body.ReceiverEmailOrPhone, body.Points)
	if err != nil {
		h.metrics.TransfersTotal.WithLabelValues("failure").Inc()
		h.handleError(c, err)
		return
	}

	h.metrics.TransfersTotal.WithLabelValues("success").Inc()
	h.metrics.PointsTransferred.Add(float64(body.Points))

	c.JSON(http.StatusOK, gin.H{
		"message":       strconv.FormatUint(uint64(body.Points), 10) + " points sent to " + result.ReceiverName,
		"new_balance":   result.SenderBalance,
		"eco_level":     result.SenderEcoLevel,
		"receiver_name": result.ReceiverName,
	})
}

func (h *PointsHandler) Scan(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
		return
	}

	var body scanRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	result, err := h.scanService.RecordScan(c.Request.Context(), userID, body.MaterialType, body.Points, body.ScannedAt)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.metrics.ScansTotal.WithLabelValues(result.MaterialLabel).Inc()
	h.metrics.PointsScanned.Add(float64(body.Points))

	c.JSON(http.StatusOK, gin.H{
		"message":     "scan recorded",
		"new_balance": result.NewBalance,
		"eco_level":   result.EcoLevel,
		"material":    result.MaterialLabel,
	})
}

func (h *PointsHandler) History(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
		return
	}

	query := domain.HistoryQuery{
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", domain.DefaultPageSize),
		SinceDays: queryInt(c, "days", 0),
	}

	if action := c.Query("action"); action != "" && action != "all" {
		kind, ok := domain.ParseEntryKind(action)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"action": "unknown action filter"}})
			return
		}
		query.Kind = kind
	}

	view, err := h.historyService.GetHistory(c.Request.Context(), userID, query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": toEntryResponses(view.Entries),
		"summary": historySummaryResponse{
			TotalReceived: view.Summary.TotalReceived,
			TotalSent:     view.Summary.TotalSent,
			TotalScanned:  view.Summary.TotalScanned,
			NetPoints:     view.Summary.NetPoints,
			TotalCount:    view.Summary.TotalCount,
		},
		"page":        view.Page,
		"page_size":   view.PageSize,
		"total_count": view.TotalCount,
		"total_pages": view.TotalPages,
	})
}

func (h *PointsHandler) Recent(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "not authenticated"})
		return
	}

	views, err := h.historyService.GetRecent(c.Request.Context(), userID, queryInt(c, "limit", domain.DefaultRecentLimit))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": toEntryResponses(views)})
}

func (h *PointsHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, &domain.ReceiverNotFoundError{}),
		errors.Is(err, &domain.SelfTransferError{}),
		errors.Is(err, &domain.BelowMinimumError{}),
		errors.Is(err, &domain.InsufficientBalanceError{}),
		errors.Is(err, &domain.InvalidMaterialError{}),
		errors.Is(err, &domain.InvalidPointsError{}),
		errors.Is(err, &domain.UserNotFoundError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	default:
		h.logger.Error("request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}

func toEntryResponses(views []domain.EntryView) []entryResponse {
	responses := make([]entryResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, entryResponse{
			ID:           view.Entry.ID.String(),
			Points:       view.Entry.Points,
			Action:       string(view.Entry.Kind),
			MaterialType: string(view.Entry.Material),
			Description:  view.Entry.Description,
			CreatedAt:    view.Entry.OccurredAt.Format(time.RFC3339),
			Icon:         view.Display.Icon,
			Color:        view.Display.Color,
			Label:        view.Display.Label,
		})
	}

	return responses
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return val
}
