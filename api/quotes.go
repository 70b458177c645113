package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/metrics"
	"github.com/theibericoexperience-dev/last-sub001/internal/service/quote"
)

type QuoteHandler struct {
	service quote.QuoteUseCase
}

type quoteExtensionRequest struct {
	ExtensionID string `json:"extension_id" binding:"required"`
	Days        int    `json:"days" binding:"required,min=1"`
}

type quoteInsuranceRequest struct {
	Travel       bool `json:"travel"`
	Cancellation bool `json:"cancellation"`
}

type quoteRequest struct {
	TourID     string                  `json:"tour_id" binding:"required"`
	Travelers  int                     `json:"travelers" binding:"required,min=1"`
	RoomType   string                  `json:"room_type" binding:"required,oneof=double single"`
	Extensions []quoteExtensionRequest `json:"extensions" binding:"dive"`
	Insurance  quoteInsuranceRequest   `json:"insurance"`
	Overrides  map[string]int64        `json:"overrides"`
}

func NewQuoteHandler(service quote.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{service: service}
}

func (h *QuoteHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
}

func (h *QuoteHandler) create(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), toPricingRequest(req))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	metrics.QuotesComputedTotal.Inc()
	c.JSON(http.StatusOK, quote)
}

// toPricingRequest normalizes the transport shape into the canonical pricing
// request. Override keys outside the allow-list are dropped here, before the
// engine is reached.
func toPricingRequest(req quoteRequest) domain.PricingRequest {
	var overrides map[domain.OverrideField]int64
	if len(req.Overrides) > 0 {
		overrides = make(map[domain.OverrideField]int64, len(req.Overrides))
		for key, value := range req.Overrides {
			if field := domain.OverrideField(key); field.Known() {
				overrides[field] = value
			}
		}
	}

	extensions := make([]domain.ExtensionSelection, 0, len(req.Extensions))
	for _, ext := range req.Extensions {
		extensions = append(extensions, domain.ExtensionSelection{ExtensionID: ext.ExtensionID, Days: ext.Days})
	}

	return domain.PricingRequest{
		TourID:     req.TourID,
		Travelers:  req.Travelers,
		RoomType:   domain.RoomType(req.RoomType),
		Extensions: extensions,
		Insurance: domain.InsuranceSelection{
			Travel:       req.Insurance.Travel,
			Cancellation: req.Insurance.Cancellation,
		},
		Overrides: overrides,
	}
}
