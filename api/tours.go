package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/theibericoexperience-dev/last-sub001/internal/service/tours"
)

type TourHandler struct {
	service tours.TourUseCase
}

func NewTourHandler(service tours.TourUseCase) *TourHandler {
	return &TourHandler{service: service}
}

func (h *TourHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:slug", h.get)
}

func (h *TourHandler) list(c *gin.Context) {
	tours, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tours)
}

func (h *TourHandler) get(c *gin.Context) {
	tour, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tour)
}
