package controller

import (
	"net/http"

	"rental_coach_backend/internal/repository"
	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Listings repository.ListingRepository
	Provider string
}

func NewHealthController(listings repository.ListingRepository, provider string) *HealthController {
	return &HealthController{Listings: listings, Provider: provider}
}

// HealthCheck 检查房源存储是否可读
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	listings, err := c.Listings.List(ctx.Request.Context())
	if err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Listing store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"listings":       "up",
			"listing_count":  len(listings),
			"language_model": c.Provider,
		},
	})
}
