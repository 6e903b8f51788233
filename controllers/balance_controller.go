package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

// BalanceController serves the weekly nutrition dashboard and the
// AI suggestions for whatever nutrient the week is missing.
type BalanceController struct {
	Foods       *services.FoodLogService
	Suggestions *services.SuggestionService
}

func NewBalanceController(foods *services.FoodLogService, suggestions *services.SuggestionService) *BalanceController {
	return &BalanceController{Foods: foods, Suggestions: suggestions}
}

func (b *BalanceController) Weekly(c *gin.Context) {
	balance, err := b.Foods.WeeklyBalance(c.GetUint("userID"), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, balance)
}

// GapSuggestions resolves the missing nutrient (or takes one explicitly)
// and asks the suggestion endpoint for foods that cover it.
func (b *BalanceController) GapSuggestions(c *gin.Context) {
	userID := c.GetUint("userID")
	now := time.Now()

	nutrient := c.Query("nutrient")
	if nutrient == "" {
		balance, err := b.Foods.WeeklyBalance(userID, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		nutrient = balance.MissingNutrient
	}
	if nutrient == services.NoNutrientMissing {
		c.JSON(http.StatusOK, gin.H{"message": "all critical nutrients covered this week"})
		return
	}

	summary, err := b.Foods.DietSummary(userID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out, err := b.Suggestions.GetNutrientGapSuggestions(nutrient, summary)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nutrient": nutrient, "suggestions": out.Suggestions, "quick_tip": out.QuickTip})
}
