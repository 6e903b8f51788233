package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

type FoodLogController struct {
	Foods *services.FoodLogService
}

func NewFoodLogController(foods *services.FoodLogService) *FoodLogController {
	return &FoodLogController{Foods: foods}
}

func (f *FoodLogController) LogFood(c *gin.Context) {
	var input services.FoodLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, warnings, err := f.Foods.LogFood(c.GetUint("userID"), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": log, "warnings": warnings})
}

func (f *FoodLogController) ListLogs(c *gin.Context) {
	logs, err := f.Foods.ListLogs(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (f *FoodLogController) RemoveLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	if err := f.Foods.RemoveLog(c.GetUint("userID"), uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "log removed"})
}

// Prefill answers "already logged today?" for the log dialog.
func (f *FoodLogController) Prefill(c *gin.Context) {
	food := c.Query("food")
	slot := c.Query("meal_slot")
	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil || food == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food and a YYYY-MM-DD date are required"})
		return
	}

	log, found, err := f.Foods.LoggedOn(c.GetUint("userID"), food, date, slot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logged": found, "log": log})
}
