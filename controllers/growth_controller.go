package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

type GrowthController struct {
	Growth *services.GrowthService
}

func NewGrowthController(growth *services.GrowthService) *GrowthController {
	return &GrowthController{Growth: growth}
}

func (g *GrowthController) Create(c *gin.Context) {
	var input services.GrowthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := g.Growth.Create(c.GetUint("userID"), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, log)
}

func (g *GrowthController) List(c *gin.Context) {
	logs, err := g.Growth.List(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (g *GrowthController) Delete(c *gin.Context) {
	if err := g.Growth.Delete(c.GetUint("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "growth log removed"})
}

// Replace is the edit path: the old record is deleted and a fresh one
// created under a new id.
func (g *GrowthController) Replace(c *gin.Context) {
	var input services.GrowthInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := g.Growth.Replace(c.GetUint("userID"), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, log)
}
