package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

type ChildController struct {
	Children *services.ChildService
}

func NewChildController(children *services.ChildService) *ChildController {
	return &ChildController{Children: children}
}

func (cc *ChildController) UpsertChild(c *gin.Context) {
	var input services.ChildInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := cc.Children.Upsert(c.GetUint("userID"), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, child)
}

func (cc *ChildController) GetChild(c *gin.Context) {
	child, err := cc.Children.Get(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, child)
}

// StageIdeas serves the ideas page: current stage and the tried/to-try
// split of its recommended foods.
func (cc *ChildController) StageIdeas(c *gin.Context) {
	plan, err := cc.Children.StagePlanAt(c.GetUint("userID"), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}
