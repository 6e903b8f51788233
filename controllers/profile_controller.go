package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

const writeTimeout = 5 * time.Second

// ProfileController exposes the per-identity profile document: point
// reads and status merge-writes.
type ProfileController struct {
	Store *services.GormDocumentStore
	Sync  *services.ProfileSynchronizer
}

func NewProfileController(store *services.GormDocumentStore, sync *services.ProfileSynchronizer) *ProfileController {
	return &ProfileController{Store: store, Sync: sync}
}

// GetProfile returns the identity's document, or exists=false before the
// first write.
func (p *ProfileController) GetProfile(c *gin.Context) {
	email := c.GetString("email")

	doc, exists, err := p.Store.GetDocument(c.Request.Context(), services.ProfileCollection, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile read failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists, "document": doc})
}

type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus merge-writes {status, lastUpdated} under a bounded
// timeout; expiry surfaces as a write failure, not a hang.
func (p *ProfileController) UpdateStatus(c *gin.Context) {
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), writeTimeout)
	defer cancel()

	email := c.GetString("email")
	if err := p.Sync.PushStatus(ctx, email, input.Status); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrWriteFailed) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "status update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
