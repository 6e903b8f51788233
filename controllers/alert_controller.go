package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/services"
)

type AlertController struct {
	Alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{Alerts: alerts}
}

func (a *AlertController) List(c *gin.Context) {
	alerts, err := a.Alerts.List(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
