package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
)

// AlertService persists alerts (safety warnings, milestones) and pushes
// them to connected clients over the realtime hub.
type AlertService struct {
	db *gorm.DB
	rt *RealtimeHub
}

func NewAlertService(db *gorm.DB, rt *RealtimeHub) *AlertService {
	return &AlertService{db: db, rt: rt}
}

func (s *AlertService) Emit(userID uint, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	if err := s.db.Create(a).Error; err != nil {
		logger.L().Errorw("alert save failed", "user", userID, "err", err)
	}

	if s.rt != nil {
		s.rt.Publish(userID, Event{Kind: "alert.created", Data: a})
	}
}

func (s *AlertService) List(userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&alerts).Error
	return alerts, err
}
