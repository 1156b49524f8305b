package services

import (
	"time"

	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/utils"
	"gorm.io/gorm"
)

const monitorBatchSize = 100

// ChangeMonitor polls journal entries that have not been dispatched yet and
// broadcasts them as activity events.
type ChangeMonitor struct {
	DB       *gorm.DB
	Hub      Broadcaster
	StopChan chan struct{}
	Interval time.Duration
	done     chan struct{}
}

func NewChangeMonitor(db *gorm.DB, hub Broadcaster) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
		done:     make(chan struct{}),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		defer close(cm.done)
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

// Stop ends the polling loop and waits for it to exit.
func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
	<-cm.done
}

// CheckChanges dispatches one batch and returns how many entries were sent.
func (cm *ChangeMonitor) CheckChanges() int {
	var entries []models.ActivityLog

	err := cm.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("processed = ?", false).
			Order("id ASC").
			Limit(monitorBatchSize).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		return tx.Model(&models.ActivityLog{}).
			Where("id IN ?", ids).
			Update("processed", true).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error dispatching activity: %v", err)
		return 0
	}

	for _, e := range entries {
		cm.Hub.Broadcast(kds.Message{Event: kds.EventActivity, Data: e})
	}
	if len(entries) > 0 {
		utils.InfoLogger.Debugf("Dispatched %d activity entries", len(entries))
	}
	return len(entries)
}
