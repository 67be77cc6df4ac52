package services

import (
	"encoding/json"
	"log"

	"github.com/simpdb/simpdb-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService records admin actions (schedule edits, lock toggles, master
// data clears) with before/after values.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record writes one audit row. oldValue/newValue may be nil; marshalling
// failures degrade to an empty value rather than dropping the row.
func (s *AuditService) Record(adminID uint, action, resource string, resourceID uint, oldValue, newValue interface{}, ip, description string) {
	entry := model.AdminAuditLog{
		AdminID:     adminID,
		Action:      action,
		Resource:    resource,
		ResourceID:  resourceID,
		IPAddress:   ip,
		Description: description,
	}
	if oldValue != nil {
		if b, err := json.Marshal(oldValue); err == nil {
			entry.OldValue = datatypes.JSON(b)
		}
	}
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			entry.NewValue = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		// Audit failures must not fail the admin's mutation.
		log.Printf("audit: failed to record %s on %s/%d: %v", action, resource, resourceID, err)
	}
}

// PruneOlderThan deletes audit rows older than the retention window and
// returns how many were removed.
func (s *AuditService) PruneOlderThan(days int) (int64, error) {
	res := s.db.Unscoped().
		Where("created_at < NOW() - (? * INTERVAL '1 day')", days).
		Delete(&model.AdminAuditLog{})
	return res.RowsAffected, res.Error
}
