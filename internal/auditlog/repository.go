package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	ListByEvent(ctx context.Context, eventID uint, limit int) ([]AuditLog, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint, limit int) ([]AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []AuditLog
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
