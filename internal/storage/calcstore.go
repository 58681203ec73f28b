package storage

import (
	"context"

	"gorm.io/gorm"
)

// CalcStore 是计算流水的 GORM 读写实现，供 services.AuditService 注入。
type CalcStore struct{ db *gorm.DB }

func NewCalcStore(db *gorm.DB) *CalcStore { return &CalcStore{db: db} }

// InsertCalcRecord 写入一条计算流水。
func (s *CalcStore) InsertCalcRecord(ctx context.Context, rec *CalcRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

// RecentCalcRecords 按 created_at 倒序返回至多 limit 条流水。
func (s *CalcStore) RecentCalcRecords(ctx context.Context, limit int) ([]CalcRecord, error) {
	var out []CalcRecord
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}
