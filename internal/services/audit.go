package services

import (
	"context"
	"time"

	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/storage"
)

// CalcRecordStore 抽象审计所需的最小存储能力，
// *storage.CalcStore 为 GORM 实现；测试可注入内存实现。
type CalcRecordStore interface {
	InsertCalcRecord(ctx context.Context, rec *storage.CalcRecord) error
	RecentCalcRecords(ctx context.Context, limit int) ([]storage.CalcRecord, error)
}

// maxRecentRecords 是 Recent 单次返回的上限，非法入参一律钳制到该值。
const maxRecentRecords = 200

// AuditService 将计算流水持久化到存储。
// store 为 nil 时（审计未启用）所有方法均为空操作。
type AuditService struct{ store CalcRecordStore }

func NewAuditService(store CalcRecordStore) *AuditService { return &AuditService{store: store} }

// Enabled 报告审计是否接入了存储。
func (s *AuditService) Enabled() bool { return s != nil && s.store != nil }

// Record 写入一条计算流水；写入失败不向调用方传播。
func (s *AuditService) Record(ctx context.Context, a, b, result float64, ip string) {
	if !s.Enabled() {
		return
	}
	_ = s.store.InsertCalcRecord(ctx, &storage.CalcRecord{
		OperandA:  a,
		OperandB:  b,
		Result:    result,
		IPAddress: ip,
		CreatedAt: time.Now(),
	})
}

// Recent 按时间倒序返回最近 limit 条流水。
func (s *AuditService) Recent(ctx context.Context, limit int) ([]storage.CalcRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 || limit > maxRecentRecords {
		limit = maxRecentRecords
	}
	return s.store.RecentCalcRecords(ctx, limit)
}
