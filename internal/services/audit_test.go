package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidenpearce001/simple-devsecops-pipeline/internal/storage"
)

type memoryCalcStore struct {
	records   []storage.CalcRecord
	lastLimit int
}

func (m *memoryCalcStore) InsertCalcRecord(ctx context.Context, rec *storage.CalcRecord) error {
	m.records = append(m.records, *rec)
	return nil
}

func (m *memoryCalcStore) RecentCalcRecords(ctx context.Context, limit int) ([]storage.CalcRecord, error) {
	m.lastLimit = limit
	out := make([]storage.CalcRecord, len(m.records))
	copy(out, m.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// 审计关闭（store 为 nil）时所有方法必须是安全的空操作，/add 路径不受影响。
func TestAuditServiceDisabled(t *testing.T) {
	svc := NewAuditService(nil)
	require.False(t, svc.Enabled())

	svc.Record(context.Background(), 2, 3, 5, "127.0.0.1")

	recs, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Nil(t, recs)
}

func TestAuditServiceRecordWritesThrough(t *testing.T) {
	store := &memoryCalcStore{}
	svc := NewAuditService(store)
	require.True(t, svc.Enabled())

	svc.Record(context.Background(), -1.5, 2.5, 1.0, "10.0.0.9")

	require.Len(t, store.records, 1)
	rec := store.records[0]
	require.Equal(t, -1.5, rec.OperandA)
	require.Equal(t, 2.5, rec.OperandB)
	require.Equal(t, 1.0, rec.Result)
	require.Equal(t, "10.0.0.9", rec.IPAddress)
	require.False(t, rec.CreatedAt.IsZero())
}

func TestAuditServiceRecentNewestFirst(t *testing.T) {
	store := &memoryCalcStore{}
	base := time.Unix(1_700_000_000, 0)
	for i := 0; i < 3; i++ {
		store.records = append(store.records, storage.CalcRecord{
			Result:    float64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	svc := NewAuditService(store)

	recs, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, float64(2), recs[0].Result)
	require.Equal(t, float64(1), recs[1].Result)
}

func TestAuditServiceRecentClampsLimit(t *testing.T) {
	store := &memoryCalcStore{}
	svc := NewAuditService(store)

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	if store.lastLimit != maxRecentRecords {
		t.Fatalf("limit 0 should clamp to %d, got %d", maxRecentRecords, store.lastLimit)
	}

	_, err = svc.Recent(context.Background(), 5000)
	require.NoError(t, err)
	if store.lastLimit != maxRecentRecords {
		t.Fatalf("limit 5000 should clamp to %d, got %d", maxRecentRecords, store.lastLimit)
	}

	_, err = svc.Recent(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 7, store.lastLimit)
}
