package storage

import (
	"time"

	"gorm.io/gorm"
)

// 本文件定义服务使用的所有 GORM 模型，集中管理数据结构。

// CalcRecord 是一条计算审计流水：请求处理本身无状态，
// 流水仅作运维留痕，写入失败不影响请求结果。
type CalcRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	OperandA  float64   `gorm:"column:operand_a"`
	OperandB  float64   `gorm:"column:operand_b"`
	Result    float64
	IPAddress string    `gorm:"size:64;index"`
	CreatedAt time.Time `gorm:"index"`
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&CalcRecord{})
}
