package postgres

import (
	"context"
	"fmt"
)

// CounterRepository 全局 AD 计数器仓储实现
// 计数器是单行表（id = 1），自增依赖行锁保证无空洞
type CounterRepository struct {
	client *Client
}

// NewCounterRepository 创建计数器仓储
func NewCounterRepository(client *Client) *CounterRepository {
	return &CounterRepository{client: client}
}

// Increment 原子自增并返回自增后的值
// 只允许在事务内调用：事务回滚时自增一并回滚，不产生编号空洞
func (r *CounterRepository) Increment(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.CounterRepository.Increment")
	defer span.End()

	tx := getTxFromContext(ctx)
	if tx == nil {
		return 0, fmt.Errorf("counter increment requires an active transaction")
	}

	var value int
	err := tx.QueryRowContext(ctx,
		`UPDATE ad_counter SET current_value = current_value + 1, updated_at = NOW()
		 WHERE id = 1 RETURNING current_value`,
	).Scan(&value)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to increment ad counter: %w", err)
	}
	return value, nil
}

// Current 读取当前值（只读，诊断用）
func (r *CounterRepository) Current(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.CounterRepository.Current")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var value int
	err := q.QueryRowContext(ctx, `SELECT current_value FROM ad_counter WHERE id = 1`).Scan(&value)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to read ad counter: %w", err)
	}
	return value, nil
}
