// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// CounterRepository 全局计数器仓储接口
type CounterRepository interface {
	// Increment 原子自增并返回自增后的值
	// 实现必须是单条原子语句（UPDATE ... RETURNING），只允许在事务内调用
	Increment(ctx context.Context) (int, error)

	// Current 读取当前值（只读，诊断用）
	Current(ctx context.Context) (int, error)
}
