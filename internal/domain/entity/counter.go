// Package entity 定义领域实体
package entity

import "time"

// Counter 全局 AD number 计数器（单行记录）
// 只能通过存储层的原子自增语句修改，禁止应用层读-改-写
type Counter struct {
	ID           string    `json:"id"`
	CurrentValue int       `json:"current_value"`
	UpdatedAt    time.Time `json:"updated_at"`
}
