package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"ad-workflow-api/internal/application/workflow"
)

var cacheTracer = otel.Tracer("redis.cache")

const summaryKeyPrefix = "adworkflow:summary:"

// SummaryCache 项目阶段汇总缓存
// 汇总只在阶段/状态变更时失效，读路径用 singleflight 合并并发回源
type SummaryCache struct {
	client *Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewSummaryCache 创建汇总缓存
func NewSummaryCache(client *Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SummaryCache{
		client: client,
		ttl:    ttl,
	}
}

func summaryKey(projectID string) string {
	return summaryKeyPrefix + projectID
}

// GetSummary 读取缓存的汇总，未命中返回 (nil, nil)
func (c *SummaryCache) GetSummary(ctx context.Context, projectID string) (*workflow.PhaseSummary, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetSummary",
		trace.WithAttributes(attribute.String("project.id", projectID)))
	defer span.End()

	key := summaryKey(projectID)

	// 合并对同一项目的并发读取
	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		val, err := c.client.rdb.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return nil, nil
			}
			return nil, err
		}
		return val, nil
	})

	span.SetAttributes(attribute.Bool("cache.shared", shared))

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}
	if result == nil {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, nil
	}

	var summary workflow.PhaseSummary
	if err := json.Unmarshal(result.([]byte), &summary); err != nil {
		// 损坏的缓存条目当未命中处理
		span.RecordError(err)
		return nil, nil
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	return &summary, nil
}

// SetSummary 写入汇总缓存
func (c *SummaryCache) SetSummary(ctx context.Context, projectID string, summary *workflow.PhaseSummary) error {
	ctx, span := cacheTracer.Start(ctx, "cache.SetSummary",
		trace.WithAttributes(
			attribute.String("project.id", projectID),
			attribute.Int64("cache.ttl_ms", c.ttl.Milliseconds()),
		))
	defer span.End()

	bytes, err := json.Marshal(summary)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := c.client.rdb.Set(ctx, summaryKey(projectID), bytes, c.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set summary cache: %w", err)
	}
	return nil
}

// Invalidate 失效指定项目的汇总缓存
func (c *SummaryCache) Invalidate(ctx context.Context, projectID string) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Invalidate",
		trace.WithAttributes(attribute.String("project.id", projectID)))
	defer span.End()

	if err := c.client.rdb.Del(ctx, summaryKey(projectID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}
