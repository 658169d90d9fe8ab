package workflow

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/logger"
	"ad-workflow-api/pkg/metrics"
)

var tracer = otel.Tracer("application/workflow")

// Numberer AD number 发放服务
// 编号来自全局计数器，单调递增且无空洞：
// 自增与写入同在一个事务里，任一失败整体回滚
type Numberer struct {
	counterRepo     repository.CounterRepository
	deliverableRepo repository.DeliverableRepository
	tx              repository.Transactor
}

// NewNumberer 创建编号服务
func NewNumberer(counterRepo repository.CounterRepository, deliverableRepo repository.DeliverableRepository, tx repository.Transactor) *Numberer {
	return &Numberer{counterRepo: counterRepo, deliverableRepo: deliverableRepo, tx: tx}
}

// AssignNumbers 为视频内全部未编号素材分配 AD number
// 按 hookNumber 升序发号，保证同一视频内编号与 hook 顺序一致
// 已编号素材跳过，重复调用幂等
func (n *Numberer) AssignNumbers(ctx context.Context, videoID string) (int, error) {
	ctx, span := tracer.Start(ctx, "Numberer.AssignNumbers")
	defer span.End()
	span.SetAttributes(attribute.String("video.id", videoID))

	assigned := 0
	err := n.tx.WithTransaction(ctx, func(ctx context.Context) error {
		pending, err := n.deliverableRepo.ListUnnumberedByVideo(ctx, videoID)
		if err != nil {
			return err
		}

		for _, d := range pending {
			number, err := n.counterRepo.Increment(ctx)
			if err != nil {
				return err
			}
			if err := n.deliverableRepo.SetAdNumber(ctx, d.ID, number); err != nil {
				return err
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	if assigned > 0 {
		metrics.AdNumbersIssuedTotal.Add(float64(assigned))
		logger.Info(ctx, "AD numbers 分配完成", "video_id", videoID, "count", assigned)
	}
	return assigned, nil
}

// CurrentNumber 读取计数器当前值
func (n *Numberer) CurrentNumber(ctx context.Context) (int, error) {
	return n.counterRepo.Current(ctx)
}
