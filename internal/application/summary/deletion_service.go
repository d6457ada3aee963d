package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domain "github.com/summarydesk/backend/internal/domain/summary"
	"github.com/summarydesk/backend/internal/infrastructure/log"
)

// DeletionService 级联删除用例
type DeletionService struct {
	repo      domain.Repository
	domainSvc *domain.Service
	recorder  Recorder
	logger    *slog.Logger
}

// NewDeletionService 创建删除服务
func NewDeletionService(repo domain.Repository, domainSvc *domain.Service, recorder Recorder) *DeletionService {
	return &DeletionService{
		repo:      repo,
		domainSvc: domainSvc,
		recorder:  recorderOrNoop(recorder),
		logger:    log.NewModuleLogger("summary", "deletion"),
	}
}

// DeleteOne 删除一条摘要；作为分组父节点的会话记录连同组内其余记录一起删除
// 父节点的判定与仪表盘分组一致：同键的重复会话记录中只有当选者级联，其余只删除自身。
// 子记录与父记录在同一事务中删除，子记录删除失败时父记录保留
// 返回实际删除的记录数，记录不存在时返回 domain.ErrNotFound
func (s *DeletionService) DeleteOne(ctx context.Context, id int64) (int64, error) {
	logger := log.FromContext(ctx, s.logger)

	var children, parent int64
	var cascade bool
	err := s.repo.WithinTx(ctx, func(tx domain.Repository) error {
		record, err := tx.FindSummary(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find summary: %w", err)
		}
		if record == nil {
			return domain.ErrNotFound
		}

		if record.IsConversation() {
			key := record.GroupingKey()
			group, err := tx.ListGroup(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to list group %q: %w", key, err)
			}
			if _, cascade = s.domainSvc.CascadePlan(record, group); cascade {
				n, err := tx.DeleteGroup(ctx, key, record.ID)
				if err != nil {
					return fmt.Errorf("failed to delete children of %q: %w", key, err)
				}
				children = n
			}
		}

		n, err := tx.DeleteSummary(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete summary: %w", err)
		}
		parent = n

		if children+parent == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Summary to delete not found", "id", id)
			return 0, err
		}
		logger.Error("Failed to delete summary", "id", id, "error", err)
		return 0, err
	}

	if cascade {
		s.recorder.Deleted(deleteKindParent, parent)
		s.recorder.Deleted(deleteKindChild, children)
	} else {
		s.recorder.Deleted(deleteKindSingle, parent)
	}

	total := children + parent
	logger.Info("Summary deleted",
		"id", id,
		"cascade", cascade,
		"children", children,
		"records", total,
	)
	return total, nil
}

// DeleteMany 依次删除多条摘要，单条失败不影响其余条目
// Success 表示批次已处理完毕，各条目的失败原因见 Failed
func (s *DeletionService) DeleteMany(ctx context.Context, ids []int64) *BatchDeleteResult {
	result := &BatchDeleteResult{Success: true, Failed: []DeleteFailure{}}
	for _, id := range ids {
		n, err := s.DeleteOne(ctx, id)
		if err != nil {
			result.Failed = append(result.Failed, DeleteFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Deleted++
		result.Records += n
	}
	return result
}
