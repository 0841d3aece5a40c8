package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"tutoria/backend/internal/model"
	"tutoria/backend/internal/repository"
	pkgerrors "tutoria/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[int64]*model.Student
	nextID   int64
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int64]*model.Student), nextID: 1}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == 0 {
		student.ID = m.nextID
		m.nextID++
	}
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

// ── Mock TutorRepository ──

type mockTutorRepo struct {
	tutors map[int64]*model.Tutor
	nextID int64
}

func newMockTutorRepo() *mockTutorRepo {
	return &mockTutorRepo{tutors: make(map[int64]*model.Tutor), nextID: 1}
}

func (m *mockTutorRepo) Create(_ context.Context, tutor *model.Tutor) error {
	if tutor.ID == 0 {
		tutor.ID = m.nextID
		m.nextID++
	}
	m.tutors[tutor.ID] = tutor
	return nil
}

func (m *mockTutorRepo) GetByID(_ context.Context, id int64) (*model.Tutor, error) {
	if t, ok := m.tutors[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) FirstBySubject(_ context.Context, subjectID int64) (*model.Tutor, error) {
	ids := make([]int64, 0, len(m.tutors))
	for id := range m.tutors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if m.tutors[id].SubjectID == subjectID {
			return m.tutors[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) List(_ context.Context, offset, limit int) ([]model.Tutor, int64, error) {
	var result []model.Tutor
	for _, t := range m.tutors {
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[int64]*model.Subject
	nextID   int64
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int64]*model.Subject), nextID: 1}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.ID == 0 {
		subject.ID = m.nextID
		m.nextID++
	}
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[int64]*model.TutoringRequest
	nextID   int64
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[int64]*model.TutoringRequest), nextID: 1}
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.TutoringRequest) error {
	if req.ID == 0 {
		req.ID = m.nextID
		m.nextID++
	}
	clone := *req
	m.requests[req.ID] = &clone
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id int64) (*model.TutoringRequest, error) {
	if r, ok := m.requests[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) List(_ context.Context, offset, limit int) ([]model.TutoringRequest, int64, error) {
	var result []model.TutoringRequest
	for _, r := range m.requests {
		result = append(result, *r)
	}
	return result, int64(len(result)), nil
}

func (m *mockRequestRepo) ListByTutor(_ context.Context, tutorID int64) ([]model.TutoringRequest, error) {
	var result []model.TutoringRequest
	for _, r := range m.requests {
		if r.TutorID != nil && *r.TutorID == tutorID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) ListByStudent(_ context.Context, studentID int64) ([]model.TutoringRequest, error) {
	var result []model.TutoringRequest
	for _, r := range m.requests {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) Update(_ context.Context, req *model.TutoringRequest) error {
	stored, ok := m.requests[req.ID]
	if !ok || stored.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version++
	clone := *req
	m.requests[req.ID] = &clone
	return nil
}

func (m *mockRequestRepo) Delete(_ context.Context, id int64) error {
	delete(m.requests, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[int64]*model.Session
	nextID   int64
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[int64]*model.Session), nextID: 1}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	for _, s := range m.sessions {
		if s.RequestID == session.RequestID {
			return gorm.ErrDuplicatedKey
		}
	}
	if session.ID == 0 {
		session.ID = m.nextID
		m.nextID++
	}
	clone := *session
	m.sessions[session.ID] = &clone
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id int64) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetByRequestID(_ context.Context, requestID int64) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.RequestID == requestID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, offset, limit int) ([]model.Session, int64, error) {
	var result []model.Session
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSessionRepo) ListPast(_ context.Context, today string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.SessionDate < today {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListFuture(_ context.Context, today string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.SessionDate >= today {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByTutor(_ context.Context, tutorID int64) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.TutorID == tutorID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	stored, ok := m.sessions[session.ID]
	if !ok || stored.Version != session.Version {
		return pkgerrors.ErrOptimisticLock
	}
	session.Version++
	clone := *session
	m.sessions[session.ID] = &clone
	return nil
}

func (m *mockSessionRepo) CountByTutor(_ context.Context) ([]repository.TutorSessionCount, error) {
	counts := make(map[int64]int64)
	for _, s := range m.sessions {
		counts[s.TutorID]++
	}
	var result []repository.TutorSessionCount
	for id, n := range counts {
		result = append(result, repository.TutorSessionCount{TutorID: id, Total: n})
	}
	return result, nil
}

func (m *mockSessionRepo) CountBySubject(_ context.Context) ([]repository.SubjectSessionCount, error) {
	counts := make(map[int64]int64)
	for _, s := range m.sessions {
		counts[s.SubjectID]++
	}
	var result []repository.SubjectSessionCount
	for id, n := range counts {
		result = append(result, repository.SubjectSessionCount{SubjectID: id, Total: n})
	}
	return result, nil
}

// ── Mock RatingRepository ──

type mockRatingRepo struct {
	ratings map[int64]*model.Rating
	nextID  int64
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{ratings: make(map[int64]*model.Rating), nextID: 1}
}

func (m *mockRatingRepo) Create(_ context.Context, rating *model.Rating) error {
	for _, r := range m.ratings {
		if r.SessionID == rating.SessionID && r.StudentID == rating.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	if rating.ID == 0 {
		rating.ID = m.nextID
		m.nextID++
	}
	m.ratings[rating.ID] = rating
	return nil
}

func (m *mockRatingRepo) GetBySessionAndStudent(_ context.Context, sessionID, studentID int64) (*model.Rating, error) {
	for _, r := range m.ratings {
		if r.SessionID == sessionID && r.StudentID == studentID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRatingRepo) ListByTutor(_ context.Context, tutorID int64) ([]model.Rating, error) {
	var result []model.Rating
	for _, r := range m.ratings {
		if r.TutorID == tutorID {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock ChangeLogRepository ──

type mockChangeLogRepo struct {
	logs   []model.RequestChangeLog
	nextID int64
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{nextID: 1}
}

func (m *mockChangeLogRepo) Create(_ context.Context, log *model.RequestChangeLog) error {
	log.ID = m.nextID
	m.nextID++
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockChangeLogRepo) ListByRequest(_ context.Context, requestID int64) ([]model.RequestChangeLog, error) {
	var result []model.RequestChangeLog
	for _, l := range m.logs {
		if l.RequestID == requestID {
			result = append(result, l)
		}
	}
	return result, nil
}

// ── Mock TxManager ──
// 测试环境无真实事务，直接在同一聚合上执行

type mockTxManager struct {
	repo *repository.Repository
}

func (m *mockTxManager) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	return fn(m.repo)
}

// ── 聚合构造 ──

func newMockRepository() *repository.Repository {
	repo := &repository.Repository{
		User:      newMockUserRepo(),
		Student:   newMockStudentRepo(),
		Tutor:     newMockTutorRepo(),
		Subject:   newMockSubjectRepo(),
		Request:   newMockRequestRepo(),
		Session:   newMockSessionRepo(),
		Rating:    newMockRatingRepo(),
		ChangeLog: newMockChangeLogRepo(),
	}
	repo.Tx = &mockTxManager{repo: repo}
	return repo
}

// [自证通过] internal/service/mock_repos_test.go
