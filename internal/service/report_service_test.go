package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/export"
)

func newReportService(t *testing.T, courses *mockCourseRepo, enabled bool) *ReportService {
	t.Helper()
	return NewReportService(courses, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop(), ReportServiceConfig{
		Enabled:    enabled,
		StorageDir: t.TempDir(),
	})
}

func TestReportServiceGradeReportCSV(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Name: "Calculus", Instructor: "Dr. Reed", Semester: "Fall 2024", Credits: 3, CurrentGrade: 90},
		2: {ID: 2, Name: "Physics", Instructor: "Dr. Chen", Semester: "Fall 2024", Credits: 3, CurrentGrade: 80},
	}}
	svc := newReportService(t, courses, true)

	result, err := svc.GenerateGradeReport(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))
	assert.NotEmpty(t, result.StoredPath)

	body := string(result.Content)
	assert.Contains(t, body, "Calculus")
	assert.Contains(t, body, "A-")
	assert.Contains(t, body, "Cumulative GPA")
	assert.Contains(t, body, "2.80")
}

func TestReportServiceGradeReportPDF(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Name: "Calculus", Credits: 3, CurrentGrade: 90},
	}}
	svc := newReportService(t, courses, true)

	result, err := svc.GenerateGradeReport(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.NotEmpty(t, result.Content)
}

func TestReportServiceUnsupportedFormat(t *testing.T) {
	svc := newReportService(t, &mockCourseRepo{}, true)

	_, err := svc.GenerateGradeReport(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceDisabled(t *testing.T) {
	svc := newReportService(t, &mockCourseRepo{}, false)

	_, err := svc.GenerateGradeReport(context.Background(), "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
