package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/grading"
	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/export"
)

// Report formats accepted by the grade report endpoint.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

type reportCourseStore interface {
	ListAll(ctx context.Context) ([]models.Course, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ReportServiceConfig controls report generation and file retention.
type ReportServiceConfig struct {
	Enabled    bool
	StorageDir string
}

// ReportService renders grade reports and stores a copy on disk.
type ReportService struct {
	courses reportCourseStore
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ReportServiceConfig
}

// NewReportService constructs the report service.
func NewReportService(courses reportCourseStore, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = "./exports"
	}
	return &ReportService{courses: courses, csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// GenerateGradeReport renders all courses with their letter grades and GPA
// into the requested format. The rendered file is also written under the
// storage directory with a unique name so past reports remain retrievable.
func (s *ReportService) GenerateGradeReport(ctx context.Context, format string) (*dto.ReportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrValidation, "report generation is disabled")
	}
	format = strings.ToLower(format)
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}

	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	table := buildGradeTable(courses)

	var content []byte
	var contentType string
	switch format {
	case ReportFormatCSV:
		content, err = s.csv.Render(table)
		contentType = "text/csv"
	case ReportFormatPDF:
		content, err = s.pdf.Render(table, "Grade Report")
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := fmt.Sprintf("grade-report-%s-%s.%s", time.Now().UTC().Format("20060102"), uuid.NewString(), format)
	storedPath, err := s.store(filename, content)
	if err != nil {
		s.logger.Warn("failed to store report copy", zap.String("filename", filename), zap.Error(err))
		storedPath = ""
	}

	return &dto.ReportResult{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
		StoredPath:  storedPath,
	}, nil
}

func (s *ReportService) store(filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.StorageDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	path := filepath.Join(s.cfg.StorageDir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}

func buildGradeTable(courses []models.Course) export.Table {
	table := export.Table{
		Columns: []string{"Course", "Instructor", "Semester", "Credits", "Grade", "Letter", "Points"},
	}
	grades := make([]grading.CreditGrade, 0, len(courses))
	for _, course := range courses {
		grades = append(grades, grading.CreditGrade{Percentage: course.CurrentGrade, Credits: course.Credits})
		table.Rows = append(table.Rows, []string{
			course.Name,
			course.Instructor,
			course.Semester,
			strconv.Itoa(course.Credits),
			fmt.Sprintf("%.1f%%", course.CurrentGrade),
			grading.LetterGrade(course.CurrentGrade),
			fmt.Sprintf("%.1f", grading.GradePoints(course.CurrentGrade)),
		})
	}
	table.Rows = append(table.Rows, []string{
		"Cumulative GPA", "", "", "", "", "",
		fmt.Sprintf("%.2f", grading.ComputeGPA(grades)),
	})
	return table
}
