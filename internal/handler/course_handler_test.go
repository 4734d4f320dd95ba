package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/service"
)

type fakeCourseRepo struct {
	courses map[int64]models.Course
}

func (f *fakeCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	courses := make([]models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		courses = append(courses, course)
	}
	return courses, len(courses), nil
}

func (f *fakeCourseRepo) ListAll(ctx context.Context) ([]models.Course, error) {
	courses, _, err := f.List(ctx, models.CourseFilter{})
	return courses, err
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if course, ok := f.courses[id]; ok {
		return &course, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if f.courses == nil {
		f.courses = make(map[int64]models.Course)
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	delete(f.courses, id)
	return nil
}

type fakeAllocator struct{ next int64 }

func (f *fakeAllocator) NextID(ctx context.Context, sequence string) (int64, error) {
	f.next++
	return f.next, nil
}

func newCourseHandler(repo *fakeCourseRepo) *CourseHandler {
	svc := service.NewCourseService(repo, &fakeAllocator{}, nil, nil, zap.NewNop())
	return NewCourseHandler(svc)
}

func TestCourseHandlerGetInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandler(&fakeCourseRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandler(&fakeCourseRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeCourseRepo{}
	handler := newCourseHandler(repo)

	body := `{"name":"Calculus","instructor":"Dr. Reed","credits":3,"semester":"Fall 2024"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data models.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Calculus", envelope.Data.Name)
	assert.NotZero(t, envelope.Data.ID)
	assert.Len(t, repo.courses, 1)
}

func TestCourseHandlerCreateInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCourseHandler(&fakeCourseRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
