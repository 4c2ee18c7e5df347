package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/project"
	"haiku-server/internal/interfaces/httpserver/handlers"
	"haiku-server/internal/utils/platformerrors"
)

// MockProjectService is a mock implementation of project.Service for testing.
type MockProjectService struct {
	CreateFunc          func(ctx context.Context, name string) (*project.Project, error)
	ListFunc            func(ctx context.Context) ([]*project.Project, error)
	MaterializeViewFunc func(ctx context.Context, id uint) (*project.View, error)
}

func (m *MockProjectService) Create(ctx context.Context, name string) (*project.Project, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockProjectService) List(ctx context.Context) ([]*project.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectService) MaterializeView(ctx context.Context, id uint) (*project.View, error) {
	if m.MaterializeViewFunc != nil {
		return m.MaterializeViewFunc(ctx, id)
	}
	return nil, nil
}

func setupProjectTestRouter(handler *handlers.ProjectHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/projects/", handler.Create)
	r.GET("/projects/", handler.List)
	return r
}

func TestProjectHandler_Create(t *testing.T) {
	mockService := &MockProjectService{
		CreateFunc: func(ctx context.Context, name string) (*project.Project, error) {
			return &project.Project{ID: 7, Name: name, CreatedAt: time.Now()}, nil
		},
	}

	handler := handlers.NewProjectHandler(mockService, zerolog.Nop())
	router := setupProjectTestRouter(handler)

	body := bytes.NewBufferString(`{"name": "spring poems"}`)
	req, _ := http.NewRequest("POST", "/projects/", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["project_id"] != 7.0 {
		t.Errorf("Expected project_id 7, got %v", response["project_id"])
	}
}

func TestProjectHandler_CreateMissingName(t *testing.T) {
	handler := handlers.NewProjectHandler(&MockProjectService{}, zerolog.Nop())
	router := setupProjectTestRouter(handler)

	body := bytes.NewBufferString(`{}`)
	req, _ := http.NewRequest("POST", "/projects/", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestProjectHandler_CreateValidationError(t *testing.T) {
	mockService := &MockProjectService{
		CreateFunc: func(ctx context.Context, name string) (*project.Project, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "project name is required", nil, "test-001")
		},
	}

	handler := handlers.NewProjectHandler(mockService, zerolog.Nop())
	router := setupProjectTestRouter(handler)

	body := bytes.NewBufferString(`{"name": "   "}`)
	req, _ := http.NewRequest("POST", "/projects/", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestProjectHandler_List(t *testing.T) {
	mockService := &MockProjectService{
		ListFunc: func(ctx context.Context) ([]*project.Project, error) {
			return []*project.Project{
				{ID: 2, Name: "newer"},
				{ID: 1, Name: "older"},
			}, nil
		},
	}

	handler := handlers.NewProjectHandler(mockService, zerolog.Nop())
	router := setupProjectTestRouter(handler)

	req, _ := http.NewRequest("GET", "/projects/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var summaries []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(summaries))
	}
	if summaries[0]["id"] != 2.0 || summaries[0]["name"] != "newer" {
		t.Errorf("Ordering not preserved: %v", summaries)
	}
}

func TestProjectHandler_ListEmpty(t *testing.T) {
	mockService := &MockProjectService{
		ListFunc: func(ctx context.Context) ([]*project.Project, error) {
			return []*project.Project{}, nil
		},
	}

	handler := handlers.NewProjectHandler(mockService, zerolog.Nop())
	router := setupProjectTestRouter(handler)

	req, _ := http.NewRequest("GET", "/projects/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty array, got %s", w.Body.String())
	}
}
