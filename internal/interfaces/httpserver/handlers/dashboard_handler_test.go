package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"haiku-server/internal/domain/project"
	"haiku-server/internal/interfaces/httpserver/handlers"
	"haiku-server/internal/notify"
	"haiku-server/internal/utils/platformerrors"
)

func dialDashboard(t *testing.T, handler *handlers.DashboardHandler, projectID string) (*websocket.Conn, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/projects/dashboard/:project_id", handler.Subscribe)

	server := httptest.NewServer(r)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/projects/dashboard/" + projectID

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("websocket dial failed: %v", err)
	}
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readView(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var payload map[string]interface{}
	if err := conn.ReadJSON(&payload); err != nil {
		t.Fatalf("failed to read push: %v", err)
	}
	return payload
}

func TestDashboard_InitialPushOnConnect(t *testing.T) {
	mockService := &MockProjectService{
		MaterializeViewFunc: func(ctx context.Context, id uint) (*project.View, error) {
			return &project.View{
				ProjectID: id,
				Name:      "observed",
				Haikus: []project.HaikuView{
					{ID: 1, Title: "first", Text: "snow"},
				},
			}, nil
		},
	}

	handler := handlers.NewDashboardHandler(mockService, notify.NewHub(), zerolog.Nop())
	conn, cleanup := dialDashboard(t, handler, "5")
	defer cleanup()

	view := readView(t, conn)
	if view["project_id"] != 5.0 {
		t.Errorf("Expected project_id 5, got %v", view["project_id"])
	}
	if view["name"] != "observed" {
		t.Errorf("Expected name observed, got %v", view["name"])
	}
	haikus, ok := view["haikus"].([]interface{})
	if !ok || len(haikus) != 1 {
		t.Errorf("Expected one haiku in the initial push, got %v", view["haikus"])
	}
}

func TestDashboard_DirtyMarkTriggersPush(t *testing.T) {
	calls := make(chan uint, 8)
	mockService := &MockProjectService{
		MaterializeViewFunc: func(ctx context.Context, id uint) (*project.View, error) {
			calls <- id
			return &project.View{ProjectID: id, Name: "live", Haikus: []project.HaikuView{}}, nil
		},
	}

	hub := notify.NewHub()
	handler := handlers.NewDashboardHandler(mockService, hub, zerolog.Nop())
	conn, cleanup := dialDashboard(t, handler, "9")
	defer cleanup()

	readView(t, conn)
	<-calls

	hub.MarkDirty(9)
	readView(t, conn)

	select {
	case id := <-calls:
		if id != 9 {
			t.Errorf("Expected re-materialization of project 9, got %d", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("dirty mark never triggered a push")
	}
}

func TestDashboard_MarksCoalesceIntoOnePush(t *testing.T) {
	// Hold the initial materialization open so the whole burst of marks
	// lands before the push loop starts waiting.
	gate := make(chan struct{})
	first := true
	mockService := &MockProjectService{
		MaterializeViewFunc: func(ctx context.Context, id uint) (*project.View, error) {
			if first {
				first = false
				<-gate
			}
			return &project.View{ProjectID: id, Name: "burst", Haikus: []project.HaikuView{}}, nil
		},
	}

	hub := notify.NewHub()
	handler := handlers.NewDashboardHandler(mockService, hub, zerolog.Nop())
	conn, cleanup := dialDashboard(t, handler, "3")
	defer cleanup()

	hub.MarkDirty(3)
	hub.MarkDirty(3)
	hub.MarkDirty(3)
	close(gate)

	// Initial push, then exactly one push for the coalesced burst.
	readView(t, conn)
	readView(t, conn)

	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var extra map[string]interface{}
	if err := conn.ReadJSON(&extra); err == nil {
		t.Error("coalesced burst produced more than one push")
	}
}

func TestDashboard_MissingProjectClosesAfterError(t *testing.T) {
	mockService := &MockProjectService{
		MaterializeViewFunc: func(ctx context.Context, id uint) (*project.View, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeNotFound, "project not found", nil, "test-404")
		},
	}

	handler := handlers.NewDashboardHandler(mockService, notify.NewHub(), zerolog.Nop())
	conn, cleanup := dialDashboard(t, handler, "404")
	defer cleanup()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var payload map[string]interface{}
	if err := conn.ReadJSON(&payload); err != nil {
		t.Fatalf("expected an error payload before close: %v", err)
	}
	if payload["error"] == nil {
		t.Errorf("expected error payload, got %v", payload)
	}

	// The server must close the connection after the error payload.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed after the error payload")
	}
}

func TestDashboard_InvalidProjectIDRejected(t *testing.T) {
	handler := handlers.NewDashboardHandler(&MockProjectService{}, notify.NewHub(), zerolog.Nop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/projects/dashboard/:project_id", handler.Subscribe)
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/projects/dashboard/not-a-number"
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatal("expected upgrade rejection for invalid project id")
	}
}
