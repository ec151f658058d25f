package hike

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestHikeHandlers(t *testing.T) {
	svc := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), svc, passthrough)

	body, _ := json.Marshal(testRecord())
	req := httptest.NewRequest(http.MethodPost, "/hikes/alice", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %d", err, resp.StatusCode)
	}
	var created Record
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/hikes/alice", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v %d", err, resp.StatusCode)
	}
	var list []Record
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one record, got %d", len(list))
	}

	req = httptest.NewRequest(http.MethodPost, "/hikes/alice/"+created.ID+"/complete", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status: %v %d", err, resp.StatusCode)
	}
	var completed Record
	if err := json.NewDecoder(resp.Body).Decode(&completed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("unexpected status: %s", completed.Status)
	}

	req = httptest.NewRequest(http.MethodDelete, "/hikes/alice/"+created.ID, nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v %d", err, resp.StatusCode)
	}
}

func TestHikeHandlersValidation(t *testing.T) {
	svc := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), svc, passthrough)

	req := httptest.NewRequest(http.MethodPost, "/hikes/alice", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestHikeHandlersNotFound(t *testing.T) {
	svc := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), svc, passthrough)

	req := httptest.NewRequest(http.MethodGet, "/hikes/alice/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}

func TestHikeHandlersCompleteConflict(t *testing.T) {
	svc := newTestService()
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), svc, passthrough)

	body, _ := json.Marshal(testRecord())
	req := httptest.NewRequest(http.MethodPost, "/hikes/alice", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	var created Record
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/hikes/alice/"+created.ID+"/complete", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("complete: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/hikes/alice/"+created.ID+"/complete", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", resp.StatusCode)
	}
}
