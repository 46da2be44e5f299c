package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/config"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(context.Background(), config.NotionConfig{
		APIKey:  "secret_test",
		BaseURL: server.URL,
		Version: "2022-06-28",
		Timeout: 5 * time.Second,
	}, logg, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return client, server
}

func TestNewClientRequiresCredentials(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	if _, err := NewClient(context.Background(), config.NotionConfig{}, logg, nil); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient(context.Background(), config.NotionConfig{APIKey: "k"}, nil, nil); err == nil {
		t.Fatal("expected error for missing logger")
	}
}

func TestCreateSendsParentAndProperties(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"rec-1","properties":{}}`)
	})

	record, err := client.Create(context.Background(), "col-1", docstore.Properties{
		"Name": docstore.Title("Benchy"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if record.ID != "rec-1" {
		t.Fatalf("unexpected record id %q", record.ID)
	}
	if gotPath != "POST /v1/pages" {
		t.Fatalf("unexpected request %q", gotPath)
	}
	if gotAuth != "Bearer secret_test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotVersion != "2022-06-28" {
		t.Fatalf("unexpected version header %q", gotVersion)
	}
	parent, ok := gotBody["parent"].(map[string]any)
	if !ok || parent["database_id"] != "col-1" {
		t.Fatalf("unexpected parent %v", gotBody["parent"])
	}
}

func TestFindOneReturnsNilOnNoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/databases/col-9/query" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		filter, ok := body["filter"].(map[string]any)
		if !ok || filter["property"] != "Customer" {
			t.Fatalf("unexpected filter %v", body["filter"])
		}
		io.WriteString(w, `{"results":[]}`)
	})

	record, err := client.FindOne(context.Background(), "col-9", docstore.TitleEquals("Customer", "Ana"))
	if err != nil {
		t.Fatalf("FindOne error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record on empty result, got %+v", record)
	}
}

func TestFindOneReturnsFirstMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[{"id":"rec-a"},{"id":"rec-b"}]}`)
	})

	record, err := client.FindOne(context.Background(), "col-9", docstore.RelationContains("Product", "rec-p"))
	if err != nil {
		t.Fatalf("FindOne error: %v", err)
	}
	if record == nil || record.ID != "rec-a" {
		t.Fatalf("expected first result, got %+v", record)
	}
}

func TestArchiveSendsArchivedFlag(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/pages/rec-3" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		io.WriteString(w, `{"id":"rec-3","archived":true}`)
	})

	record, err := client.Archive(context.Background(), "rec-3")
	if err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if !record.Archived {
		t.Fatalf("expected archived record")
	}
	if gotBody["archived"] != true {
		t.Fatalf("expected archived flag in request, got %v", gotBody)
	}
}

func TestErrorMappingByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   pkgerrors.Code
	}{
		{name: "bad request", status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "not found", status: http.StatusNotFound, code: pkgerrors.CodeNotFound},
		{name: "conflict", status: http.StatusConflict, code: pkgerrors.CodeConflict},
		{name: "rate limited", status: http.StatusTooManyRequests, code: pkgerrors.CodeRateLimit},
		{name: "server error", status: http.StatusInternalServerError, code: pkgerrors.CodeDependency},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, `{"code":"remote_error","message":"nope"}`)
			})

			_, err := client.Retrieve(context.Background(), "rec-1")
			if err == nil {
				t.Fatal("expected error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
		})
	}
}
