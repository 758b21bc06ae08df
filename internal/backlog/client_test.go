package backlog

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoAppendsTokenQueryParam(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("apiKey")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("secret-token")
	status, _, err := client.Do(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if gotToken != "secret-token" {
		t.Errorf("expected apiKey=secret-token, got %q", gotToken)
	}
}

func TestDoOmitsAuthWhenTokenEmpty(t *testing.T) {
	var hasParam bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasParam = r.URL.Query()["apiKey"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("")
	if _, _, err := client.Do(context.Background(), http.MethodGet, server.URL, nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if hasParam {
		t.Error("apiKey parameter should not be sent without a token")
	}
}

func TestDoSetsContentTypeForBody(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("")
	payload := IssuePayload{Issue: IssueFields{Subject: "s", Description: "d"}}
	status, _, err := client.Do(context.Background(), http.MethodPost, server.URL, payload)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("expected status 201, got %d", status)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %q", gotContentType)
	}
	want := `{"issue":{"subject":"s","description":"d"}}`
	if gotBody != want {
		t.Errorf("request body = %s, want %s", gotBody, want)
	}
}

func TestDoReturnsNilPayloadForInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream error</html>`))
	}))
	defer server.Close()

	client := NewClient("")
	status, payload, err := client.Do(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if status != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", status)
	}
	if payload != nil {
		t.Errorf("expected nil payload for non-JSON body, got %s", payload)
	}
}

func TestDoTransportError(t *testing.T) {
	client := NewClient("")
	_, _, err := client.Do(context.Background(), http.MethodGet, "http://127.0.0.1:1", nil)
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestResolveProjectID(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/api/v2/projects/demo.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"project":{"id":42,"projectKey":"DEMO","name":"Demo"}}`))
	}))
	defer server.Close()

	client := NewClient("tok")
	baseURL := server.URL + "/api/v2/projects/demo"

	id, err := client.ResolveProjectID(context.Background(), baseURL)
	if err != nil {
		t.Fatalf("ResolveProjectID failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected project id 42, got %d", id)
	}

	// Second call must come from the cache.
	id, err = client.ResolveProjectID(context.Background(), baseURL)
	if err != nil {
		t.Fatalf("cached ResolveProjectID failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected cached project id 42, got %d", id)
	}
	if hits != 1 {
		t.Errorf("expected 1 metadata request, got %d", hits)
	}
}

func TestResolveProjectIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"no such project"}]}`))
	}))
	defer server.Close()

	client := NewClient("tok")
	_, err := client.ResolveProjectID(context.Background(), server.URL+"/api/v2/projects/ghost")
	var unreachable *RemoteUnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("expected RemoteUnreachableError, got %v", err)
	}
	if unreachable.Status != http.StatusNotFound {
		t.Errorf("expected status 404 in error, got %d", unreachable.Status)
	}
}

func TestResolveProjectIDMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient("tok")
	_, err := client.ResolveProjectID(context.Background(), server.URL+"/api/v2/projects/demo")
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestResolveProjectIDCacheIsPerURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/projects/one.json":
			w.Write([]byte(`{"project":{"id":1}}`))
		case "/api/v2/projects/two.json":
			w.Write([]byte(`{"project":{"id":2}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("tok")
	ctx := context.Background()

	id1, err := client.ResolveProjectID(ctx, server.URL+"/api/v2/projects/one")
	if err != nil {
		t.Fatalf("resolve one: %v", err)
	}
	id2, err := client.ResolveProjectID(ctx, server.URL+"/api/v2/projects/two")
	if err != nil {
		t.Fatalf("resolve two: %v", err)
	}
	if id1 != 1 || id2 != 2 {
		t.Errorf("got ids %d and %d, want 1 and 2", id1, id2)
	}
}
