package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testModel struct {
	Name string `json:"name"`
}

func (m testModel) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))

	var m testModel
	if err := Decode(r, &m); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Name != "ok" {
		t.Errorf("got name %q, want %q", m.Name, "ok")
	}
}

func TestDecodeValidates(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))

	var m testModel
	if err := Decode(r, &m); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))

	var m testModel
	if err := Decode(r, &m); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()

	resp := NewJSONResponseWithStatus(testModel{Name: "ok"}, http.StatusCreated)
	if err := Respond(context.Background(), w, resp); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("got status %d, want %d", w.Code, http.StatusCreated)
	}

	var m testModel
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if m.Name != "ok" {
		t.Errorf("got name %q, want %q", m.Name, "ok")
	}
}

func TestRespondNoResponse(t *testing.T) {
	w := httptest.NewRecorder()

	if err := Respond(context.Background(), w, NewNoResponse()); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestRouteGroupPrefixes(t *testing.T) {
	app := NewWebHandler(HandlerOptions{})

	var gotPath, gotParam string
	handler := func(ctx context.Context, r *http.Request) Encoder {
		gotPath = r.URL.Path
		gotParam = Param(r, "thing_id")
		return NewJSONResponse(testModel{Name: "ok"})
	}

	group := app.Group("/api/v1")
	nested := group.Group("/admin")
	nested.GET("/things/{thing_id}", handler)

	r := httptest.NewRequest("GET", "/api/v1/admin/things/42", nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if gotPath != "/api/v1/admin/things/42" {
		t.Errorf("handler saw path %q", gotPath)
	}
	if gotParam != "42" {
		t.Errorf("got path param %q, want %q", gotParam, "42")
	}
}

func TestMiddlewareOrder(t *testing.T) {
	app := NewWebHandler(HandlerOptions{})

	var order []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, r *http.Request) Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	group := app.Group("/api", mw("group"))
	group.GET("/x", func(ctx context.Context, r *http.Request) Encoder {
		order = append(order, "handler")
		return NewNoResponse()
	}, mw("route"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest("GET", "/api/x", nil))

	want := []string{"group", "route", "handler"}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}
