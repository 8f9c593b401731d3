package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTargetEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   string
	}{
		{"element", Element("42"), "/preview/element/42"},
		{"element escaped", Element("a b"), "/preview/element/a%20b"},
		{"page", Page("/about"), "/preview/page/about"},
		{"page without slash", Page("login"), "/preview/page/login"},
		{"root page", Page("/"), "/preview/page/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Endpoint(); got != tt.want {
				t.Errorf("Endpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "session=abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/preview/element/7":
			io.WriteString(w, `{"pid":"7","text":"hi"}`)
		case "/preview/json":
			io.WriteString(w, `{"pages":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client(), nil)
	c.SetCookie("session=abc")
	ctx := context.Background()

	data, err := c.Fetch(ctx, Element("7"))
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil || got["text"] != "hi" {
		t.Errorf("unexpected payload %s (%v)", data, err)
	}

	if _, err := c.FetchJSON(ctx); err != nil {
		t.Errorf("fetch json failed: %v", err)
	}

	_, err = c.Fetch(ctx, Page("/missing"))
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Path != "/preview/page/missing" {
		t.Errorf("unexpected status error: %+v", se)
	}
}

func TestClientSubmit(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	res, err := c.Submit(context.Background(), Page("/about"), json.RawMessage(`{"a":1}`))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if string(res) != `{"status":"ok"}` {
		t.Errorf("result = %s", res)
	}
	if gotBody != `{"a":1}` || gotType != "application/json" {
		t.Errorf("server saw body %q type %q", gotBody, gotType)
	}
}

func TestClientRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>login</html>")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client(), nil)
	if _, err := c.Fetch(context.Background(), Element("1")); !errors.Is(err, ErrNotJSON) {
		t.Errorf("expected ErrNotJSON, got %v", err)
	}
}
