package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty falls back", "", "http://127.0.0.1:4000"},
		{"bare host:port", "localhost:4000", "http://localhost:4000"},
		{"full url", "https://assets.example.com", "https://assets.example.com"},
		{"strips path", "https://assets.example.com/api/", "https://assets.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBaseURL(tt.input)
			if err != nil {
				t.Fatalf("parseBaseURL(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Fatalf("parseBaseURL(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestRequestsAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.AssetRequest{{ID: "r1", MessageCount: 2}})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, TokenFunc(func() string { return "tok-1" }))
	if err != nil {
		t.Fatal(err)
	}

	reqs, err := c.Requests(context.Background())
	if err != nil {
		t.Fatalf("Requests() error = %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want Bearer tok-1", gotAuth)
	}
	if len(reqs) != 1 || reqs[0].MessageCount != 2 {
		t.Fatalf("Requests() = %#v, want decoded payload", reqs)
	}
}

func TestEmptyTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, TokenFunc(func() string { return "" }))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Assets(context.Background()); err != nil {
		t.Fatalf("Assets() error = %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty when logged out", gotAuth)
	}
}

func TestErrorStatusSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveAsset(context.Background(), models.Asset{ID: "a1"}); err == nil {
		t.Fatal("SaveAsset() = nil, want error on 403")
	}
}

func TestLoginDecodesProfileAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q, want /api/auth/login", r.URL.Path)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["email"] != "ann@example.com" {
			t.Errorf("email = %q", in["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  models.AuthProfile{ID: "u1", Role: models.RoleAdmin},
			"token": "tok-9",
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	user, token, err := c.Login(context.Background(), "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "u1" || token != "tok-9" {
		t.Fatalf("Login() = %#v, %q; want u1 and tok-9", user, token)
	}
}
