package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSubject string

func (s staticSubject) GetSubject() string { return string(s) }

type fakeValidator struct {
	accept  string
	subject string
}

func (v *fakeValidator) ValidateToken(token string) (SubjectGetter, error) {
	if token == v.accept {
		return staticSubject(v.subject), nil
	}
	return nil, errors.New("invalid token")
}

func newProtected(v TokenValidator) (http.Handler, *string) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := GetSubject(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		got = subject
		w.WriteHeader(http.StatusNoContent)
	})
	return AuthMiddleware(v)(inner), &got
}

func TestAuthMiddlewareAccepts(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"standard", "Bearer good-token"},
		{"lowercase scheme", "bearer good-token"},
		{"extra spacing", "Bearer   good-token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, got := newProtected(&fakeValidator{accept: "good-token", subject: "ops@example.com"})
			req := httptest.NewRequest(http.MethodGet, "/process", nil)
			req.Header.Set("Authorization", tc.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "ops@example.com", *got)
		})
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer"},
		{"bad token", "Bearer bad-token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newProtected(&fakeValidator{accept: "good-token"})
			req := httptest.NewRequest(http.MethodGet, "/process", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetSubjectOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/process", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)
}
