package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

type stubAuthenticator struct {
	users map[string]*model.User
	err   error
	seen  string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, bearer string) (*model.User, error) {
	s.seen = bearer
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[bearer]
	if !ok {
		return nil, &service.Error{Kind: service.KindUnauthorized, Message: "invalid or expired token"}
	}
	return u, nil
}

func serve(t *testing.T, auth Authenticator, header string) (*httptest.ResponseRecorder, *model.User) {
	t.Helper()
	var got *model.User
	h := Authenticate(auth, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, got
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthenticate_ValidToken(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	auth := &stubAuthenticator{users: map[string]*model.User{"good-token": user}}

	rec, got := serve(t, auth, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, got)
	assert.Equal(t, "good-token", auth.seen)
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	auth := &stubAuthenticator{users: map[string]*model.User{"tok": user}}

	rec, got := serve(t, auth, "bearer tok")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user, got)
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz", "good-token"} {
		t.Run(header, func(t *testing.T) {
			auth := &stubAuthenticator{}
			rec, got := serve(t, auth, header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, got)
			assert.Empty(t, auth.seen, "authenticator must not be called")
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, errorBody(t, rec))
		})
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	rec, got := serve(t, &stubAuthenticator{}, "Bearer forged")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
	assert.Equal(t, "invalid or expired token", errorBody(t, rec))
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	auth := &stubAuthenticator{err: &service.Error{Kind: service.KindNotFound, Message: "User not found"}}

	rec, _ := serve(t, auth, "Bearer orphan")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorBody(t, rec))
}

func TestAuthenticate_StoreFailureIsOpaque(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}

	rec, _ := serve(t, auth, "Bearer whatever")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "authentication failed", errorBody(t, rec))
}

func TestUserFromContext_Empty(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
}
