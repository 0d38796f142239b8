package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/arindamg/taskledger/internal/auth"
)

func hash(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

func TestLogin_IssuesParsableToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, "test-secret", time.Hour)

	repo.EXPECT().GetUserByEmail(gomock.Any(), "ca@firm.example").Return(&auth.User{
		ID:           7,
		Email:        "ca@firm.example",
		PasswordHash: hash(t, "correct-horse"),
	}, nil)

	token, u, err := svc.Login(context.Background(), "ca@firm.example", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestLogin_BadCredentials(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *auth.MockRepository)
	}{
		{
			name: "UnknownEmail",
			setup: func(repo *auth.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(nil, auth.ErrUserNotFound)
			},
		},
		{
			name: "WrongPassword",
			setup: func(repo *auth.MockRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(&auth.User{ID: 7, PasswordHash: hash(t, "other")}, nil)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := auth.NewMockRepository(ctrl)
			tc.setup(repo)

			svc := auth.NewService(repo, "test-secret", time.Hour)

			_, _, err := svc.Login(context.Background(), "ca@firm.example", "correct-horse")
			require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestParseToken_RejectsExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	issued := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	svc := auth.NewService(repo, "test-secret", time.Hour, auth.WithClock(func() time.Time { return issued }))

	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&auth.User{
		ID:           7,
		PasswordHash: hash(t, "correct-horse"),
	}, nil)

	token, _, err := svc.Login(context.Background(), "ca@firm.example", "correct-horse")
	require.NoError(t, err)

	later := auth.NewService(repo, "test-secret", time.Hour,
		auth.WithClock(func() time.Time { return issued.Add(2 * time.Hour) }))

	_, err = later.ParseToken(token)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestRegister_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auth.NewService(auth.NewMockRepository(ctrl), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "ca@firm.example", "CA", "short")
	require.ErrorIs(t, err, auth.ErrInvalid)
}

func TestMiddleware_InjectsUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, "test-secret", time.Hour)

	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&auth.User{
		ID:           7,
		PasswordHash: hash(t, "correct-horse"),
	}, nil)

	token, _, err := svc.Login(context.Background(), "ca@firm.example", "correct-horse")
	require.NoError(t, err)

	var gotUserID int64

	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = auth.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotUserID)
}

func TestMiddleware_RejectsMissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := auth.NewService(auth.NewMockRepository(ctrl), "test-secret", time.Hour)

	handler := svc.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
