package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"spendtrack/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

const testCookieName = "expensetracker_session"

func newTestContext(cookieValue string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookieValue})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResolver_Resolve(t *testing.T) {
	tokens := NewTokenService("test-secret")
	transport := NewSessionTransport(testCookieName, false)
	userID := uuid.New()

	validToken, err := tokens.Issue(userID.String(), "test@example.com")
	assert.NoError(t, err)

	foreignToken, err := NewTokenService("other-secret").Issue(userID.String(), "test@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		cookie    string
		setupMock func(*MockUserRepository)
		wantUser  bool
	}{
		{
			name:      "no cookie",
			cookie:    "",
			setupMock: func(m *MockUserRepository) {},
			wantUser:  false,
		},
		{
			name:      "invalid token",
			cookie:    foreignToken,
			setupMock: func(m *MockUserRepository) {},
			wantUser:  false,
		},
		{
			name:   "valid token, user deleted",
			cookie: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindProfileByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantUser: false,
		},
		{
			name:   "valid token, user found",
			cookie: validToken,
			setupMock: func(m *MockUserRepository) {
				m.On("FindProfileByID", mock.Anything, userID).Return(&model.User{
					ID:    userID,
					Email: "test@example.com",
				}, nil)
			},
			wantUser: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			resolver := NewResolver(tokens, transport, mockRepo)
			user := resolver.Resolve(newTestContext(tt.cookie))

			if tt.wantUser {
				assert.NotNil(t, user)
				assert.Equal(t, userID, user.ID)
			} else {
				assert.Nil(t, user)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestResolver_Middleware(t *testing.T) {
	tokens := NewTokenService("test-secret")
	transport := NewSessionTransport(testCookieName, false)
	userID := uuid.New()

	t.Run("claims resolve to a user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProfileByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		resolver := NewResolver(tokens, transport, mockRepo)

		c := newTestContext("")
		c.Set(ContextClaimsKey, &Claims{RegisteredClaims: claimsFor(userID)})

		var seen *model.User
		handler := resolver.Middleware()(func(c echo.Context) error {
			seen = CurrentUser(c)
			return nil
		})
		assert.NoError(t, handler(c))
		assert.NotNil(t, seen)
		assert.Equal(t, userID, seen.ID)
	})

	t.Run("valid token whose subject is gone is unauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindProfileByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		resolver := NewResolver(tokens, transport, mockRepo)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ContextClaimsKey, &Claims{RegisteredClaims: claimsFor(userID)})

		handler := resolver.Middleware()(func(c echo.Context) error {
			t.Fatal("handler should not run")
			return nil
		})
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func claimsFor(userID uuid.UUID) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: userID.String()}
}
