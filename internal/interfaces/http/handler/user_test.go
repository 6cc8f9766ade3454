package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/momohub/backend/internal/application/identity"
	"github.com/momohub/backend/internal/domain/identity"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/momohub/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserTestRouter(userRepo *MockUserRepository, userID uuid.UUID, role string) *gin.Engine {
	svc := identityapp.NewUserService(userRepo, zap.NewNop())
	h := NewUserHandler(svc)

	engine := gin.New()
	g := engine.Group("/api/v1/users", authAs(userID, role))
	g.GET("/me", h.Me)
	g.GET("", middleware.RequireAdmin(), h.List)
	g.GET("/:id", middleware.RequireAdmin(), h.GetByID)
	g.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	return engine
}

func TestUserHandlerMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := newStoredUser(t)
	engine := newUserTestRouter(userRepo, user.ID, "customer")

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, user.Email, data["email"])
	assert.Equal(t, "customer", data["role"])
}

func TestUserHandlerList(t *testing.T) {
	t.Run("admin sees everyone but themselves", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		adminID := uuid.New()
		engine := newUserTestRouter(userRepo, adminID, "admin")

		other := newStoredUser(t)
		userRepo.On("FindAllExcept", mock.Anything, adminID, mock.AnythingOfType("shared.Filter")).
			Return([]identity.User{*other}, nil)

		req := httptest.NewRequest("GET", "/api/v1/users?page=1&page_size=20", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		items := decodeBody(t, w)["data"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, other.Email, items[0].(map[string]interface{})["email"])
	})

	t.Run("customers are refused", func(t *testing.T) {
		engine := newUserTestRouter(new(MockUserRepository), uuid.New(), "customer")

		req := httptest.NewRequest("GET", "/api/v1/users", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserHandlerGetByID(t *testing.T) {
	t.Run("admin fetches one account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		engine := newUserTestRouter(userRepo, uuid.New(), "admin")

		user := newStoredUser(t)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		req := httptest.NewRequest("GET", "/api/v1/users/"+user.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, user.Email, data["email"])
	})

	t.Run("missing account yields 404", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		engine := newUserTestRouter(userRepo, uuid.New(), "admin")

		missingID := uuid.New()
		userRepo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest("GET", "/api/v1/users/"+missingID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandlerDelete(t *testing.T) {
	t.Run("admin deletes another account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		adminID := uuid.New()
		engine := newUserTestRouter(userRepo, adminID, "admin")

		targetID := uuid.New()
		userRepo.On("Delete", mock.Anything, targetID).Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/users/"+targetID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		userRepo.AssertExpectations(t)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		adminID := uuid.New()
		engine := newUserTestRouter(userRepo, adminID, "admin")

		req := httptest.NewRequest("DELETE", "/api/v1/users/"+adminID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "SELF_DELETE", errorCode(t, w))
		userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleting a missing user yields 404", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		engine := newUserTestRouter(userRepo, uuid.New(), "admin")

		targetID := uuid.New()
		userRepo.On("Delete", mock.Anything, targetID).Return(shared.ErrNotFound)

		req := httptest.NewRequest("DELETE", "/api/v1/users/"+targetID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
