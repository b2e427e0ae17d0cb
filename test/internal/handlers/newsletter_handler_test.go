package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudnotes/cloudnotes-api/internal/handlers"
	"github.com/cloudnotes/cloudnotes-api/internal/models"
	apperrors "github.com/cloudnotes/cloudnotes-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNewsletterService implements NewsletterServiceInterface for testing
type MockNewsletterService struct {
	mock.Mock
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriptionData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionData), args.Error(1)
}

func newNewsletterRouter(service *MockNewsletterService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewNewsletterHandler(service)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.POST("/api/v1/newsletter/subscribe", handler.Subscribe)
	return router
}

func TestNewsletterHandler_Subscribe_Success(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	mockService.On("Subscribe", mock.Anything, mock.MatchedBy(func(req *models.SubscribeRequest) bool {
		return req.Email == "test@example.com"
	})).Return(&models.SubscriptionData{
		Email:        "test@example.com",
		SubscribedAt: "2026-08-31T12:00:00Z",
	}, nil)

	body, _ := json.Marshal(models.SubscribeRequest{Email: "test@example.com"})
	w := postJSON(router, "/api/v1/newsletter/subscribe", body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.SubscribeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully subscribed to newsletter!", resp.Message)
	assert.Equal(t, "test@example.com", resp.Data.Email)
	assert.Equal(t, "2026-08-31T12:00:00Z", resp.Data.SubscribedAt)

	mockService.AssertExpectations(t)
}

func TestNewsletterHandler_Subscribe_MissingEmail(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	mockService.On("Subscribe", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("email", "Email address is required"))

	w := postJSON(router, "/api/v1/newsletter/subscribe", []byte(`{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.SubscribeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email address is required", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestNewsletterHandler_Subscribe_InvalidEmail(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	mockService.On("Subscribe", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("email", "Please enter a valid email address"))

	body, _ := json.Marshal(models.SubscribeRequest{Email: "not-an-email"})
	w := postJSON(router, "/api/v1/newsletter/subscribe", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.SubscribeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please enter a valid email address", resp.Message)
}

func TestNewsletterHandler_Subscribe_Duplicate(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	mockService.On("Subscribe", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("This email is already subscribed to our newsletter"))

	body, _ := json.Marshal(models.SubscribeRequest{Email: "test@example.com"})
	w := postJSON(router, "/api/v1/newsletter/subscribe", body)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp models.SubscribeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "This email is already subscribed to our newsletter", resp.Message)
}

func TestNewsletterHandler_Subscribe_MalformedJSON(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	w := postJSON(router, "/api/v1/newsletter/subscribe", []byte(`{"email":`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.SubscribeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "An error occurred while subscribing. Please try again.", resp.Message)
	mockService.AssertNotCalled(t, "Subscribe")
}

func TestNewsletterHandler_Subscribe_ServiceFailure(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	mockService.On("Subscribe", mock.Anything, mock.Anything).
		Return(nil, apperrors.InternalError("store exploded"))

	body, _ := json.Marshal(models.SubscribeRequest{Email: "test@example.com"})
	w := postJSON(router, "/api/v1/newsletter/subscribe", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.SubscribeResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "An error occurred while subscribing. Please try again.", resp.Message)
}

func TestNewsletterHandler_Subscribe_WrongMethod(t *testing.T) {
	mockService := new(MockNewsletterService)
	router := newNewsletterRouter(mockService)

	req := httptest.NewRequest("GET", "/api/v1/newsletter/subscribe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	mockService.AssertNotCalled(t, "Subscribe")
}
