package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vipgate/internal/config"
	"vipgate/internal/featureflags"
	"vipgate/internal/models"
	"vipgate/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newRoutedTestServer wires the full route table so the guard chain each
// endpoint sits behind is exercised, not just the handler.
func newRoutedTestServer(userRepo *MockUserRepository, recRepo *MockRecommendationRepository) (*Server, *fiber.App) {
	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret_test_secret_12345678"},
		userRepo:     userRepo,
		recRepo:      recRepo,
		featureFlags: featureflags.NewManager(""),
	}
	s.statsService = service.NewStatsService(userRepo, recRepo)
	s.recService = service.NewRecommendationService(recRepo)
	s.vipService = service.NewVipService(userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func TestMiddlewareChainEmitsTraceID(t *testing.T) {
	s, _ := newRoutedTestServer(new(MockUserRepository), new(MockRecommendationRepository))

	app := fiber.New()
	s.SetupMiddleware(app)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	// The tracing middleware runs for every request and reflects the active
	// span's trace ID back to the client.
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestStatsEndpointIsPublic(t *testing.T) {
	userRepo := new(MockUserRepository)
	recRepo := new(MockRecommendationRepository)
	userRepo.On("CountUsers", mock.Anything).Return(int64(40), nil)
	userRepo.On("CountActiveVips", mock.Anything, mock.Anything).Return(int64(10), nil)
	userRepo.On("CountUsersSince", mock.Anything, mock.Anything).Return(int64(5), nil)
	recRepo.On("CountAll", mock.Anything).Return(int64(3), nil)
	_, app := newRoutedTestServer(userRepo, recRepo)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got service.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, int64(40), got.TotalUsers)
	assert.Equal(t, 25.0, got.VipPercentage)
}

func TestReactEndpointRequiresLogin(t *testing.T) {
	_, app := newRoutedTestServer(new(MockUserRepository), new(MockRecommendationRepository))

	body, _ := json.Marshal(map[string]uint{"linkId": 4})
	req := httptest.NewRequest(http.MethodPost, "/api/emoji/fire/react", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateRecommendationRequiresVip(t *testing.T) {
	future := time.Now().Add(30 * 24 * time.Hour)
	tests := []struct {
		name           string
		user           *models.User
		expectedStatus int
	}{
		{
			name:           "Non-VIP Rejected",
			user:           &models.User{ID: 7, Email: "member@example.com"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "VIP Accepted",
			user: &models.User{ID: 7, Email: "member@example.com",
				VipExpirationDate: &future},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			recRepo := new(MockRecommendationRepository)
			userRepo.On("GetByID", mock.Anything, uint(7)).Return(tt.user, nil)
			recRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			s, app := newRoutedTestServer(userRepo, recRepo)

			token, err := s.generateToken(7, tt.user.Email)
			require.NoError(t, err)

			body, _ := json.Marshal(map[string]string{"title": "More classics"})
			req := httptest.NewRequest(http.MethodPost, "/api/recommendations/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
