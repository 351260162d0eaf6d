package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hostel/config"
	otelMocks "hostel/infras/otel/mocks"
	"hostel/shared/cache"
	cacheMocks "hostel/shared/cache/mocks"
	"hostel/shared/constant"
	"hostel/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func limiterFixture(t *testing.T, maxRequests int) (*cacheMocks.MockRedisCache, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := config.Get()
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache)

	return mockCache, m.RateLimit()(okHandler)
}

func TestRateLimitFirstRequest(t *testing.T) {
	mockCache, handler := limiterFixture(t, 5)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(cache.Nil)
	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), 1, 60).
		Return(nil)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "5", recorder.Header().Get(constant.HeaderRateLimit))
	assert.Equal(t, "4", recorder.Header().Get(constant.HeaderRateLimitRemaining))
}

func TestRateLimitExceeded(t *testing.T) {
	mockCache, handler := limiterFixture(t, 5)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ string, value any) error {
			*value.(*int) = 5

			return nil
		})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestRateLimitFailsOpenOnCacheError(t *testing.T) {
	mockCache, handler := limiterFixture(t, 5)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := config.Get()
	cfg.App.RateLimiter.Enable = false

	m := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, mockCache)
	handler := m.RateLimit()(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
