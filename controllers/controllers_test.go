package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"restock-backend/catalog"
	"restock-backend/controllers"
	"restock-backend/intents"
	"restock-backend/models"
	"restock-backend/providers"
	"restock-backend/repository"
	"restock-backend/routes"
	"restock-backend/services"
	"restock-backend/telemetry"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	cat := catalog.Default()
	store := intents.NewStore(5*time.Minute, 15*time.Minute)
	tel := telemetry.NewClient(nil, "", logger)
	userService := services.NewUserService(repository.NewMemoryPreferencesRepository(), logger)
	detectionService := services.NewDetectionService(cat, store, tel, logger)
	orderService := services.NewOrderService(store, providers.NewMockProvider(), userService, nil, tel, logger)

	r := gin.New()
	routes.Register(r,
		controllers.NewDetectionController(detectionService),
		controllers.NewOrderController(orderService),
		controllers.NewUserController(userService),
		controllers.NewSystemController(cat, tel),
	)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ingestBody(objectClass string, fill models.FillLevel) models.DetectionEvent {
	return models.DetectionEvent{
		EventID:      "evt-0000001",
		DeviceID:     "dev-1",
		ObjectClass:  objectClass,
		FillLevel:    fill,
		Confidence:   models.ConfidenceHigh,
		CapturedAtMs: 1000,
	}
}

func TestIngestDetection_Prompts(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodPost, "/detections", ingestBody("water_bottle", models.FillLevelEmpty))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.DetectionIngestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ShouldPrompt)
	assert.NotEmpty(t, resp.PendingIntentID)
}

func TestIngestDetection_UnknownClass404(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodPost, "/detections", ingestBody("toothpaste", models.FillLevelEmpty))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "object_class_not_supported")
}

func TestIngestDetection_InvalidPayload400(t *testing.T) {
	r := setupRouter()

	event := ingestBody("water_bottle", models.FillLevel("OVERFLOWING"))
	w := doJSON(t, r, http.MethodPost, "/detections", event)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetIntent_NotFound(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/detections/intents/does-not-exist", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "intent_not_found")
}

func TestDecisionFlow_EndToEnd(t *testing.T) {
	r := setupRouter()

	// 1. Detection creates an intent.
	w := doJSON(t, r, http.MethodPost, "/detections", ingestBody("water_bottle", models.FillLevelEmpty))
	assert.Equal(t, http.StatusOK, w.Code)
	var ingest models.DetectionIngestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ingest))

	// 2. The intent is readable.
	w = doJSON(t, r, http.MethodGet, "/detections/intents/"+ingest.PendingIntentID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var intent models.PromptIntent
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &intent))
	assert.Equal(t, "hydration_001", intent.ProductID)

	// 3. Accepting submits through the mock provider.
	w = doJSON(t, r, http.MethodPost, "/orders/decisions", models.PromptDecisionRequest{
		IntentID:    ingest.PendingIntentID,
		Channel:     models.ChannelVoice,
		Accepted:    true,
		DecidedAtMs: 2000,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var decision models.PromptDecisionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
	assert.Equal(t, models.OrderStatusConfirmed, decision.Status)
	assert.NotEmpty(t, decision.OrderID)

	// 4. The order is pollable by id.
	w = doJSON(t, r, http.MethodGet, "/orders/"+decision.OrderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status models.OrderStatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.OrderStatusConfirmed, status.Order.Status)
	assert.Equal(t, "mock", status.Order.Provider)
}

func TestGetOrder_NotFound(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/orders/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order_not_found")
}

func TestOrderHistory_DisabledWithoutArchive(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/orders/history", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "archive_disabled")
}

func TestUserPreferences_RoundTrip(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/users/user-1/preferences", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var prefs models.UserPreferences
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.True(t, prefs.AutoReorderEnabled)

	vendor := "instacart"
	w = doJSON(t, r, http.MethodPut, "/users/user-1/preferences", models.UpdatePreferencesRequest{
		PreferredVendor: &vendor,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.Equal(t, "instacart", prefs.PreferredVendor)
}

func TestCatalogProducts_Lists(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/catalog/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Products []models.Product `json:"products"`
		Total    int              `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
}

func TestSystemHealth(t *testing.T) {
	r := setupRouter()

	w := doJSON(t, r, http.MethodGet, "/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}
