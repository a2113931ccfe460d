package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"property-price-service/internal/core/domain"
	"property-price-service/internal/core/services"
	"property-price-service/internal/testutil"
)

func melbTable() *domain.Table {
	return &domain.Table{
		Header: []string{"Rooms", "Bathroom", "Distance", "Suburb", "Price"},
		Rows: [][]string{
			{"2", "1", "5", "Richmond", "800000"},
			{"3", "1", "10.2", "Richmond", "900000"},
			{"4", "2", "15.1", "Carlton", "1000000"},
		},
	}
}

func setupRouter(artifact *testutil.MockArtifact) (*gin.Engine, *testutil.MockUserRepo) {
	gin.SetMode(gin.TestMode)

	reader := new(testutil.MockDatasetReader)
	store := new(testutil.MockArtifactStore)
	reader.On("ReadTable", mock.Anything, "data.csv").Return(melbTable(), nil)
	store.On("Load", "model.json").Return(artifact, nil)

	predictionSvc := services.NewPredictionService(reader, store,
		"data.csv", "model.json", "Price", domain.MelbourneAliases)

	userRepo := new(testutil.MockUserRepo)
	authSvc := services.NewAuthService(userRepo, "test-secret", time.Hour)

	h := New(predictionSvc, authSvc)
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r, userRepo
}

func stubArtifact(value float64) *testutil.MockArtifact {
	artifact := new(testutil.MockArtifact)
	artifact.On("FeatureColumns").Return([]string{"Rooms", "Bathroom", "Distance", "Suburb"})
	artifact.On("Predict", mock.AnythingOfType("domain.FeatureVector")).Return(value, nil)
	return artifact
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(stubArtifact(0))

	w, body := doGet(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "model.json", body["model_path"])
	assert.Equal(t, "data.csv", body["data_path"])
	assert.Equal(t, "Price", body["target"])
	assert.Equal(t, float64(4), body["feature_count"])
}

func TestPredictEndpoint(t *testing.T) {
	r, _ := setupRouter(stubArtifact(1234567.891))

	w, body := doGet(t, r, "/predict?rooms=4")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1234567.89, body["prediction"])
	assert.Equal(t, "AUD", body["currency"])

	features := body["features"].(map[string]interface{})
	assert.Equal(t, float64(4), features["Rooms"])
	assert.Equal(t, "Richmond", features["Suburb"])
	assert.Len(t, features, 4)

	overrides := body["overrides"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"Rooms": float64(4)}, overrides)
}

func TestResolveEndpoint(t *testing.T) {
	artifact := stubArtifact(1)
	r, _ := setupRouter(artifact)

	w, body := doGet(t, r, "/resolve?rooms=4&suburb=Carlton")
	assert.Equal(t, http.StatusOK, w.Code)

	features := body["features"].(map[string]interface{})
	assert.Equal(t, float64(4), features["Rooms"])
	assert.Equal(t, "Carlton", features["Suburb"])
	assert.Equal(t, float64(10.2), features["Distance"])
	assert.Len(t, features, 4)

	overrides := body["overrides"].(map[string]interface{})
	assert.Len(t, overrides, 2)
	artifact.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictEndpoint_GenericFeatureBeatsQueryParam(t *testing.T) {
	r, _ := setupRouter(stubArtifact(1))

	w, body := doGet(t, r, "/predict?rooms=4&feature=Rooms%3D5")
	assert.Equal(t, http.StatusOK, w.Code)

	overrides := body["overrides"].(map[string]interface{})
	assert.Equal(t, float64(5), overrides["Rooms"])
}

func TestPredictEndpoint_RepeatedParamLastWins(t *testing.T) {
	r, _ := setupRouter(stubArtifact(1))

	w, body := doGet(t, r, "/predict?rooms=4&rooms=6")
	assert.Equal(t, http.StatusOK, w.Code)

	overrides := body["overrides"].(map[string]interface{})
	assert.Equal(t, float64(6), overrides["Rooms"])
}

func TestPredictEndpoint_UnknownColumn(t *testing.T) {
	r, _ := setupRouter(stubArtifact(1))

	w, body := doGet(t, r, "/predict?garage=2")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "garage")
}

func TestPredictEndpoint_InvalidValue(t *testing.T) {
	r, _ := setupRouter(stubArtifact(1))

	w, body := doGet(t, r, "/predict?distance=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "abc")
}

func TestPredictEndpoint_MalformedFeaturePair(t *testing.T) {
	artifact := stubArtifact(1)
	r, _ := setupRouter(artifact)

	w, body := doGet(t, r, "/predict?feature=Rooms4")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "COLUMN=VALUE")
	artifact.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredictEndpoint_InferenceFault(t *testing.T) {
	artifact := new(testutil.MockArtifact)
	artifact.On("FeatureColumns").Return([]string{"Rooms", "Bathroom", "Distance", "Suburb"})
	artifact.On("Predict", mock.AnythingOfType("domain.FeatureVector")).Return(0.0, domain.ErrInference)
	r, _ := setupRouter(artifact)

	w, _ := doGet(t, r, "/predict")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPredictEndpoint_BrokenDatasetRefusesToServe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := new(testutil.MockDatasetReader)
	store := new(testutil.MockArtifactStore)
	reader.On("ReadTable", mock.Anything, "data.csv").Return(nil, domain.ErrDataLoad)

	predictionSvc := services.NewPredictionService(reader, store,
		"data.csv", "model.json", "Price", domain.MelbourneAliases)
	h := New(predictionSvc, services.NewAuthService(new(testutil.MockUserRepo), "s", time.Hour))
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))

	w, _ := doGet(t, r, "/predict")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
