package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	archiveapi "github.com/beka-birhanu/patrol-api/api/archive"
	"github.com/beka-birhanu/patrol-api/api/i"
	"github.com/beka-birhanu/patrol-api/api/identity"
	patrolapi "github.com/beka-birhanu/patrol-api/api/patrol"
	"github.com/beka-birhanu/patrol-api/infrastruture/logger"
	"github.com/beka-birhanu/patrol-api/infrastruture/sqlite"
	"github.com/beka-birhanu/patrol-api/infrastruture/token"
	"github.com/beka-birhanu/patrol-api/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operatorKey = "mangrove-Lantern-47-quietly-Drifts"

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	patrolService, err := service.NewPatrolService(service.PatrolConfig{Logger: log})
	require.NoError(t, err)
	archiveService, err := service.NewArchiveService(service.ArchiveConfig{
		Maps:    store.Maps(),
		Results: store.Results(),
		Patrol:  patrolService,
		Logger:  log,
	})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "patrol-api")
	authService, err := service.NewAuthService(operatorKey, tokenizer)
	require.NoError(t, err)

	router := NewRouter(Config{
		BaseURL: "/api",
		Controllers: []i.Controller{
			identity.NewIdentityServer(authService),
			patrolapi.NewController(patrolService),
			archiveapi.NewController(archiveService),
		},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
		AllowedOrigins:          []string{"http://localhost:3000"},
	})
	return router.Engine()
}

func do(t *testing.T, engine *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func twoByTwoBody() map[string]any {
	return map[string]any{
		"gridSize":    2,
		"rangerCount": 1,
		"maxSteps":    3,
		"riskMap":     [][]float64{{0.9, 0.1}, {0.1, 0.1}},
		"animalMap":   [][]bool{{false, false}, {false, false}},
		"terrainMap":  [][]int{{1, 1}, {1, 1}},
	}
}

func TestHealthAndCORS(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/maps", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, allowedMethods, w.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type optimizeBody struct {
	Routes []struct {
		RangerID int      `json:"rangerId"`
		Path     [][2]int `json:"path"`
	} `json:"routes"`
	Coverage [][]int        `json:"coverage"`
	Stats    map[string]any `json:"stats"`
}

func TestOptimizeEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("Plans the greedy route", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/optimize", "", twoByTwoBody())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[optimizeBody](t, w)

		require.Len(t, body.Routes, 1)
		assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {0, 0}, {0, 1}}, body.Routes[0].Path)
		assert.Equal(t, [][]int{{2, 1}, {1, 0}}, body.Coverage)
		assert.Equal(t, "100%", body.Stats["highRiskCoverage"])
		assert.Equal(t, "75%", body.Stats["overallCoverage"])
	})

	t.Run("Maps errors to codes", func(t *testing.T) {
		mismatch := twoByTwoBody()
		mismatch["terrainMap"] = [][]int{{1, 1}}
		blocked := twoByTwoBody()
		blocked["terrainMap"] = [][]int{{0, 0}, {0, 0}}
		negative := twoByTwoBody()
		negative["maxSteps"] = -1
		missing := twoByTwoBody()
		delete(missing, "gridSize")

		tests := []struct {
			name   string
			body   map[string]any
			status int
			code   string
		}{
			{"dimension mismatch", mismatch, http.StatusBadRequest, "DIMENSION_MISMATCH"},
			{"no passable terrain", blocked, http.StatusUnprocessableEntity, "NO_PASSABLE_TERRAIN"},
			{"negative budget", negative, http.StatusBadRequest, "INVALID_CONFIGURATION"},
			{"missing grid size", missing, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(t, engine, http.MethodPost, "/api/v1/optimize", "", tt.body)
				assert.Equal(t, tt.status, w.Code)
				assert.Equal(t, tt.code, decode[map[string]string](t, w)["error"])
			})
		}
	})
}

func TestTerrainEndpoint(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/api/v1/terrain?size=6&seed=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, 6.0, body["gridSize"])
	assert.Len(t, body["riskMap"], 6)

	w = do(t, engine, http.MethodGet, "/api/v1/terrain", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20.0, decode[map[string]any](t, w)["gridSize"])

	w = do(t, engine, http.MethodGet, "/api/v1/terrain?size=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	mapBody := twoByTwoBody()
	delete(mapBody, "rangerCount")
	delete(mapBody, "maxSteps")
	mapBody["name"] = "north ridge"

	t.Run("Writes need a token", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/maps", "", mapBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(t, engine, http.MethodPost, "/api/v1/maps", "not-a-jwt", mapBody)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(t, engine, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"key": "guess"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	w := do(t, engine, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"key": operatorKey})
	require.Equal(t, http.StatusOK, w.Code)
	bearer := decode[map[string]string](t, w)["token"]
	require.NotEmpty(t, bearer)

	w = do(t, engine, http.MethodPost, "/api/v1/maps", bearer, mapBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	mapID := decode[map[string]any](t, w)["mapId"].(string)

	t.Run("Maps are listed and fetched", func(t *testing.T) {
		w := do(t, engine, http.MethodGet, "/api/v1/maps", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]map[string]any](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "north ridge", list[0]["name"])

		w = do(t, engine, http.MethodGet, "/api/v1/maps/"+mapID, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[map[string]any](t, w)["riskMap"], 2)

		w = do(t, engine, http.MethodGet, "/api/v1/maps/ghost", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decode[map[string]string](t, w)["error"])
	})

	t.Run("Patrolling a map stores a result", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/maps/"+mapID+"/patrols", bearer,
			map[string]any{"rangerCount": 1, "maxSteps": 3})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[map[string]any](t, w)
		assert.Equal(t, mapID, result["mapId"])

		w = do(t, engine, http.MethodGet, "/api/v1/results/"+result["resultId"].(string), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "optimized", decode[map[string]any](t, w)["mode"])
	})

	t.Run("Client results keep rendered percentages", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/results", bearer, map[string]any{
			"mapId":       mapID,
			"rangerCount": 4,
			"routes":      []map[string]any{{"rangerId": 0, "path": [][2]int{{0, 0}}}},
			"stats":       map[string]any{"beforeRisk": 0.3, "afterRisk": 0.01, "riskReduction": "97%"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = do(t, engine, http.MethodGet, "/api/v1/maps/"+mapID+"/results/top?limit=1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		top := decode[[]map[string]any](t, w)
		require.Len(t, top, 1)
		assert.Equal(t, "97%", top[0]["stats"].(map[string]any)["riskReduction"])
	})

	t.Run("Unknown result", func(t *testing.T) {
		w := do(t, engine, http.MethodGet, "/api/v1/results/ghost", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
