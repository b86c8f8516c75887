package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/service"
	repoImpl "CampusNav-App/internal/repository"
	"CampusNav-App/internal/usecase"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	buildingsRepo := repoImpl.NewStaticBuildingsRepository()
	poisRepo := repoImpl.NewStaticPOIsRepository()
	resolver := service.NewLocationResolver(buildingsRepo)
	searchService := service.NewSearchService(buildingsRepo, poisRepo, nil)
	tripPlanUseCase := usecase.NewTripPlanUseCase(nil, nil)
	region := model.Region{Latitude: 34.9820, Longitude: 135.9635, LatitudeDelta: 0.01, LongitudeDelta: 0.01}
	sessionUseCase := usecase.NewMapSessionUseCase(resolver, searchService, nil, buildingsRepo, tripPlanUseCase, region)

	sessionHandler := NewMapSessionHandler(sessionUseCase)
	buildingsHandler := NewBuildingsHandler(buildingsRepo, poisRepo)
	tripPlanHandler := NewTripPlanHandler(tripPlanUseCase)

	router := gin.New()
	router.POST("/map/sessions", sessionHandler.PostSession)
	router.GET("/map/sessions/:id", sessionHandler.GetSession)
	router.POST("/map/sessions/:id/events", sessionHandler.PostEvent)
	router.GET("/map/sessions/:id/suggestions", sessionHandler.GetSuggestions)
	router.POST("/map/sessions/:id/travel", sessionHandler.PostTravel)
	router.GET("/buildings", buildingsHandler.GetBuildings)
	router.GET("/buildings/:id", buildingsHandler.GetBuilding)
	router.GET("/pois", buildingsHandler.GetNearbyPOIs)
	router.GET("/trips/modes", tripPlanHandler.GetTravelModes)
	return router
}

func createSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/map/sessions", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.SessionID)
	return body.SessionID
}

func postEvent(t *testing.T, router *gin.Engine, sessionID string, event map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/map/sessions/%s/events", sessionID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestMapSessionHandler_SessionLifecycle(t *testing.T) {
	router := setupTestRouter()

	t.Run("セッション作成と状態取得", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/map/sessions/"+sessionID, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var state model.MapScreenState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, model.TravelStateNone, state.TravelState)
		assert.Equal(t, model.TravelModeWalking, state.TravelMode)
	})

	t.Run("存在しないセッションは404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/map/sessions/no-such-session", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMapSessionHandler_PostEvent(t *testing.T) {
	router := setupTestRouter()

	t.Run("建物タップで情報パネルが開く", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "tap_building",
			"building_id": "H",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var state model.MapScreenState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, "H", state.TappedBuildingID)
		assert.True(t, state.ShowBuildingInfo)
	})

	t.Run("イベント種別なしは400", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"building_id": "H",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("建物IDなしのtap_buildingは400", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type": "tap_building",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("存在しない建物のタップは404", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "tap_building",
			"building_id": "ZZ",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("範囲外の座標を持つtap_poiは400", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "tap_poi",
			"poi_name":    "正門",
			"coordinates": map[string]float64{"lat": 120.0, "lng": 135.9628},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("未知の移動手段のselect_modeは400", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "select_mode",
			"travel_mode": "rocket",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMapSessionHandler_PlanningFlow(t *testing.T) {
	router := setupTestRouter()

	t.Run("プランニング中の建物タップは端点に入る", func(t *testing.T) {
		sessionID := createSession(t, router)

		w := postEvent(t, router, sessionID, map[string]interface{}{"type": "start_planning"})
		require.Equal(t, http.StatusOK, w.Code)

		w = postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "tap_building",
			"building_id": "LB",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var state model.MapScreenState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		require.NotNil(t, state.End)
		assert.Equal(t, "LB", state.End.BuildingID)
		assert.False(t, state.ShowBuildingInfo)
	})

	t.Run("端点が揃わないままの移動開始は400", func(t *testing.T) {
		sessionID := createSession(t, router)

		postEvent(t, router, sessionID, map[string]interface{}{"type": "start_planning"})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/map/sessions/%s/travel", sessionID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("戻る操作で通常状態へリセットされる", func(t *testing.T) {
		sessionID := createSession(t, router)

		postEvent(t, router, sessionID, map[string]interface{}{"type": "start_planning"})
		postEvent(t, router, sessionID, map[string]interface{}{
			"type":        "tap_building",
			"building_id": "LB",
		})

		w := postEvent(t, router, sessionID, map[string]interface{}{"type": "press_back"})
		require.Equal(t, http.StatusOK, w.Code)

		var state model.MapScreenState
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.Equal(t, model.TravelStateNone, state.TravelState)
		assert.Nil(t, state.End)
		assert.True(t, state.EndLocationFocused)
	})
}

func TestMapSessionHandler_GetSuggestions(t *testing.T) {
	router := setupTestRouter()

	getSuggestions := func(sessionID string) (*httptest.ResponseRecorder, struct {
		EndFocused  bool                 `json:"end_focused"`
		Suggestions []model.SearchResult `json:"suggestions"`
		Count       int                  `json:"count"`
	}) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/map/sessions/%s/suggestions", sessionID), nil)
		router.ServeHTTP(w, req)

		var body struct {
			EndFocused  bool                 `json:"end_focused"`
			Suggestions []model.SearchResult `json:"suggestions"`
			Count       int                  `json:"count"`
		}
		if w.Code == http.StatusOK {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		}
		return w, body
	}

	t.Run("候補がない間は空リスト", func(t *testing.T) {
		sessionID := createSession(t, router)

		w, body := getSuggestions(sessionID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, body.EndFocused)
		assert.Empty(t, body.Suggestions)
		assert.Zero(t, body.Count)
	})

	t.Run("入力後はフォーカス中端点の検索候補が返る", func(t *testing.T) {
		sessionID := createSession(t, router)

		postEvent(t, router, sessionID, map[string]interface{}{"type": "start_planning"})
		w := postEvent(t, router, sessionID, map[string]interface{}{
			"type": "change_text",
			"text": "メディア",
		})
		require.Equal(t, http.StatusOK, w.Code)

		require.Eventually(t, func() bool {
			w, body := getSuggestions(sessionID)
			return w.Code == http.StatusOK && body.Count > 0
		}, 2*time.Second, 20*time.Millisecond)

		_, body := getSuggestions(sessionID)
		require.NotEmpty(t, body.Suggestions)
		assert.Equal(t, "メディア棟", body.Suggestions[0].DisplayName)
	})

	t.Run("存在しないセッションは404", func(t *testing.T) {
		w, _ := getSuggestions("no-such-session")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTripPlanHandler_GetTravelModes(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/trips/modes", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TravelModes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"travel_modes"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Count)

	names := make(map[string]string, len(body.TravelModes))
	for _, m := range body.TravelModes {
		names[m.ID] = m.Name
	}
	assert.Equal(t, "徒歩", names[model.TravelModeWalking])
	assert.Equal(t, "シャトルバス", names[model.TravelModeShuttle])
}

func TestBuildingsHandler(t *testing.T) {
	router := setupTestRouter()

	t.Run("建物一覧を取得できる", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/buildings", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Buildings []model.Building `json:"buildings"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Buildings, 5)
	})

	t.Run("キャンパスで絞り込める", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/buildings?campus=west", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Buildings []model.Building `json:"buildings"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Buildings, 1)
		assert.Equal(t, "GW", body.Buildings[0].ID)
	})

	t.Run("存在しない建物は404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/buildings/ZZ", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("latが数値でないPOI検索は400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/pois?lat=abc&lng=135.96", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("周辺POIを取得できる", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/pois?lat=34.9805&lng=135.9628&radius=300", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			POIs []model.POI `json:"pois"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.POIs)
	})
}
