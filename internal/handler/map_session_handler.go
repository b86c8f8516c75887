package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/usecase"
)

// MapSessionHandler はマップ画面セッションAPIのハンドラー
type MapSessionHandler struct {
	sessionUseCase usecase.MapSessionUseCase
}

// NewMapSessionHandler は新しいMapSessionHandlerインスタンスを作成
func NewMapSessionHandler(sessionUseCase usecase.MapSessionUseCase) *MapSessionHandler {
	return &MapSessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

// PostSession は新しいマップセッションを作成するエンドポイント
// POST /map/sessions
func (h *MapSessionHandler) PostSession(c *gin.Context) {
	sessionID, state, err := h.sessionUseCase.CreateSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "セッションの作成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"state":      state,
	})
}

// GetSession はセッションの現在状態を取得するエンドポイント
// GET /map/sessions/:id
func (h *MapSessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_idが指定されていません",
		})
		return
	}

	state, err := h.sessionUseCase.GetState(c.Request.Context(), sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "セッションが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "セッション状態の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, state)
}

// PostEvent はセッションへイベントをディスパッチするエンドポイント
// POST /map/sessions/:id/events
func (h *MapSessionHandler) PostEvent(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_idが指定されていません",
		})
		return
	}

	var event model.MapEvent

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	// バリデーション
	if err := h.validateEvent(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	state, err := h.sessionUseCase.DispatchEvent(c.Request.Context(), sessionID, &event)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "セッションまたは建物が見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "イベントの適用に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetSuggestions はフォーカス中の端点に対する検索候補を取得するエンドポイント
// GET /map/sessions/:id/suggestions
func (h *MapSessionHandler) GetSuggestions(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_idが指定されていません",
		})
		return
	}

	state, err := h.sessionUseCase.GetState(c.Request.Context(), sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "セッションが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "検索候補の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	suggestions := state.FocusedResults()
	if suggestions == nil {
		suggestions = []model.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{
		"end_focused": state.EndLocationFocused,
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// PostTravel はプランニング済みのセッションで移動を開始するエンドポイント
// POST /map/sessions/:id/travel
func (h *MapSessionHandler) PostTravel(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_idが指定されていません",
		})
		return
	}

	plan, state, err := h.sessionUseCase.ConfirmTravel(c.Request.Context(), sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "セッションが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "移動の開始に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":  plan,
		"state": state,
	})
}

// validateEvent はイベントの詳細バリデーションを行う
func (h *MapSessionHandler) validateEvent(event *model.MapEvent) error {
	if event.Type == "" {
		return &ValidationError{Field: "type", Message: "イベント種別は必須です"}
	}

	switch event.Type {
	case model.EventTapBuilding:
		if event.BuildingID == "" {
			return &ValidationError{Field: "building_id", Message: "tap_buildingイベントには建物IDが必要です"}
		}

	case model.EventTapPOI:
		if event.Coordinates == nil {
			return &ValidationError{Field: "coordinates", Message: "tap_poiイベントには座標が必要です"}
		}
		if err := validateLatLng(event.Coordinates); err != nil {
			return err
		}

	case model.EventSelectResult:
		if event.Result == nil {
			return &ValidationError{Field: "result", Message: "select_resultイベントには候補が必要です"}
		}

	case model.EventFocusEndpoint:
		if event.EndFocused == nil {
			return &ValidationError{Field: "end_focused", Message: "focus_endpointイベントにはend_focusedが必要です"}
		}

	case model.EventChangeText:
		if event.Text == nil {
			return &ValidationError{Field: "text", Message: "change_textイベントにはtextが必要です"}
		}

	case model.EventSelectMode:
		if !model.IsValidTravelMode(event.TravelMode) {
			return &ValidationError{Field: "travel_mode", Message: "travel_modeは car/accessible/walking/bus/shuttle のいずれかを指定してください"}
		}

	case model.EventRegionChange:
		if event.Region == nil {
			return &ValidationError{Field: "region", Message: "region_changeイベントにはregionが必要です"}
		}
		if event.Region.LatitudeDelta <= 0 || event.Region.LongitudeDelta <= 0 {
			return &ValidationError{Field: "region", Message: "latitude_delta/longitude_deltaは正の値で指定してください"}
		}

	case model.EventSelectFloor:
		if event.FloorIndex == nil {
			return &ValidationError{Field: "floor_index", Message: "select_floorイベントにはfloor_indexが必要です"}
		}
	}

	return nil
}

// validateLatLng 緯度経度の範囲チェック
func validateLatLng(coordinate *model.LatLng) error {
	if coordinate.Lat < -90 || coordinate.Lat > 90 {
		return &ValidationError{Field: "coordinates.lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if coordinate.Lng < -180 || coordinate.Lng > 180 {
		return &ValidationError{Field: "coordinates.lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
