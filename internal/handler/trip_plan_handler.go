package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/usecase"
)

// TripPlanHandler は経路計画APIのハンドラー
type TripPlanHandler struct {
	tripPlanUseCase usecase.TripPlanUseCase
}

// NewTripPlanHandler は新しいTripPlanHandlerインスタンスを作成
func NewTripPlanHandler(tripPlanUseCase usecase.TripPlanUseCase) *TripPlanHandler {
	return &TripPlanHandler{
		tripPlanUseCase: tripPlanUseCase,
	}
}

// PostTripPlan はセッションを経由せずに経路計画を作成するエンドポイント
// POST /trips/plans
func (h *TripPlanHandler) PostTripPlan(c *gin.Context) {
	var req model.TripPlanRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	// バリデーション
	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	plan, err := h.tripPlanUseCase.PlanTrip(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "経路計画の作成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetTripPlan は特定の経路計画を取得するエンドポイント
// GET /trips/plans/:id
func (h *TripPlanHandler) GetTripPlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "plan_idが指定されていません",
		})
		return
	}

	plan, err := h.tripPlanUseCase.GetTripPlan(c.Request.Context(), planID)
	if err != nil {
		// エラーメッセージから404か500かを判定
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "経路計画が見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "経路計画の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetTravelModes は選択可能な移動手段の一覧を返すエンドポイント
// GET /trips/modes
func (h *TripPlanHandler) GetTravelModes(c *gin.Context) {
	modes := model.GetAllTravelModes()
	items := make([]gin.H, 0, len(modes))
	for _, mode := range modes {
		items = append(items, gin.H{
			"id":   mode,
			"name": model.GetTravelModeJapaneseName(mode),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"travel_modes": items,
		"count":        len(items),
	})
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *TripPlanHandler) validateRequest(req *model.TripPlanRequest) error {
	// 出発地・目的地は必須
	if req.Start == nil {
		return &ValidationError{Field: "start", Message: "出発地は必須です"}
	}
	if req.End == nil {
		return &ValidationError{Field: "end", Message: "目的地は必須です"}
	}

	if err := validateLatLng(&req.Start.Coordinates); err != nil {
		return err
	}
	if err := validateLatLng(&req.End.Coordinates); err != nil {
		return err
	}

	// 移動手段のチェック
	if !model.IsValidTravelMode(req.TravelMode) {
		return &ValidationError{Field: "travel_mode", Message: "travel_modeは car/accessible/walking/bus/shuttle のいずれかを指定してください"}
	}

	return nil
}
