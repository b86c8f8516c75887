package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"CampusNav-App/internal/domain/repository"
)

// BuildingsHandler は建物レジストリAPIのハンドラー
type BuildingsHandler struct {
	buildingsRepo repository.BuildingsRepository
	poisRepo      repository.POIsRepository
}

// NewBuildingsHandler は新しいBuildingsHandlerインスタンスを作成
func NewBuildingsHandler(buildingsRepo repository.BuildingsRepository, poisRepo repository.POIsRepository) *BuildingsHandler {
	return &BuildingsHandler{
		buildingsRepo: buildingsRepo,
		poisRepo:      poisRepo,
	}
}

// GetBuildings は建物一覧を取得するエンドポイント
// GET /buildings?campus=east
func (h *BuildingsHandler) GetBuildings(c *gin.Context) {
	campus := c.Query("campus")

	var err error
	var buildings interface{}
	if campus != "" {
		buildings, err = h.buildingsRepo.GetByCampus(c.Request.Context(), campus)
	} else {
		buildings, err = h.buildingsRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "建物一覧の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

// GetBuilding は特定の建物を取得するエンドポイント
// GET /buildings/:id
func (h *BuildingsHandler) GetBuilding(c *gin.Context) {
	buildingID := c.Param("id")
	if buildingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "building_idが指定されていません",
		})
		return
	}

	building, err := h.buildingsRepo.GetByID(c.Request.Context(), buildingID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "建物が見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "建物の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, building)
}

// GetNearbyPOIs は指定座標周辺のPOI一覧を取得するエンドポイント
// GET /pois?lat=34.982&lng=135.963&radius=500
func (h *BuildingsHandler) GetNearbyPOIs(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "latは数値で指定してください",
		})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "lngは数値で指定してください",
		})
		return
	}

	radius := 500
	if radiusParam := c.Query("radius"); radiusParam != "" {
		radius, err = strconv.Atoi(radiusParam)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "radiusは正の整数で指定してください",
			})
			return
		}
	}

	pois, err := h.poisRepo.GetNearbyPOIs(c.Request.Context(), lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "周辺POIの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pois": pois})
}
