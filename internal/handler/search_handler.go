package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/service"
)

// SearchHandler は通常状態の検索バーが使う候補検索APIのハンドラー。
// セッションを経由しない単発検索で、オムニボックスと同じ統合ロジックを使う。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler は新しいSearchHandlerインスタンスを作成
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// GetSearchResults は候補地点リストを取得するエンドポイント
// GET /search?q=図書館&lat=34.982&lng=135.963
func (h *SearchHandler) GetSearchResults(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "qパラメータは必須です",
		})
		return
	}

	// 検索中心の座標は省略可（省略時はゼロ値＝キャンパス既定の扱い）
	var near model.LatLng
	if latParam := c.Query("lat"); latParam != "" {
		lat, err := strconv.ParseFloat(latParam, 64)
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
		near = model.LatLng{Lat: lat, Lng: lng}
	}

	results, err := h.searchService.Search(c.Request.Context(), query, near)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "候補検索に失敗しました",
			"details": err.Error(),
		})
		return
	}

	// 候補なしは空リストとして返す（エラーにしない）
	if results == nil {
		results = []model.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
