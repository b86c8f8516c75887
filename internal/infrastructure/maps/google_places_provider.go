package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"CampusNav-App/internal/domain/model"
)

// 検索候補キャッシュの保持時間（キーストロークごとの同一クエリ再検索を抑える）
const (
	placesCacheDuration        = 5 * time.Minute
	placesCacheCleanupInterval = 10 * time.Minute
)

// GooglePlacesProvider はGoogle Places Text Search APIを使用したオートコンプリート検索の実装。
// キーストロークごとに呼ばれるため、同一クエリの結果を短時間キャッシュする。
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gocache.New(placesCacheDuration, placesCacheCleanupInterval),
	}
}

// SearchPlaces はクエリ文字列から候補地点リストを取得する
func (g *GooglePlacesProvider) SearchPlaces(ctx context.Context, query string, near model.LatLng) ([]model.SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("places:%s:%f:%f", query, near.Lat, near.Lng)
	if cached, found := g.cache.Get(cacheKey); found {
		return cached.([]model.SearchResult), nil
	}

	reqURL := g.buildURL(query, near)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	results := make([]model.SearchResult, 0, len(apiResp.Results))
	for _, place := range apiResp.Results {
		results = append(results, model.SearchResult{
			PlaceID:     place.PlaceID,
			DisplayName: place.Name,
			Coordinates: model.LatLng{
				Lat: place.Geometry.Location.Lat,
				Lng: place.Geometry.Location.Lng,
			},
		})
	}

	g.cache.Set(cacheKey, results, gocache.DefaultExpiration)
	return results, nil
}

func (g *GooglePlacesProvider) buildURL(query string, near model.LatLng) string {
	baseURL := "https://maps.googleapis.com/maps/api/place/textsearch/json"
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", near.Lat, near.Lng))
	params.Set("radius", "2000")
	params.Set("language", "ja")
	params.Set("key", g.apiKey)
	return fmt.Sprintf("%s?%s", baseURL, params.Encode())
}

// --- Places APIのレスポンスをパースするための構造体 ---

type googlePlacesResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}
type placeResult struct {
	PlaceID  string        `json:"place_id"`
	Name     string        `json:"name"`
	Geometry placeGeometry `json:"geometry"`
}
type placeGeometry struct {
	Location placeLatLng `json:"location"`
}
type placeLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
