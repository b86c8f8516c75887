package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CampusNav-App/internal/domain/model"
)

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した経路検索の実装。
// 経路計算そのものは行わず、移動手段・出発時刻をAPIへ渡すだけの外部コラボレーター。
type GoogleDirectionsProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRoute はGoogle Maps Directions APIを呼び出して指定した移動手段の経路情報を取得する
func (g *GoogleDirectionsProvider) GetRoute(ctx context.Context, origin, destination model.LatLng, travelMode string, departure time.Time) (*model.RouteDetails, error) {
	// 1. APIリクエストURLを構築
	reqURL, err := g.buildURL(origin, destination, travelMode, departure)
	if err != nil {
		return nil, fmt.Errorf("URLの構築に失敗: %w", err)
	}

	// 2. HTTPリクエストを作成・実行
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

	// 3. JSONレスポンスをパース
	var apiResp googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Routes) == 0 {
		return nil, errors.New("APIから有効なルートが返されませんでした")
	}

	// 4. ドメインモデルに変換して返す
	firstRoute := apiResp.Routes[0]
	var totalDurationSec int
	var totalDistanceMeters int
	var steps []model.RouteStep
	for _, leg := range firstRoute.Legs {
		totalDurationSec += leg.Duration.Value
		totalDistanceMeters += leg.Distance.Value
		for _, s := range leg.Steps {
			steps = append(steps, model.RouteStep{
				Instruction:    s.HTMLInstructions,
				DistanceMeters: s.Distance.Value,
				DurationSec:    s.Duration.Value,
			})
		}
	}

	return &model.RouteDetails{
		TotalDuration:  time.Duration(totalDurationSec) * time.Second,
		DistanceMeters: totalDistanceMeters,
		Polyline:       firstRoute.OverviewPolyline.Points,
		Steps:          steps,
	}, nil
}

func (g *GoogleDirectionsProvider) buildURL(origin, destination model.LatLng, travelMode string, departure time.Time) (string, error) {
	baseURL := "https://maps.googleapis.com/maps/api/directions/json"
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("mode", apiModeFor(travelMode))

	// バス・シャトルは公共交通機関としてバス優先で検索
	if travelMode == model.TravelModeBus || travelMode == model.TravelModeShuttle {
		params.Set("transit_mode", "bus")
	}

	if !departure.IsZero() {
		params.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
	}

	params.Set("language", "ja")
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", baseURL, params.Encode()), nil
}

// apiModeFor アプリの移動手段をDirections APIのmodeパラメータに変換する
func apiModeFor(travelMode string) string {
	switch travelMode {
	case model.TravelModeCar:
		return "driving"
	case model.TravelModeBus, model.TravelModeShuttle:
		return "transit"
	default:
		// walking / accessible は徒歩経路として扱う
		return "walking"
	}
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleRouteResponse struct {
	Routes       []route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}
type route struct {
	Legs             []leg            `json:"legs"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
}
type leg struct {
	Duration duration `json:"duration"`
	Distance distance `json:"distance"`
	Steps    []step   `json:"steps"`
}
type step struct {
	HTMLInstructions string   `json:"html_instructions"`
	Duration         duration `json:"duration"`
	Distance         distance `json:"distance"`
}
type duration struct {
	Value int `json:"value"` // seconds
}
type distance struct {
	Value int `json:"value"` // meters
}
type overviewPolyline struct {
	Points string `json:"points"`
}
