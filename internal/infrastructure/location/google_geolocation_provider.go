package location

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"CampusNav-App/internal/domain/model"
)

// GoogleGeolocationProvider はGoogle Geolocation APIを使用した現在地解決の実装。
// 端末がネイティブの測位結果を送ってこない場合のフォールバックとして使用する。
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleGeolocationProvider は新しいプロバイダを生成する
func NewGoogleGeolocationProvider(apiKey string) *GoogleGeolocationProvider {
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetCurrentLocation はGeolocation APIを呼び出して現在地座標を取得する
func (g *GoogleGeolocationProvider) GetCurrentLocation(ctx context.Context) (model.LatLng, error) {
	reqURL := fmt.Sprintf("https://www.googleapis.com/geolocation/v1/geolocate?key=%s", g.apiKey)

	// 付加情報なしのリクエストでIPベースの測位を行う
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBufferString("{}"))
	if err != nil {
		return model.LatLng{}, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.LatLng{}, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp geolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return model.LatLng{}, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	return model.LatLng{
		Lat: apiResp.Location.Lat,
		Lng: apiResp.Location.Lng,
	}, nil
}

// --- Geolocation APIのレスポンスをパースするための構造体 ---

type geolocationResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}
