package model

import "time"

// DepartureTime 出発時刻の選択状態。デフォルトは「今すぐ」。
type DepartureTime struct {
	Time  time.Time `json:"time"`
	IsNow bool      `json:"is_now"`
}

// DepartureNow 「今すぐ」を表す出発時刻を作成する
func DepartureNow() DepartureTime {
	return DepartureTime{IsNow: true}
}

// MapScreenState マップ画面が持つ全てのUI状態を1つにまとめた明示的な状態構造体。
// 画面の生存期間に限定された一時状態であり、永続化は行わない。
// 全ての遷移はTravelStateMachineの純粋関数で行う。
type MapScreenState struct {
	// 地図ビューポート
	Region    Region    `json:"region"`
	ZoomLevel ZoomLevel `json:"zoom_level"`

	// タップされた建物と情報パネル
	TappedBuildingID string `json:"tapped_building_id"`
	ShowBuildingInfo bool   `json:"show_building_info"`

	// 屋内フロア情報（フォーカス建物が変わるとリセット）
	Indoor *IndoorInformation `json:"indoor,omitempty"`

	// 移動プランニング状態
	TravelState string          `json:"travel_state"`
	TravelMode  string          `json:"travel_mode"`
	Departure   DepartureTime   `json:"departure"`
	Start       *MarkerLocation `json:"start,omitempty"`
	End         *MarkerLocation `json:"end,omitempty"`

	// オムニボックス: 確定済み端点とは独立した表示文字列
	EndLocationFocused bool   `json:"end_location_focused"`
	StartDisplayText   string `json:"start_display_text"`
	EndDisplayText     string `json:"end_display_text"`

	// 検索候補（start/endで別スロットに保持し相互汚染を防ぐ）
	StartResults []SearchResult `json:"start_results,omitempty"`
	EndResults   []SearchResult `json:"end_results,omitempty"`

	// 非同期リクエストの世代カウンタ（古い応答の破棄に使用）
	LocationFetchPending bool `json:"location_fetch_pending"`
	LocationFetchGen     int  `json:"location_fetch_gen"`
	SearchFetchGen       int  `json:"search_fetch_gen"`
}

// NewMapScreenState 初期表示リージョンからマップ画面の初期状態を作成する
func NewMapScreenState(initialRegion Region, zoom ZoomLevel) MapScreenState {
	return MapScreenState{
		Region:             initialRegion,
		ZoomLevel:          zoom,
		TravelState:        TravelStateNone,
		TravelMode:         TravelModeWalking,
		Departure:          DepartureNow(),
		EndLocationFocused: true,
	}
}

// CanStartTravel 両端点が確定していて移動を開始できるかどうか
func (s *MapScreenState) CanStartTravel() bool {
	return s.TravelState == TravelStatePlanning && s.Start != nil && s.End != nil
}

// FocusedResults フォーカス中の端点に対応する検索候補リストを取得する
func (s *MapScreenState) FocusedResults() []SearchResult {
	if s.EndLocationFocused {
		return s.EndResults
	}
	return s.StartResults
}
