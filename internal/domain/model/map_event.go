package model

import "time"

// MapEventType マップ画面へ流れるユーザー操作・非同期完了イベントの種別
const (
	EventStartPlanning     = "start_planning"      // 検索バーのタップ
	EventTapBuilding       = "tap_building"        // 建物マーカーのタップ
	EventTapPOI            = "tap_poi"             // POIマーカーのタップ
	EventSelectResult      = "select_result"       // 検索候補の選択
	EventCloseBuildingInfo = "close_building_info" // 情報パネルを閉じる
	EventFocusEndpoint     = "focus_endpoint"      // 編集対象端点の切り替え
	EventChangeText        = "change_text"         // オムニボックスへのキーストローク
	EventPressBack         = "press_back"          // プランニング中断
	EventPickTime          = "pick_time"           // 出発時刻の選択（time省略でキャンセル）
	EventSelectMode        = "select_mode"         // 移動手段の選択
	EventRegionChange      = "region_change"       // パン・ズーム
	EventIndoorFocus       = "indoor_focus"        // 屋内建物フォーカス
	EventSelectFloor       = "select_floor"        // 屋内フロア選択
)

// MapEvent マップ画面へディスパッチされるイベント。Typeに応じて使うフィールドが決まる。
type MapEvent struct {
	Type string `json:"type" validate:"required"`

	BuildingID  string             `json:"building_id,omitempty"` // tap_building
	POIName     string             `json:"poi_name,omitempty"`    // tap_poi
	Coordinates *LatLng            `json:"coordinates,omitempty"` // tap_poi
	Result      *SearchResult      `json:"result,omitempty"`      // select_result
	EndFocused  *bool              `json:"end_focused,omitempty"` // focus_endpoint
	Text        *string            `json:"text,omitempty"`        // change_text
	Time        *time.Time         `json:"time,omitempty"`        // pick_time（省略＝「今すぐ」へ戻す）
	TravelMode  string             `json:"travel_mode,omitempty"` // select_mode
	Region      *Region            `json:"region,omitempty"`      // region_change
	Indoor      *IndoorInformation `json:"indoor,omitempty"`      // indoor_focus
	FloorIndex  *int               `json:"floor_index,omitempty"` // select_floor
}
