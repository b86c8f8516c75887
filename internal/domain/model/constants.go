package model

// TravelState 検索UIの表示と端点編集ルールを決定する移動プランニング状態
const (
	TravelStateNone       = "none"       // 通常の検索バーのみ表示
	TravelStatePlanning   = "planning"   // 2端点のオムニボックス表示・端点編集可
	TravelStateTravelling = "travelling" // 移動中（端点編集は引き続き可）
)

// TravelMode 経路検索に使用する移動手段の定数
const (
	TravelModeCar        = "car"
	TravelModeAccessible = "accessible"
	TravelModeWalking    = "walking"
	TravelModeBus        = "bus"
	TravelModeShuttle    = "shuttle"
)

// CurrentLocationLabel 現在地ピンの表示名
const CurrentLocationLabel = "現在地"

// FetchingLocationPlaceholder 現在地取得中に出発地欄へ表示するプレースホルダ
const FetchingLocationPlaceholder = "現在地を取得中..."

// TravelModeNameMap 移動手段IDから日本語名へのマッピング
var TravelModeNameMap = map[string]string{
	TravelModeCar:        "車",
	TravelModeAccessible: "バリアフリー",
	TravelModeWalking:    "徒歩",
	TravelModeBus:        "バス",
	TravelModeShuttle:    "シャトルバス",
}

// GetTravelModeJapaneseName 移動手段IDから日本語名を取得する
func GetTravelModeJapaneseName(mode string) string {
	if name, ok := TravelModeNameMap[mode]; ok {
		return name
	}
	return mode // デフォルトはそのまま返す
}

// GetAllTravelModes 全移動手段の一覧を取得する
func GetAllTravelModes() []string {
	return []string{
		TravelModeCar,
		TravelModeAccessible,
		TravelModeWalking,
		TravelModeBus,
		TravelModeShuttle,
	}
}

// IsValidTravelMode 移動手段IDが有効かチェック
func IsValidTravelMode(mode string) bool {
	_, ok := TravelModeNameMap[mode]
	return ok
}
