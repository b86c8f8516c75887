package model

// MarkerKind 経路端点の種別を表す定数
const (
	MarkerKindBuilding        = "building"         // キャンパス内の建物
	MarkerKindPOI             = "poi"              // 検索結果・スポット
	MarkerKindCurrentLocation = "current_location" // 現在地ピン
)

// MarkerLocation 経路の端点（出発地・目的地）を表すタグ付きバリアント。
// 建物・POI・現在地ピンのいずれかを表し、kindで判別する。
type MarkerLocation struct {
	Kind        string `json:"kind"`                  // MarkerKind定数のいずれか
	BuildingID  string `json:"building_id,omitempty"` // kindがbuildingの場合のみ
	DisplayName string `json:"display_name"`          // 表示名
	Coordinates LatLng `json:"coordinates"`           // 位置
}

// NewBuildingMarker 建物から端点を作成する
func NewBuildingMarker(b *Building) *MarkerLocation {
	return &MarkerLocation{
		Kind:        MarkerKindBuilding,
		BuildingID:  b.ID,
		DisplayName: b.Name,
		Coordinates: b.ToLatLng(),
	}
}

// NewPOIMarker POI・検索結果から端点を作成する
func NewPOIMarker(name string, coordinates LatLng) *MarkerLocation {
	return &MarkerLocation{
		Kind:        MarkerKindPOI,
		DisplayName: name,
		Coordinates: coordinates,
	}
}

// NewCurrentLocationMarker 生の座標から汎用の現在地端点を作成する
func NewCurrentLocationMarker(coordinates LatLng) *MarkerLocation {
	return &MarkerLocation{
		Kind:        MarkerKindCurrentLocation,
		DisplayName: CurrentLocationLabel,
		Coordinates: coordinates,
	}
}

// IsBuilding 端点が建物かどうかを判定する
func (m *MarkerLocation) IsBuilding() bool {
	return m != nil && m.Kind == MarkerKindBuilding
}
