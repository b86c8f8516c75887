package model

// SearchResult オートコンプリートが返す候補地点。
// 選択が確定するか入力がblurされた時点で破棄される一時データ。
type SearchResult struct {
	PlaceID     string `json:"place_id"`              // 外部プロバイダのID（建物の場合は建物ID）
	DisplayName string `json:"display_name"`          // 表示名
	Coordinates LatLng `json:"coordinates"`           // 位置
	BuildingID  string `json:"building_id,omitempty"` // キャンパス内建物に一致した場合のみ
}

// ToMarkerLocation 検索候補を経路端点に変換する
func (s *SearchResult) ToMarkerLocation() *MarkerLocation {
	if s.BuildingID != "" {
		return &MarkerLocation{
			Kind:        MarkerKindBuilding,
			BuildingID:  s.BuildingID,
			DisplayName: s.DisplayName,
			Coordinates: s.Coordinates,
		}
	}
	return NewPOIMarker(s.DisplayName, s.Coordinates)
}
