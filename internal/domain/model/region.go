package model

// Region 地図のビューポートを表すモデル（パン・ズーム・プログラムによる再センタリングで更新される）
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Center ビューポートの中心座標を取得する
func (r Region) Center() LatLng {
	return LatLng{Lat: r.Latitude, Lng: r.Longitude}
}

// ZoomLevel latitudeDeltaから導出されるズーム段階
type ZoomLevel int

const (
	ZoomLevelCity    ZoomLevel = iota // 市街レベル
	ZoomLevelCampus                   // キャンパス全体
	ZoomLevelOutdoor                  // 建物群が見えるレベル
	ZoomLevelIndoor                   // 屋内フロアが見えるレベル
)

// String ZoomLevelの文字列表現
func (z ZoomLevel) String() string {
	switch z {
	case ZoomLevelCity:
		return "city"
	case ZoomLevelCampus:
		return "campus"
	case ZoomLevelOutdoor:
		return "outdoor"
	case ZoomLevelIndoor:
		return "indoor"
	}
	return "unknown"
}
