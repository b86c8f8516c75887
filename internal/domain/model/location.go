package model

// LatLng 緯度経度を表す基本的な型（経路検索などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// LocationFromLatLng LatLng を Location 型に変換
func LocationFromLatLng(ll LatLng) *Location {
	return &Location{
		Latitude:  ll.Lat,
		Longitude: ll.Lng,
	}
}

// Geometry PostGIS GEOMETRY型に対応する構造体
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

// ToGeometry Location を PostGIS GEOMETRY 型に変換
func (l *Location) ToGeometry() *Geometry {
	return &Geometry{
		Type:        "Point",
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// GeoPolygon PostGIS POLYGON 型に対応する構造体（建物の境界などで使用）
type GeoPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"` // [ring][point][lng,lat]
}

// OuterRing 外周リングの座標列を取得する（リングがない場合はnil）
func (p *GeoPolygon) OuterRing() [][]float64 {
	if p == nil || len(p.Coordinates) == 0 {
		return nil
	}
	return p.Coordinates[0]
}
