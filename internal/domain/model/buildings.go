package model

// Building キャンパス内の建物を表すモデル（静的な参照データ）
type Building struct {
	ID          string      `json:"id" db:"id"`                     // 建物ID（例: "H", "MB"）
	Name        string      `json:"name" db:"name"`                 // 建物名
	Campus      string      `json:"campus" db:"campus"`             // 所属キャンパス
	Location    *Geometry   `json:"location" db:"location"`         // 代表点（PostGIS GEOMETRY型）
	BoundingBox *GeoPolygon `json:"bounding_box" db:"bounding_box"` // 建物の境界ポリゴン
	Departments []string    `json:"departments" db:"departments"`   // 学部・学科へのリンク
	Services    []string    `json:"services" db:"services"`         // 建物内サービスへのリンク
}

// ToLatLng 建物の代表点をLatLng型に変換
func (b *Building) ToLatLng() LatLng {
	if b.Location != nil && len(b.Location.Coordinates) >= 2 {
		return LatLng{
			Lat: b.Location.Coordinates[1],
			Lng: b.Location.Coordinates[0],
		}
	}
	return LatLng{}
}

// POI Point of Interest（建物以外の検索可能なスポット）を表すモデル
type POI struct {
	ID       string    `json:"id" db:"id"`             // ユニークなスポットID
	Name     string    `json:"name" db:"name"`         // スポット名
	Location *Geometry `json:"location" db:"location"` // 位置情報（PostGIS GEOMETRY型）
	Category string    `json:"category" db:"category"` // カテゴリ
}

// ToLatLng POIの位置情報をLatLng型に変換
func (p *POI) ToLatLng() LatLng {
	if p.Location != nil && len(p.Location.Coordinates) >= 2 {
		return LatLng{
			Lat: p.Location.Coordinates[1],
			Lng: p.Location.Coordinates[0],
		}
	}
	return LatLng{}
}
