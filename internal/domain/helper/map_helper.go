package helper

import (
	"fmt"
	"math"
	"time"

	"CampusNav-App/internal/domain/model"
)

// ズームレベル判定に使うlatitudeDeltaの閾値
const (
	cityLatDelta    = 0.1
	campusLatDelta  = 0.02
	outdoorLatDelta = 0.005
)

// GetZoomLevelByLatDelta ビューポートのlatitudeDeltaからズーム段階を導出する
func GetZoomLevelByLatDelta(latDelta float64) model.ZoomLevel {
	switch {
	case latDelta >= cityLatDelta:
		return model.ZoomLevelCity
	case latDelta >= campusLatDelta:
		return model.ZoomLevelCampus
	case latDelta >= outdoorLatDelta:
		return model.ZoomLevelOutdoor
	default:
		return model.ZoomLevelIndoor
	}
}

// ShowPickedTime 出発時刻の表示文字列を作成する。「今すぐ」の場合は時刻を出さない。
func ShowPickedTime(t time.Time, isNow bool) string {
	if isNow {
		return "今すぐ出発"
	}
	return fmt.Sprintf("%s 出発", t.Format("15:04"))
}

// HaversineDistance 2点間の球面距離をメートル単位で計算する
func HaversineDistance(p1, p2 model.LatLng) float64 {
	const earthRadius = 6378137.0 // WGS84 長半径 (m)

	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	deltaLat := (p2.Lat - p1.Lat) * math.Pi / 180
	deltaLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
