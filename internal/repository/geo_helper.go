package repository

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"CampusNav-App/internal/domain/model"
)

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoPointToLocation PostGIS POINT を model.Location に変換
func GeoPointToLocation(geoPoint *GeoPoint) *model.Location {
	if geoPoint == nil || len(geoPoint.Coordinates) < 2 {
		return nil
	}

	point := orb.Point{geoPoint.Coordinates[0], geoPoint.Coordinates[1]}

	return &model.Location{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}
}

// GeoPolygonToOrbPolygon model.GeoPolygon を orb.Polygon に変換
func GeoPolygonToOrbPolygon(polygon *model.GeoPolygon) orb.Polygon {
	if polygon == nil {
		return nil
	}

	rings := make(orb.Polygon, 0, len(polygon.Coordinates))
	for _, ring := range polygon.Coordinates {
		orbRing := make(orb.Ring, 0, len(ring))
		for _, coord := range ring {
			if len(coord) < 2 {
				continue
			}
			orbRing = append(orbRing, orb.Point{coord[0], coord[1]})
		}
		rings = append(rings, orbRing)
	}
	return rings
}

// PointInPolygon 座標が建物境界ポリゴンの内側にあるかを判定する
func PointInPolygon(coordinate model.LatLng, polygon *model.GeoPolygon) bool {
	orbPolygon := GeoPolygonToOrbPolygon(polygon)
	if len(orbPolygon) == 0 {
		return false
	}
	return planar.PolygonContains(orbPolygon, orb.Point{coordinate.Lng, coordinate.Lat})
}

// CreateBoundingBoxPolygon 開始・終了位置からシンプルな境界ボックスを作成
func CreateBoundingBoxPolygon(startLoc, endLoc *model.Location) *model.GeoPolygon {
	if startLoc == nil || endLoc == nil {
		return nil
	}

	start := orb.Point{startLoc.Longitude, startLoc.Latitude}
	end := orb.Point{endLoc.Longitude, endLoc.Latitude}

	bound := orb.Bound{Min: start, Max: start}
	bound = bound.Extend(start).Extend(end)

	// 少し余裕を持たせる（約100m程度）
	padding := 0.001 // 約111m
	bound = bound.Pad(padding)

	minLng := bound.Min.Lon()
	minLat := bound.Min.Lat()
	maxLng := bound.Max.Lon()
	maxLat := bound.Max.Lat()

	coordinates := [][][]float64{
		{
			{minLng, minLat}, // 左下
			{maxLng, minLat}, // 右下
			{maxLng, maxLat}, // 右上
			{minLng, maxLat}, // 左上
			{minLng, minLat}, // 閉じる
		},
	}

	return &model.GeoPolygon{
		Type:        "Polygon",
		Coordinates: coordinates,
	}
}
