package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CampusNav-App/internal/domain/model"
)

func TestPointInPolygon(t *testing.T) {
	boundary := rectPolygon(135.9630, 34.9815, 135.9640, 34.9825)

	t.Run("内側の点はtrue", func(t *testing.T) {
		assert.True(t, PointInPolygon(model.LatLng{Lat: 34.9820, Lng: 135.9635}, boundary))
	})

	t.Run("外側の点はfalse", func(t *testing.T) {
		assert.False(t, PointInPolygon(model.LatLng{Lat: 34.9900, Lng: 135.9700}, boundary))
	})

	t.Run("nilポリゴンはfalse", func(t *testing.T) {
		assert.False(t, PointInPolygon(model.LatLng{Lat: 34.9820, Lng: 135.9635}, nil))
	})

	t.Run("座標リングが空のポリゴンはfalse", func(t *testing.T) {
		empty := &model.GeoPolygon{Type: "Polygon"}
		assert.False(t, PointInPolygon(model.LatLng{Lat: 34.9820, Lng: 135.9635}, empty))
	})
}

func TestGeoPointToLocation(t *testing.T) {
	t.Run("PostGISのPOINTをLocation経由でGeometryに変換できる", func(t *testing.T) {
		geoPoint := &GeoPoint{Type: "Point", Coordinates: []float64{135.9635, 34.9820}}

		location := GeoPointToLocation(geoPoint)
		require.NotNil(t, location)
		assert.Equal(t, 34.9820, location.Latitude)
		assert.Equal(t, 135.9635, location.Longitude)

		geometry := location.ToGeometry()
		require.NotNil(t, geometry)
		assert.Equal(t, "Point", geometry.Type)
		assert.Equal(t, []float64{135.9635, 34.9820}, geometry.Coordinates)
	})

	t.Run("座標が欠けている場合はnilを返す", func(t *testing.T) {
		assert.Nil(t, GeoPointToLocation(nil))
		assert.Nil(t, GeoPointToLocation(&GeoPoint{Type: "Point"}))
	})
}

func TestCreateBoundingBoxPolygon(t *testing.T) {
	t.Run("2点を含むパディング付きの矩形ができる", func(t *testing.T) {
		start := &model.Location{Latitude: 34.9820, Longitude: 135.9635}
		end := &model.Location{Latitude: 34.9830, Longitude: 135.9622}

		box := CreateBoundingBoxPolygon(start, end)
		require.NotNil(t, box)
		assert.True(t, PointInPolygon(model.LatLng{Lat: start.Latitude, Lng: start.Longitude}, box))
		assert.True(t, PointInPolygon(model.LatLng{Lat: end.Latitude, Lng: end.Longitude}, box))
	})

	t.Run("nilの位置はnilを返す", func(t *testing.T) {
		assert.Nil(t, CreateBoundingBoxPolygon(nil, &model.Location{}))
		assert.Nil(t, CreateBoundingBoxPolygon(&model.Location{}, nil))
	})
}
