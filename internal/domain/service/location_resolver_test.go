package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CampusNav-App/internal/domain/model"
	repoImpl "CampusNav-App/internal/repository"
)

// failingBuildingsRepo 常にエラーを返すレジストリ（フォールバック検証用）
type failingBuildingsRepo struct{}

func (r *failingBuildingsRepo) GetByID(ctx context.Context, id string) (*model.Building, error) {
	return nil, fmt.Errorf("建物ID %s が見つかりません", id)
}

func (r *failingBuildingsRepo) GetAll(ctx context.Context) ([]model.Building, error) {
	return nil, fmt.Errorf("レジストリへの接続に失敗")
}

func (r *failingBuildingsRepo) GetByCampus(ctx context.Context, campus string) ([]model.Building, error) {
	return nil, fmt.Errorf("レジストリへの接続に失敗")
}

func (r *failingBuildingsRepo) SearchByName(ctx context.Context, query string, limit int) ([]model.Building, error) {
	return nil, fmt.Errorf("レジストリへの接続に失敗")
}

func resolverBuildings() []model.Building {
	rect := func(minLng, minLat, maxLng, maxLat float64) *model.GeoPolygon {
		return &model.GeoPolygon{
			Type: "Polygon",
			Coordinates: [][][]float64{
				{
					{minLng, minLat},
					{maxLng, minLat},
					{maxLng, maxLat},
					{minLng, maxLat},
					{minLng, minLat},
				},
			},
		}
	}
	return []model.Building{
		{
			ID:          "H",
			Name:        "H棟（本館）",
			Campus:      "east",
			Location:    &model.Geometry{Type: "Point", Coordinates: []float64{135.9635, 34.9820}},
			BoundingBox: rect(135.9630, 34.9815, 135.9640, 34.9825),
		},
		{
			// H棟と境界が重なる建物。先に一致した方が勝つことの検証用。
			ID:          "H2",
			Name:        "H2棟",
			Campus:      "east",
			Location:    &model.Geometry{Type: "Point", Coordinates: []float64{135.9638, 34.9822}},
			BoundingBox: rect(135.9633, 34.9818, 135.9643, 34.9828),
		},
		{
			ID:       "NP",
			Name:     "境界未登録棟",
			Campus:   "east",
			Location: &model.Geometry{Type: "Point", Coordinates: []float64{135.9660, 34.9840}},
		},
	}
}

func TestLocationResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("建物ポリゴン内の座標はその建物に解決される", func(t *testing.T) {
		resolver := NewLocationResolver(repoImpl.NewStaticBuildingsRepositoryWithData(resolverBuildings()))

		marker := resolver.Resolve(ctx, model.LatLng{Lat: 34.9820, Lng: 135.9632})

		require.NotNil(t, marker)
		assert.Equal(t, model.MarkerKindBuilding, marker.Kind)
		assert.Equal(t, "H", marker.BuildingID)
		assert.Equal(t, "H棟（本館）", marker.DisplayName)
	})

	t.Run("複数の境界に含まれる座標は最初に一致した建物が勝つ", func(t *testing.T) {
		resolver := NewLocationResolver(repoImpl.NewStaticBuildingsRepositoryWithData(resolverBuildings()))

		// H棟とH2棟の重なり部分
		marker := resolver.Resolve(ctx, model.LatLng{Lat: 34.9820, Lng: 135.9637})

		require.NotNil(t, marker)
		assert.Equal(t, "H", marker.BuildingID)
	})

	t.Run("どの建物にも含まれない座標は現在地ピンになる", func(t *testing.T) {
		resolver := NewLocationResolver(repoImpl.NewStaticBuildingsRepositoryWithData(resolverBuildings()))

		coordinate := model.LatLng{Lat: 34.9900, Lng: 135.9700}
		marker := resolver.Resolve(ctx, coordinate)

		require.NotNil(t, marker)
		assert.Equal(t, model.MarkerKindCurrentLocation, marker.Kind)
		assert.Equal(t, model.CurrentLocationLabel, marker.DisplayName)
		assert.Equal(t, coordinate, marker.Coordinates)
	})

	t.Run("境界未登録の建物はスキップされる", func(t *testing.T) {
		resolver := NewLocationResolver(repoImpl.NewStaticBuildingsRepositoryWithData(resolverBuildings()))

		// NP棟の位置そのものだが境界が無いので現在地ピン
		marker := resolver.Resolve(ctx, model.LatLng{Lat: 34.9840, Lng: 135.9660})

		require.NotNil(t, marker)
		assert.Equal(t, model.MarkerKindCurrentLocation, marker.Kind)
	})

	t.Run("レジストリが読めない場合も現在地ピンへフォールバックする", func(t *testing.T) {
		resolver := NewLocationResolver(&failingBuildingsRepo{})

		marker := resolver.Resolve(ctx, model.LatLng{Lat: 34.9820, Lng: 135.9632})

		require.NotNil(t, marker)
		assert.Equal(t, model.MarkerKindCurrentLocation, marker.Kind)
	})
}
