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

// fakePlacesProvider テスト用の外部オートコンプリートプロバイダ
type fakePlacesProvider struct {
	results []model.SearchResult
	err     error
}

func (f *fakePlacesProvider) SearchPlaces(ctx context.Context, query string, near model.LatLng) ([]model.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	near := model.LatLng{Lat: 34.9820, Lng: 135.9635}

	t.Run("空クエリは候補なし", func(t *testing.T) {
		svc := NewSearchService(repoImpl.NewStaticBuildingsRepository(), repoImpl.NewStaticPOIsRepository(), nil)

		results, err := svc.Search(ctx, "", near)
		require.NoError(t, err)
		assert.Nil(t, results)
	})

	t.Run("キャンパス内の一致が外部候補より先頭に並ぶ", func(t *testing.T) {
		external := &fakePlacesProvider{results: []model.SearchResult{
			{PlaceID: "ext-1", DisplayName: "市立図書館", Coordinates: model.LatLng{Lat: 34.97, Lng: 135.95}},
		}}
		svc := NewSearchService(repoImpl.NewStaticBuildingsRepository(), repoImpl.NewStaticPOIsRepository(), external)

		results, err := svc.Search(ctx, "図書", near)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "中央図書館", results[0].DisplayName)
		assert.Equal(t, "LB", results[0].BuildingID)
		assert.Equal(t, "市立図書館", results[1].DisplayName)
	})

	t.Run("同じPlaceIDの候補は重複排除される", func(t *testing.T) {
		external := &fakePlacesProvider{results: []model.SearchResult{
			{PlaceID: "LB", DisplayName: "中央図書館（外部）", Coordinates: model.LatLng{Lat: 34.9830, Lng: 135.9622}},
			{PlaceID: "ext-1", DisplayName: "市立図書館", Coordinates: model.LatLng{Lat: 34.97, Lng: 135.95}},
		}}
		svc := NewSearchService(repoImpl.NewStaticBuildingsRepository(), repoImpl.NewStaticPOIsRepository(), external)

		results, err := svc.Search(ctx, "図書", near)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "中央図書館", results[0].DisplayName)
		assert.Equal(t, "ext-1", results[1].PlaceID)
	})

	t.Run("外部プロバイダの失敗は候補なしとして扱われる", func(t *testing.T) {
		external := &fakePlacesProvider{err: fmt.Errorf("API quota exceeded")}
		svc := NewSearchService(repoImpl.NewStaticBuildingsRepository(), repoImpl.NewStaticPOIsRepository(), external)

		results, err := svc.Search(ctx, "図書", near)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "中央図書館", results[0].DisplayName)
	})

	t.Run("POIも検索対象になる", func(t *testing.T) {
		svc := NewSearchService(repoImpl.NewStaticBuildingsRepository(), repoImpl.NewStaticPOIsRepository(), nil)

		results, err := svc.Search(ctx, "シャトル", near)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Empty(t, results[0].BuildingID)
	})
}
