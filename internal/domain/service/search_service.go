package service

import (
	"context"
	"fmt"
	"sync"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
)

// SearchService はオムニボックスの候補検索を行う単一のサービス。
// キャンパス内レジストリ（建物・POI）と外部のオートコンプリートプロバイダを
// 並行に検索し、キャンパス内の一致を先頭にして統合する。
type SearchService interface {
	Search(ctx context.Context, query string, near model.LatLng) ([]model.SearchResult, error)
}

type searchService struct {
	buildingsRepo  repository.BuildingsRepository
	poisRepo       repository.POIsRepository
	placesProvider repository.PlacesSearchProvider
	limit          int
}

// NewSearchService 新しいSearchServiceインスタンスを作成。
// placesProviderはnil可（その場合はキャンパス内のみ検索）。
func NewSearchService(buildingsRepo repository.BuildingsRepository, poisRepo repository.POIsRepository, placesProvider repository.PlacesSearchProvider) SearchService {
	return &searchService{
		buildingsRepo:  buildingsRepo,
		poisRepo:       poisRepo,
		placesProvider: placesProvider,
		limit:          10,
	}
}

// sourceResult は並行検索の結果を格納する
type sourceResult struct {
	priority int // 小さいほど先頭に並ぶ（0:建物, 1:POI, 2:外部）
	results  []model.SearchResult
	err      error
}

// Search はクエリ文字列から候補リストを作成する
func (s *searchService) Search(ctx context.Context, query string, near model.LatLng) ([]model.SearchResult, error) {
	if query == "" {
		return nil, nil
	}

	resultsChan := make(chan sourceResult, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		buildings, err := s.buildingsRepo.SearchByName(ctx, query, s.limit)
		if err != nil {
			resultsChan <- sourceResult{priority: 0, err: fmt.Errorf("建物検索: %w", err)}
			return
		}
		converted := make([]model.SearchResult, 0, len(buildings))
		for i := range buildings {
			b := &buildings[i]
			converted = append(converted, model.SearchResult{
				PlaceID:     b.ID,
				DisplayName: b.Name,
				Coordinates: b.ToLatLng(),
				BuildingID:  b.ID,
			})
		}
		resultsChan <- sourceResult{priority: 0, results: converted}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		pois, err := s.poisRepo.SearchByName(ctx, query, s.limit)
		if err != nil {
			resultsChan <- sourceResult{priority: 1, err: fmt.Errorf("POI検索: %w", err)}
			return
		}
		converted := make([]model.SearchResult, 0, len(pois))
		for i := range pois {
			p := &pois[i]
			converted = append(converted, model.SearchResult{
				PlaceID:     p.ID,
				DisplayName: p.Name,
				Coordinates: p.ToLatLng(),
			})
		}
		resultsChan <- sourceResult{priority: 1, results: converted}
	}()

	if s.placesProvider != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			places, err := s.placesProvider.SearchPlaces(ctx, query, near)
			if err != nil {
				resultsChan <- sourceResult{priority: 2, err: fmt.Errorf("外部検索: %w", err)}
				return
			}
			resultsChan <- sourceResult{priority: 2, results: places}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// 優先度順に統合（候補が無いのはエラーではない）
	bySource := make(map[int][]model.SearchResult)
	for result := range resultsChan {
		if result.err != nil {
			// 失敗したソースは黙って除外する（境界でエラーを飲み込む設計）
			continue
		}
		bySource[result.priority] = result.results
	}

	merged := make([]model.SearchResult, 0, s.limit)
	seen := make(map[string]bool)
	for priority := 0; priority <= 2; priority++ {
		for _, r := range bySource[priority] {
			if r.PlaceID != "" && seen[r.PlaceID] {
				continue
			}
			seen[r.PlaceID] = true
			merged = append(merged, r)
			if len(merged) >= s.limit {
				return merged, nil
			}
		}
	}

	return merged, nil
}
