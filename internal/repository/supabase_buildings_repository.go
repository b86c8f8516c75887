package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"CampusNav-App/internal/database"
	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
)

// SupabaseBuildingsRepository Supabase（PostgREST）経由の建物レジストリ
type SupabaseBuildingsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseBuildingsRepository(client *database.SupabaseClient) repository.BuildingsRepository {
	return &SupabaseBuildingsRepository{
		client: client,
	}
}

func (r *SupabaseBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("建物データの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	if len(buildings) == 0 {
		return nil, fmt.Errorf("建物ID %s が見つかりません", id)
	}

	return &buildings[0], nil
}

func (r *SupabaseBuildingsRepository) GetAll(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("建物データの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	return buildings, nil
}

func (r *SupabaseBuildingsRepository) GetByCampus(ctx context.Context, campus string) ([]model.Building, error) {
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").Select("*", "exact", false).Eq("campus", campus).Execute()
	if err != nil {
		return nil, fmt.Errorf("キャンパス %s の建物データ取得失敗: %w", campus, err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	return buildings, nil
}

// SearchByName 建物名の部分一致（大文字小文字を無視）と建物ID一致で検索する
func (r *SupabaseBuildingsRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.Building, error) {
	byName, err := r.searchWithFilter("name", "ilike", "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("建物名検索の失敗: %w", err)
	}

	byID, err := r.searchWithFilter("id", "ilike", query)
	if err != nil {
		return nil, fmt.Errorf("建物ID検索の失敗: %w", err)
	}

	// 名前一致を優先し、ID一致は重複を除いて後ろに足す
	seen := make(map[string]bool, len(byName))
	for _, b := range byName {
		seen[b.ID] = true
	}
	buildings := byName
	for _, b := range byID {
		if !seen[b.ID] {
			buildings = append(buildings, b)
		}
	}

	if limit > 0 && len(buildings) > limit {
		buildings = buildings[:limit]
	}

	return buildings, nil
}

// searchWithFilter 単一条件のPostgRESTフィルタで建物を取得する
func (r *SupabaseBuildingsRepository) searchWithFilter(column, operator, value string) ([]model.Building, error) {
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").
		Select("*", "exact", false).
		Filter(column, operator, value).
		Execute()
	if err != nil {
		return nil, err
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	return buildings, nil
}
