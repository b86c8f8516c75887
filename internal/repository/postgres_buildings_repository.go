package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
	"CampusNav-App/internal/infrastructure/database"
)

// PostgresBuildingsRepository PostgreSQL（PostGIS）直接接続による建物レジストリ
type PostgresBuildingsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresBuildingsRepository(client *database.PostgreSQLClient) repository.BuildingsRepository {
	return &PostgresBuildingsRepository{
		client: client,
	}
}

// BuildingResult PostGIS関数の結果を受け取るための構造体
type BuildingResult struct {
	ID          string
	Name        string
	Campus      string
	Location    string
	BoundingBox string
	Departments string
	Services    string
}

// ToBuilding BuildingResultをmodel.Buildingに変換
func (br *BuildingResult) ToBuilding() (*model.Building, error) {
	var locationPoint GeoPoint
	if err := json.Unmarshal([]byte(br.Location), &locationPoint); err != nil {
		return nil, fmt.Errorf("location JSONBパースエラー: %w", err)
	}
	location := GeoPointToLocation(&locationPoint)
	if location == nil {
		return nil, fmt.Errorf("建物 %s のlocationに座標が含まれていません", br.ID)
	}

	var boundingBox model.GeoPolygon
	if err := json.Unmarshal([]byte(br.BoundingBox), &boundingBox); err != nil {
		return nil, fmt.Errorf("bounding_box JSONBパースエラー: %w", err)
	}

	var departments []string
	if err := json.Unmarshal([]byte(br.Departments), &departments); err != nil {
		return nil, fmt.Errorf("departments JSONBパースエラー: %w", err)
	}

	var services []string
	if err := json.Unmarshal([]byte(br.Services), &services); err != nil {
		return nil, fmt.Errorf("services JSONBパースエラー: %w", err)
	}

	return &model.Building{
		ID:          br.ID,
		Name:        br.Name,
		Campus:      br.Campus,
		Location:    location.ToGeometry(),
		BoundingBox: &boundingBox,
		Departments: departments,
		Services:    services,
	}, nil
}

const buildingColumns = `id, name, campus,
	ST_AsGeoJSON(location) AS location,
	ST_AsGeoJSON(bounding_box) AS bounding_box,
	departments, services`

func (r *PostgresBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	query := fmt.Sprintf(`SELECT %s FROM buildings WHERE id = $1`, buildingColumns)

	row := r.client.DB.QueryRowContext(ctx, query, id)

	var result BuildingResult
	err := row.Scan(&result.ID, &result.Name, &result.Campus, &result.Location,
		&result.BoundingBox, &result.Departments, &result.Services)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("建物ID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("建物データの取得失敗: %w", err)
	}

	return result.ToBuilding()
}

func (r *PostgresBuildingsRepository) GetAll(ctx context.Context) ([]model.Building, error) {
	query := fmt.Sprintf(`SELECT %s FROM buildings ORDER BY id`, buildingColumns)
	return r.queryBuildings(ctx, query)
}

func (r *PostgresBuildingsRepository) GetByCampus(ctx context.Context, campus string) ([]model.Building, error) {
	query := fmt.Sprintf(`SELECT %s FROM buildings WHERE campus = $1 ORDER BY id`, buildingColumns)
	return r.queryBuildings(ctx, query, campus)
}

func (r *PostgresBuildingsRepository) SearchByName(ctx context.Context, searchQuery string, limit int) ([]model.Building, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s FROM buildings WHERE name ILIKE $1 OR id ILIKE $2 LIMIT $3`, buildingColumns)
	return r.queryBuildings(ctx, query, "%"+searchQuery+"%", searchQuery, limit)
}

// queryBuildings クエリを実行して建物リストに変換する共通処理
func (r *PostgresBuildingsRepository) queryBuildings(ctx context.Context, query string, args ...interface{}) ([]model.Building, error) {
	rows, err := r.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("建物データの取得失敗: %w", err)
	}
	defer rows.Close()

	var buildings []model.Building
	for rows.Next() {
		var result BuildingResult
		err := rows.Scan(&result.ID, &result.Name, &result.Campus, &result.Location,
			&result.BoundingBox, &result.Departments, &result.Services)
		if err != nil {
			return nil, fmt.Errorf("建物データスキャンエラー: %w", err)
		}

		building, err := result.ToBuilding()
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, *building)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("建物データの読み取りエラー: %w", err)
	}

	return buildings, nil
}
