package repository

import (
	"context"
	"fmt"
	"strings"

	"CampusNav-App/internal/domain/helper"
	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
)

// StaticBuildingsRepository 組み込みのキャンパスデータを返す読み取り専用リポジトリ。
// データベース未設定の環境（ローカル開発・テスト）ではこれがデフォルトになる。
type StaticBuildingsRepository struct {
	buildings []model.Building
}

// NewStaticBuildingsRepository 組み込みデータで新しいリポジトリを作成
func NewStaticBuildingsRepository() repository.BuildingsRepository {
	return &StaticBuildingsRepository{buildings: campusBuildings()}
}

// NewStaticBuildingsRepositoryWithData 任意の建物データでリポジトリを作成（テスト用）
func NewStaticBuildingsRepositoryWithData(buildings []model.Building) repository.BuildingsRepository {
	return &StaticBuildingsRepository{buildings: buildings}
}

func (r *StaticBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	for i := range r.buildings {
		if r.buildings[i].ID == id {
			b := r.buildings[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("建物ID %s が見つかりません", id)
}

func (r *StaticBuildingsRepository) GetAll(ctx context.Context) ([]model.Building, error) {
	result := make([]model.Building, len(r.buildings))
	copy(result, r.buildings)
	return result, nil
}

func (r *StaticBuildingsRepository) GetByCampus(ctx context.Context, campus string) ([]model.Building, error) {
	var result []model.Building
	for _, b := range r.buildings {
		if b.Campus == campus {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *StaticBuildingsRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.Building, error) {
	if query == "" {
		return nil, nil
	}
	lowered := strings.ToLower(query)
	var result []model.Building
	for _, b := range r.buildings {
		if strings.Contains(strings.ToLower(b.Name), lowered) || strings.EqualFold(b.ID, query) {
			result = append(result, b)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// StaticPOIsRepository 組み込みのキャンパス内スポットを返す読み取り専用リポジトリ
type StaticPOIsRepository struct {
	pois []model.POI
}

// NewStaticPOIsRepository 組み込みデータで新しいリポジトリを作成
func NewStaticPOIsRepository() repository.POIsRepository {
	return &StaticPOIsRepository{pois: campusPOIs()}
}

func (r *StaticPOIsRepository) GetByID(ctx context.Context, id string) (*model.POI, error) {
	for i := range r.pois {
		if r.pois[i].ID == id {
			p := r.pois[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("POI ID %s が見つかりません", id)
}

func (r *StaticPOIsRepository) GetNearbyPOIs(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.POI, error) {
	center := model.LatLng{Lat: lat, Lng: lng}
	var result []model.POI
	for _, p := range r.pois {
		if helper.HaversineDistance(center, p.ToLatLng()) <= float64(radiusMeters) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *StaticPOIsRepository) SearchByName(ctx context.Context, query string, limit int) ([]model.POI, error) {
	if query == "" {
		return nil, nil
	}
	lowered := strings.ToLower(query)
	var result []model.POI
	for _, p := range r.pois {
		if strings.Contains(strings.ToLower(p.Name), lowered) {
			result = append(result, p)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// rectPolygon 建物境界の矩形ポリゴンを作成する（閉じたリング）
func rectPolygon(minLng, minLat, maxLng, maxLat float64) *model.GeoPolygon {
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

func point(lng, lat float64) *model.Geometry {
	return &model.Geometry{Type: "Point", Coordinates: []float64{lng, lat}}
}

// campusBuildings 組み込みの建物レジストリ
func campusBuildings() []model.Building {
	return []model.Building{
		{
			ID:          "H",
			Name:        "H棟（本館）",
			Campus:      "east",
			Location:    point(135.9635, 34.9820),
			BoundingBox: rectPolygon(135.9630, 34.9815, 135.9640, 34.9825),
			Departments: []string{"情報理工学部", "数理科学科"},
			Services:    []string{"学生ラウンジ", "証明書発行機"},
		},
		{
			ID:          "MB",
			Name:        "メディア棟",
			Campus:      "east",
			Location:    point(135.9650, 34.9828),
			BoundingBox: rectPolygon(135.9645, 34.9824, 135.9655, 34.9832),
			Departments: []string{"映像学部"},
			Services:    []string{"メディアライブラリ", "カフェテリア"},
		},
		{
			ID:          "LB",
			Name:        "中央図書館",
			Campus:      "east",
			Location:    point(135.9622, 34.9830),
			BoundingBox: rectPolygon(135.9617, 34.9826, 135.9627, 34.9834),
			Departments: nil,
			Services:    []string{"ラーニングコモンズ", "グループ学習室"},
		},
		{
			ID:          "CC",
			Name:        "コアステーション",
			Campus:      "east",
			Location:    point(135.9642, 34.9812),
			BoundingBox: rectPolygon(135.9637, 34.9808, 135.9647, 34.9816),
			Departments: nil,
			Services:    []string{"学生オフィス", "キャリアセンター", "国際教育センター"},
		},
		{
			ID:          "GW",
			Name:        "西ゲートホール",
			Campus:      "west",
			Location:    point(135.9540, 34.9850),
			BoundingBox: rectPolygon(135.9535, 34.9846, 135.9545, 34.9854),
			Departments: []string{"経営学部"},
			Services:    []string{"売店"},
		},
	}
}

// campusPOIs 組み込みの建物以外のスポット
func campusPOIs() []model.POI {
	return []model.POI{
		{ID: "poi-main-gate", Name: "正門", Location: point(135.9628, 34.9805), Category: "gate"},
		{ID: "poi-bus-stop", Name: "大学前バス停", Location: point(135.9624, 34.9802), Category: "bus_stop"},
		{ID: "poi-shuttle-east", Name: "シャトルバス乗り場（東）", Location: point(135.9646, 34.9806), Category: "shuttle_stop"},
		{ID: "poi-shuttle-west", Name: "シャトルバス乗り場（西）", Location: point(135.9542, 34.9844), Category: "shuttle_stop"},
		{ID: "poi-cafeteria", Name: "第一食堂", Location: point(135.9638, 34.9834), Category: "food"},
	}
}
