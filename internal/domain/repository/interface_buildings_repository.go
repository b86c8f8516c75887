package repository

import (
	"context"

	"CampusNav-App/internal/domain/model"
)

// BuildingsRepository キャンパス建物の静的レジストリへの読み取り専用アクセス
type BuildingsRepository interface {
	GetByID(ctx context.Context, id string) (*model.Building, error)
	GetAll(ctx context.Context) ([]model.Building, error)
	GetByCampus(ctx context.Context, campus string) ([]model.Building, error)
	// 建物名・IDの部分一致検索（オムニボックスのキャンパス内候補に使用）
	SearchByName(ctx context.Context, query string, limit int) ([]model.Building, error)
}

// POIsRepository 建物以外の検索可能スポットへの読み取り専用アクセス
type POIsRepository interface {
	GetByID(ctx context.Context, id string) (*model.POI, error)
	GetNearbyPOIs(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.POI, error)
	SearchByName(ctx context.Context, query string, limit int) ([]model.POI, error)
}
