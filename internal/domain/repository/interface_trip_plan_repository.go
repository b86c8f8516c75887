package repository

import (
	"context"

	"CampusNav-App/internal/domain/model"
)

// TripPlanRepository は計画済み経路のキャッシュの責務を持つリポジトリインターフェース
type TripPlanRepository interface {
	// SaveTripPlan は計画済み経路をTTL付きで保存し、plan_idを生成して返す
	SaveTripPlan(ctx context.Context, plan *model.TripPlan, ttlHours int) (*model.TripPlan, error)

	// GetTripPlan は指定されたplan_idの計画済み経路を取得する
	GetTripPlan(ctx context.Context, planID string) (*model.TripPlan, error)
}
