package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"CampusNav-App/internal/domain/helper"
	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
	repoImpl "CampusNav-App/internal/repository"
)

// tripPlanTTLHours Firestoreに保存する計画済み経路の有効期限
const tripPlanTTLHours = 2

type TripPlanUseCase interface {
	// PlanTrip は外部プランナーで経路を計算し、キャッシュへ保存して返す
	PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error)

	// GetTripPlan は指定されたplan_idの計画済み経路を取得する
	GetTripPlan(ctx context.Context, planID string) (*model.TripPlan, error)
}

// tripPlanUseCaseImpl はTripPlanUseCaseの実装
type tripPlanUseCaseImpl struct {
	directionsProvider repository.DirectionsProvider
	tripPlanRepo       repository.TripPlanRepository
}

// NewTripPlanUseCase 新しいTripPlanUseCaseインスタンスを作成。
// tripPlanRepoはnil可（その場合は保存せずに返す）。
func NewTripPlanUseCase(directionsProvider repository.DirectionsProvider, tripPlanRepo repository.TripPlanRepository) TripPlanUseCase {
	return &tripPlanUseCaseImpl{
		directionsProvider: directionsProvider,
		tripPlanRepo:       tripPlanRepo,
	}
}

// PlanTrip は外部プランナーで経路を計算し、キャッシュへ保存して返す
func (u *tripPlanUseCaseImpl) PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error) {
	if req.Start == nil || req.End == nil {
		return nil, fmt.Errorf("出発地と目的地の両方が必要です")
	}
	if u.directionsProvider == nil {
		return nil, fmt.Errorf("経路検索プロバイダが設定されていません")
	}

	log.Printf("🚀 経路計画開始 (%s → %s, 手段: %s)", req.Start.DisplayName, req.End.DisplayName, req.TravelMode)

	departure := req.Departure.Time
	if req.Departure.IsNow {
		departure = time.Now()
	}

	details, err := u.directionsProvider.GetRoute(ctx, req.Start.Coordinates, req.End.Coordinates, req.TravelMode, departure)
	if err != nil {
		return nil, fmt.Errorf("経路計算に失敗: %w", err)
	}

	plan := &model.TripPlan{
		StartName:                req.Start.DisplayName,
		EndName:                  req.End.DisplayName,
		TravelMode:               req.TravelMode,
		DepartureDisplay:         helper.ShowPickedTime(departure, req.Departure.IsNow),
		EstimatedDurationMinutes: int(details.TotalDuration.Minutes()),
		EstimatedDistanceMeters:  details.DistanceMeters,
		RoutePolyline:            details.Polyline,
		Steps:                    details.Steps,
		// 地図側が表示範囲を経路全体に合わせられるよう両端点を含む境界ボックスを付ける
		RouteBounds: repoImpl.CreateBoundingBoxPolygon(
			model.LocationFromLatLng(req.Start.Coordinates),
			model.LocationFromLatLng(req.End.Coordinates),
		),
	}

	if u.tripPlanRepo == nil {
		// キャッシュ未設定の環境ではIDだけ払い出して返す
		plan.PlanID = fmt.Sprintf("trip_%s", uuid.New().String())
		return plan, nil
	}

	saved, err := u.tripPlanRepo.SaveTripPlan(ctx, plan, tripPlanTTLHours)
	if err != nil {
		return nil, fmt.Errorf("計画済み経路の保存に失敗: %w", err)
	}

	log.Printf("🎉 経路計画完了 (ID: %s, %d分)", saved.PlanID, saved.EstimatedDurationMinutes)
	return saved, nil
}

// GetTripPlan は指定されたplan_idの計画済み経路を取得する
func (u *tripPlanUseCaseImpl) GetTripPlan(ctx context.Context, planID string) (*model.TripPlan, error) {
	if u.tripPlanRepo == nil {
		return nil, fmt.Errorf("計画済み経路のキャッシュが設定されていません")
	}

	plan, err := u.tripPlanRepo.GetTripPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("計画済み経路の取得に失敗: %w", err)
	}

	return plan, nil
}
