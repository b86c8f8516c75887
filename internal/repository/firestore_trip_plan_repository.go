package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"CampusNav-App/internal/domain/model"
)

// FirestoreTripPlanRepository Firestoreを使用した計画済み経路キャッシュリポジトリ
type FirestoreTripPlanRepository struct {
	client *firestore.Client
}

// NewFirestoreTripPlanRepository 新しいFirestoreTripPlanRepositoryインスタンスを作成
func NewFirestoreTripPlanRepository(client *firestore.Client) *FirestoreTripPlanRepository {
	return &FirestoreTripPlanRepository{
		client: client,
	}
}

// SaveTripPlan は計画済み経路をFirestoreに保存し、plan_idを生成して返す
func (r *FirestoreTripPlanRepository) SaveTripPlan(ctx context.Context, plan *model.TripPlan, ttlHours int) (*model.TripPlan, error) {
	planID := fmt.Sprintf("trip_%s", uuid.New().String())

	saved := *plan
	saved.PlanID = planID
	firestoreData := saved.ToFirestoreTripPlan(ttlHours)

	_, err := r.client.Collection("tripPlans").Doc(planID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save trip plan %s: %v", planID, err)
		return nil, fmt.Errorf("計画済み経路の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Trip plan saved: %s (expires in %d hours)", planID, ttlHours)
	return &saved, nil
}

// GetTripPlan は指定されたplan_idの計画済み経路をFirestoreから取得する
func (r *FirestoreTripPlanRepository) GetTripPlan(ctx context.Context, planID string) (*model.TripPlan, error) {
	doc, err := r.client.Collection("tripPlans").Doc(planID).Get(ctx)
	if err != nil {
		// Firestoreのエラータイプをチェック
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("計画済み経路が見つかりません（有効期限切れまたは無効なID）: %s", planID)
		}
		return nil, fmt.Errorf("計画済み経路の取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreTripPlan
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	plan := firestoreData.ToTripPlan(planID)

	log.Printf("✅ Trip plan retrieved: %s", planID)
	return plan, nil
}
