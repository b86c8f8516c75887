package model

import "time"

// RouteStep 経路中の1区間の案内
type RouteStep struct {
	Instruction    string `json:"instruction"`     // 案内文（例: "正門を出て左折"）
	DistanceMeters int    `json:"distance_meters"` // 区間の距離
	DurationSec    int    `json:"duration_sec"`    // 区間の所要時間
}

// RouteDetails 経路検索プロバイダが返す経路の詳細
type RouteDetails struct {
	TotalDuration  time.Duration
	DistanceMeters int
	Polyline       string
	Steps          []RouteStep
}

// TripPlanRequest 外部プランナーへの経路計画リクエスト
type TripPlanRequest struct {
	Start      *MarkerLocation `json:"start" validate:"required"`
	End        *MarkerLocation `json:"end" validate:"required"`
	TravelMode string          `json:"travel_mode" validate:"required"` // TravelMode定数のいずれか
	Departure  DepartureTime   `json:"departure"`
	SessionID  string          `json:"session_id,omitempty"` // セッション経由の場合のみ
}

// TripPlan 計画済みの経路。外部プランナーの応答をキャッシュして返す。
type TripPlan struct {
	PlanID                   string `json:"plan_id"`                    // 一時ID
	StartName                string `json:"start_name"`                 // 出発地の表示名
	EndName                  string `json:"end_name"`                   // 目的地の表示名
	TravelMode               string `json:"travel_mode"`                // 移動手段
	DepartureDisplay         string `json:"departure_display"`          // 出発時刻の表示文字列
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"` // 予想時間
	EstimatedDistanceMeters  int    `json:"estimated_distance_meters"`  // 予想距離
	RoutePolyline            string `json:"route_polyline"`             // ルートポリライン

	Steps       []RouteStep `json:"steps,omitempty"`        // 区間ごとの案内
	RouteBounds *GeoPolygon `json:"route_bounds,omitempty"` // 経路全体を含む境界ボックス（地図の表示範囲調整用）
}

// FirestoreTripPlan Firestoreに保存する計画済み経路（TTL付き）
type FirestoreTripPlan struct {
	StartName                string      `firestore:"start_name"`
	EndName                  string      `firestore:"end_name"`
	TravelMode               string      `firestore:"travel_mode"`
	DepartureDisplay         string      `firestore:"departure_display"`
	EstimatedDurationMinutes int         `firestore:"estimated_duration_minutes"`
	EstimatedDistanceMeters  int         `firestore:"estimated_distance_meters"`
	RoutePolyline            string      `firestore:"route_polyline"`
	Steps                    []RouteStep `firestore:"steps"`
	RouteBounds              *GeoPolygon `firestore:"route_bounds"`
	ExpireAt                 time.Time   `firestore:"expireAt"`
}

// ToFirestoreTripPlan TripPlanをFirestore保存用の構造体に変換
func (tp *TripPlan) ToFirestoreTripPlan(ttlHours int) *FirestoreTripPlan {
	return &FirestoreTripPlan{
		StartName:                tp.StartName,
		EndName:                  tp.EndName,
		TravelMode:               tp.TravelMode,
		DepartureDisplay:         tp.DepartureDisplay,
		EstimatedDurationMinutes: tp.EstimatedDurationMinutes,
		EstimatedDistanceMeters:  tp.EstimatedDistanceMeters,
		RoutePolyline:            tp.RoutePolyline,
		Steps:                    tp.Steps,
		RouteBounds:              tp.RouteBounds,
		ExpireAt:                 time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToTripPlan Firestoreの構造体からTripPlanに変換
func (ftp *FirestoreTripPlan) ToTripPlan(planID string) *TripPlan {
	return &TripPlan{
		PlanID:                   planID,
		StartName:                ftp.StartName,
		EndName:                  ftp.EndName,
		TravelMode:               ftp.TravelMode,
		DepartureDisplay:         ftp.DepartureDisplay,
		EstimatedDurationMinutes: ftp.EstimatedDurationMinutes,
		EstimatedDistanceMeters:  ftp.EstimatedDistanceMeters,
		RoutePolyline:            ftp.RoutePolyline,
		Steps:                    ftp.Steps,
		RouteBounds:              ftp.RouteBounds,
	}
}
