package repository

import (
	"context"
	"time"

	"CampusNav-App/internal/domain/model"
)

// DirectionsProvider は外部の経路計画コラボレーターへのインターフェース。
// 実際の経路計算はここでは行わず、移動手段と出発時刻を渡すだけ。
type DirectionsProvider interface {
	GetRoute(ctx context.Context, origin, destination model.LatLng, travelMode string, departure time.Time) (*model.RouteDetails, error)
}

// PlacesSearchProvider はオートコンプリート検索の外部コラボレーターへのインターフェース。
// キーストロークごとに呼ばれ、非同期で候補リストを返す。
type PlacesSearchProvider interface {
	SearchPlaces(ctx context.Context, query string, near model.LatLng) ([]model.SearchResult, error)
}

// CurrentLocationProvider はデバイス現在地の非同期解決を行うコラボレーターへのインターフェース
type CurrentLocationProvider interface {
	GetCurrentLocation(ctx context.Context) (model.LatLng, error)
}
