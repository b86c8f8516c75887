package service

import (
	"context"
	"log"

	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
	repoImpl "CampusNav-App/internal/repository"
)

// LocationResolver は生の座標を経路端点に解決するドメインサービス。
// 座標がいずれかの建物ポリゴンの内側にある場合はその建物を端点とし
// （最初に一致した建物が勝つ）、どの建物にも含まれない場合は
// 座標を持つ汎用の現在地ピンにフォールバックする。
type LocationResolver struct {
	buildingsRepo repository.BuildingsRepository
}

// NewLocationResolver 新しいLocationResolverインスタンスを作成
func NewLocationResolver(buildingsRepo repository.BuildingsRepository) *LocationResolver {
	return &LocationResolver{
		buildingsRepo: buildingsRepo,
	}
}

// Resolve 座標を端点に解決する。レジストリが読めない場合も現在地ピンへフォールバックする。
func (r *LocationResolver) Resolve(ctx context.Context, coordinate model.LatLng) *model.MarkerLocation {
	buildings, err := r.buildingsRepo.GetAll(ctx)
	if err != nil {
		log.Printf("⚠️ 建物レジストリの取得に失敗、現在地ピンを使用: %v", err)
		return model.NewCurrentLocationMarker(coordinate)
	}

	for i := range buildings {
		b := &buildings[i]
		if b.BoundingBox == nil {
			continue
		}
		if repoImpl.PointInPolygon(coordinate, b.BoundingBox) {
			return model.NewBuildingMarker(b)
		}
	}

	return model.NewCurrentLocationMarker(coordinate)
}
