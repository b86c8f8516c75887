package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"CampusNav-App/internal/domain/helper"
	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
	"CampusNav-App/internal/domain/service"
)

// asyncFetchTimeout 非同期の現在地取得・検索取得に与えるタイムアウト
const asyncFetchTimeout = 10 * time.Second

// MapSessionUseCase はマップ画面セッションのライフサイクルとイベント処理を担う。
// セッション状態は画面の生存期間に限定されたインメモリ保持で、永続化しない。
type MapSessionUseCase interface {
	// CreateSession は初期状態の新しいセッションを作成してIDを返す
	CreateSession(ctx context.Context) (string, *model.MapScreenState, error)

	// GetState は指定されたセッションの現在状態を返す
	GetState(ctx context.Context, sessionID string) (*model.MapScreenState, error)

	// DispatchEvent はイベントを状態遷移に適用し、必要な非同期取得を開始する
	DispatchEvent(ctx context.Context, sessionID string, event *model.MapEvent) (*model.MapScreenState, error)

	// ConfirmTravel は両端点確定済みのセッションを移動中状態へ遷移させ、経路計画を返す
	ConfirmTravel(ctx context.Context, sessionID string) (*model.TripPlan, *model.MapScreenState, error)
}

// mapSession 1画面ぶんの状態とそれを守るロック
type mapSession struct {
	id    string
	mu    sync.Mutex
	state model.MapScreenState
}

// mapSessionUseCaseImpl はMapSessionUseCaseの実装
type mapSessionUseCaseImpl struct {
	machine          *service.TravelStateMachine
	resolver         *service.LocationResolver
	searchService    service.SearchService
	locationProvider repository.CurrentLocationProvider
	buildingsRepo    repository.BuildingsRepository
	tripPlanUseCase  TripPlanUseCase
	initialRegion    model.Region

	mu       sync.RWMutex
	sessions map[string]*mapSession
}

// NewMapSessionUseCase 新しいMapSessionUseCaseインスタンスを作成
func NewMapSessionUseCase(
	resolver *service.LocationResolver,
	searchService service.SearchService,
	locationProvider repository.CurrentLocationProvider,
	buildingsRepo repository.BuildingsRepository,
	tripPlanUseCase TripPlanUseCase,
	initialRegion model.Region,
) MapSessionUseCase {
	return &mapSessionUseCaseImpl{
		machine:          service.NewTravelStateMachine(),
		resolver:         resolver,
		searchService:    searchService,
		locationProvider: locationProvider,
		buildingsRepo:    buildingsRepo,
		tripPlanUseCase:  tripPlanUseCase,
		initialRegion:    initialRegion,
		sessions:         make(map[string]*mapSession),
	}
}

// CreateSession は初期状態の新しいセッションを作成してIDを返す
func (u *mapSessionUseCaseImpl) CreateSession(ctx context.Context) (string, *model.MapScreenState, error) {
	sessionID := uuid.New().String()
	zoom := helper.GetZoomLevelByLatDelta(u.initialRegion.LatitudeDelta)

	session := &mapSession{
		id:    sessionID,
		state: model.NewMapScreenState(u.initialRegion, zoom),
	}

	u.mu.Lock()
	u.sessions[sessionID] = session
	u.mu.Unlock()

	log.Printf("🗺️ マップセッション作成 (ID: %s)", sessionID)
	state := session.state
	return sessionID, &state, nil
}

// GetState は指定されたセッションの現在状態を返す
func (u *mapSessionUseCaseImpl) GetState(ctx context.Context, sessionID string) (*model.MapScreenState, error) {
	session, err := u.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	state := session.state
	return &state, nil
}

// DispatchEvent はイベントを状態遷移に適用し、必要な非同期取得を開始する
func (u *mapSessionUseCaseImpl) DispatchEvent(ctx context.Context, sessionID string, event *model.MapEvent) (*model.MapScreenState, error) {
	session, err := u.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	before := session.state
	after, err := u.applyEvent(ctx, before, event)
	if err != nil {
		return nil, err
	}
	session.state = after

	// 現在地取得が新たに予約された場合は非同期で解決する
	if after.LocationFetchPending && after.LocationFetchGen != before.LocationFetchGen {
		go u.fetchCurrentLocation(session, after.LocationFetchGen)
	}

	// キーストロークで検索世代が進んだ場合は非同期で候補を取得する
	if event.Type == model.EventChangeText && after.SearchFetchGen != before.SearchFetchGen {
		text := ""
		if event.Text != nil {
			text = *event.Text
		}
		if text != "" {
			go u.fetchSearchResults(session, after.SearchFetchGen, after.EndLocationFocused, text, after.Region.Center())
		}
	}

	state := session.state
	return &state, nil
}

// applyEvent イベント種別ごとに純粋な遷移関数を呼び出す
func (u *mapSessionUseCaseImpl) applyEvent(ctx context.Context, s model.MapScreenState, event *model.MapEvent) (model.MapScreenState, error) {
	switch event.Type {
	case model.EventStartPlanning:
		return u.machine.StartPlanning(s), nil

	case model.EventTapBuilding:
		building, err := u.buildingsRepo.GetByID(ctx, event.BuildingID)
		if err != nil {
			return s, fmt.Errorf("建物の解決に失敗: %w", err)
		}
		return u.machine.TapBuilding(s, building), nil

	case model.EventTapPOI:
		if event.Coordinates == nil {
			return s, fmt.Errorf("tap_poiイベントには座標が必要です")
		}
		return u.machine.TapPOI(s, event.POIName, *event.Coordinates), nil

	case model.EventSelectResult:
		if event.Result == nil {
			return s, fmt.Errorf("select_resultイベントには候補が必要です")
		}
		return u.machine.SelectSearchResult(s, *event.Result), nil

	case model.EventCloseBuildingInfo:
		return u.machine.CloseBuildingInfo(s), nil

	case model.EventFocusEndpoint:
		if event.EndFocused == nil {
			return s, fmt.Errorf("focus_endpointイベントにはend_focusedが必要です")
		}
		return u.machine.FocusEndpoint(s, *event.EndFocused), nil

	case model.EventChangeText:
		if event.Text == nil {
			return s, fmt.Errorf("change_textイベントにはtextが必要です")
		}
		return u.machine.ChangeSearchText(s, *event.Text), nil

	case model.EventPressBack:
		return u.machine.PressBack(s), nil

	case model.EventPickTime:
		return u.machine.PickDepartureTime(s, event.Time), nil

	case model.EventSelectMode:
		return u.machine.SelectTravelMode(s, event.TravelMode), nil

	case model.EventRegionChange:
		if event.Region == nil {
			return s, fmt.Errorf("region_changeイベントにはregionが必要です")
		}
		return u.machine.ChangeRegion(s, *event.Region), nil

	case model.EventIndoorFocus:
		return u.machine.FocusIndoorBuilding(s, event.Indoor), nil

	case model.EventSelectFloor:
		if event.FloorIndex == nil {
			return s, fmt.Errorf("select_floorイベントにはfloor_indexが必要です")
		}
		return u.machine.SelectFloor(s, *event.FloorIndex), nil
	}

	return s, fmt.Errorf("対応していないイベント種別です: %s", event.Type)
}

// ConfirmTravel は両端点確定済みのセッションを移動中状態へ遷移させ、経路計画を返す
func (u *mapSessionUseCaseImpl) ConfirmTravel(ctx context.Context, sessionID string) (*model.TripPlan, *model.MapScreenState, error) {
	session, err := u.getSession(sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.state.CanStartTravel() {
		return nil, nil, fmt.Errorf("両端点が確定していないため移動を開始できません")
	}

	req := &model.TripPlanRequest{
		Start:      session.state.Start,
		End:        session.state.End,
		TravelMode: session.state.TravelMode,
		Departure:  session.state.Departure,
		SessionID:  sessionID,
	}

	plan, err := u.tripPlanUseCase.PlanTrip(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("経路計画に失敗: %w", err)
	}

	session.state = u.machine.ConfirmTravel(session.state)
	state := session.state
	return plan, &state, nil
}

// getSession セッションを取得する
func (u *mapSessionUseCaseImpl) getSession(sessionID string) (*mapSession, error) {
	u.mu.RLock()
	session, ok := u.sessions[sessionID]
	u.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("セッションID %s が見つかりません", sessionID)
	}
	return session, nil
}

// fetchCurrentLocation 現在地を非同期で解決し、世代チェック付きで状態へ適用する
func (u *mapSessionUseCaseImpl) fetchCurrentLocation(session *mapSession, gen int) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncFetchTimeout)
	defer cancel()

	if u.locationProvider == nil {
		u.applyLocationFailure(session, gen)
		return
	}

	coordinate, err := u.locationProvider.GetCurrentLocation(ctx)
	if err != nil {
		log.Printf("⚠️ 現在地の取得に失敗: %v", err)
		u.applyLocationFailure(session, gen)
		return
	}

	// 建物ポリゴン内なら建物を出発地にする（最初に一致した建物が勝つ）
	marker := u.resolver.Resolve(ctx, coordinate)
	if marker.IsBuilding() {
		log.Printf("✅ 現在地を建物に解決 (ID: %s)", marker.BuildingID)
	}

	session.mu.Lock()
	session.state = u.machine.ResolveStartLocation(session.state, gen, marker)
	session.mu.Unlock()
}

// applyLocationFailure 現在地取得の失敗を状態へ適用する
func (u *mapSessionUseCaseImpl) applyLocationFailure(session *mapSession, gen int) {
	session.mu.Lock()
	session.state = u.machine.FailStartLocation(session.state, gen)
	session.mu.Unlock()
}

// fetchSearchResults 検索候補を非同期で取得し、世代チェック付きで状態へ適用する
func (u *mapSessionUseCaseImpl) fetchSearchResults(session *mapSession, gen int, forEnd bool, text string, near model.LatLng) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncFetchTimeout)
	defer cancel()

	results, err := u.searchService.Search(ctx, text, near)
	if err != nil {
		// 候補なしとして扱う（境界でエラーを飲み込む設計）
		log.Printf("⚠️ 検索候補の取得に失敗: %v", err)
		return
	}

	session.mu.Lock()
	session.state = u.machine.ApplySearchResults(session.state, gen, forEnd, results)
	session.mu.Unlock()
}
