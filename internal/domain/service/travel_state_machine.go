package service

import (
	"time"

	"CampusNav-App/internal/domain/helper"
	"CampusNav-App/internal/domain/model"
)

// TravelStateMachine はマップ画面の状態遷移を担う純粋な遷移関数の集合。
// 全てのメソッドは状態を値で受け取り、新しい状態を返す。描画やI/Oには依存しないため
// 実際のマップレンダラーなしでテストできる。
//
// 非同期処理（現在地取得・検索候補取得）の完了は世代カウンタ付きのイベントとして
// 適用され、発行時と世代が一致しない古い応答は破棄される。
type TravelStateMachine struct{}

// NewTravelStateMachine 新しいTravelStateMachineインスタンスを作成
func NewTravelStateMachine() *TravelStateMachine {
	return &TravelStateMachine{}
}

// StartPlanning 検索バーのタップでプランニング状態へ遷移する。
// 出発地を埋めるための現在地取得が予約される（LocationFetchGenが進む）。
func (m *TravelStateMachine) StartPlanning(s model.MapScreenState) model.MapScreenState {
	if s.TravelState != model.TravelStateNone {
		return s
	}
	s.TravelState = model.TravelStatePlanning
	s.EndLocationFocused = true
	s.TappedBuildingID = ""
	s.ShowBuildingInfo = false
	s.LocationFetchPending = true
	s.LocationFetchGen++
	s.StartDisplayText = model.FetchingLocationPlaceholder
	return s
}

// TapBuilding 建物タップの遷移。通常状態では情報パネルを開き、
// プランニング中・移動中はフォーカス中の端点にその建物を設定する。
func (m *TravelStateMachine) TapBuilding(s model.MapScreenState, b *model.Building) model.MapScreenState {
	if b == nil {
		return s
	}
	if s.TravelState == model.TravelStateNone {
		if s.TappedBuildingID != b.ID {
			// フォーカス建物が変わったので屋内情報をリセット
			s.Indoor = nil
		}
		s.TappedBuildingID = b.ID
		s.ShowBuildingInfo = true
		return s
	}
	return m.setFocusedEndpoint(s, model.NewBuildingMarker(b))
}

// TapPOI POIタップの遷移。通常状態ではそのPOIを目的地としてプランニングを開始し、
// プランニング中・移動中はフォーカス中の端点に設定する。
func (m *TravelStateMachine) TapPOI(s model.MapScreenState, name string, coordinates model.LatLng) model.MapScreenState {
	marker := model.NewPOIMarker(name, coordinates)
	if s.TravelState == model.TravelStateNone {
		s = m.StartPlanning(s)
		s.End = marker
		s.EndDisplayText = marker.DisplayName
		s.EndResults = nil
		return s
	}
	return m.setFocusedEndpoint(s, marker)
}

// SelectSearchResult 検索候補の選択を反映する。通常状態では選択を目的地として
// プランニングを開始する。候補リストは選択と同時に破棄される。
func (m *TravelStateMachine) SelectSearchResult(s model.MapScreenState, result model.SearchResult) model.MapScreenState {
	marker := result.ToMarkerLocation()
	if s.TravelState == model.TravelStateNone {
		s = m.StartPlanning(s)
		s.End = marker
		s.EndDisplayText = marker.DisplayName
		s.EndResults = nil
		return s
	}
	return m.setFocusedEndpoint(s, marker)
}

// setFocusedEndpoint フォーカス中の端点を設定し、その側の候補リストを破棄する
func (m *TravelStateMachine) setFocusedEndpoint(s model.MapScreenState, marker *model.MarkerLocation) model.MapScreenState {
	if s.EndLocationFocused {
		s.End = marker
		s.EndDisplayText = marker.DisplayName
		s.EndResults = nil
	} else {
		s.Start = marker
		s.StartDisplayText = marker.DisplayName
		s.StartResults = nil
		// ユーザーが出発地を手動で設定したので取得中の現在地は不要
		s.LocationFetchPending = false
	}
	return s
}

// CloseBuildingInfo 情報パネルを閉じる。直前の状態に関わらずタップ建物と表示フラグを両方クリアする。
func (m *TravelStateMachine) CloseBuildingInfo(s model.MapScreenState) model.MapScreenState {
	s.TappedBuildingID = ""
	s.ShowBuildingInfo = false
	return s
}

// FocusEndpoint 編集対象の端点を切り替える。blurされた側の候補リストは破棄し、
// 表示文字列は確定済み端点の名前に同期し直す。
func (m *TravelStateMachine) FocusEndpoint(s model.MapScreenState, endFocused bool) model.MapScreenState {
	if s.EndLocationFocused == endFocused {
		return s
	}
	if s.EndLocationFocused {
		s.EndResults = nil
		s.EndDisplayText = displayTextFor(s.End)
	} else {
		s.StartResults = nil
		s.StartDisplayText = startDisplayTextFor(&s)
	}
	s.EndLocationFocused = endFocused
	return s
}

// ChangeSearchText オムニボックスへのキーストロークを反映する。
// フォーカス中の表示文字列だけを更新し、確定済み端点には触れない。
// SearchFetchGenが進むため、以前のキーストロークで発行された検索の応答は破棄される。
func (m *TravelStateMachine) ChangeSearchText(s model.MapScreenState, text string) model.MapScreenState {
	if s.TravelState == model.TravelStateNone {
		return s
	}
	s.SearchFetchGen++
	if s.EndLocationFocused {
		s.EndDisplayText = text
		if text == "" {
			s.EndResults = nil
		}
	} else {
		s.StartDisplayText = text
		if text == "" {
			s.StartResults = nil
		}
	}
	return s
}

// ApplySearchResults 非同期の検索応答を適用する。世代が合わない古い応答は破棄する。
func (m *TravelStateMachine) ApplySearchResults(s model.MapScreenState, gen int, forEnd bool, results []model.SearchResult) model.MapScreenState {
	if gen != s.SearchFetchGen {
		return s
	}
	if forEnd {
		s.EndResults = results
	} else {
		s.StartResults = results
	}
	return s
}

// ResolveStartLocation 現在地取得の完了を適用する。世代が合わない、
// または取得が既にキャンセルされている場合は破棄する。
func (m *TravelStateMachine) ResolveStartLocation(s model.MapScreenState, gen int, marker *model.MarkerLocation) model.MapScreenState {
	if !s.LocationFetchPending || gen != s.LocationFetchGen || marker == nil {
		return s
	}
	s.LocationFetchPending = false
	s.Start = marker
	s.StartDisplayText = marker.DisplayName
	return s
}

// FailStartLocation 現在地取得の失敗を適用する。プレースホルダを消すだけで
// エラーは表面化させない。
func (m *TravelStateMachine) FailStartLocation(s model.MapScreenState, gen int) model.MapScreenState {
	if !s.LocationFetchPending || gen != s.LocationFetchGen {
		return s
	}
	s.LocationFetchPending = false
	if s.StartDisplayText == model.FetchingLocationPlaceholder {
		s.StartDisplayText = ""
	}
	return s
}

// PressBack プランニングを中断して通常状態へ戻る。両端点と候補リストをクリアし、
// フォーカスを目的地側へ戻す。世代カウンタが進むため、飛行中の非同期応答は全て破棄される。
func (m *TravelStateMachine) PressBack(s model.MapScreenState) model.MapScreenState {
	s.TravelState = model.TravelStateNone
	s.Start = nil
	s.End = nil
	s.StartDisplayText = ""
	s.EndDisplayText = ""
	s.StartResults = nil
	s.EndResults = nil
	s.EndLocationFocused = true
	s.LocationFetchPending = false
	s.LocationFetchGen++
	s.SearchFetchGen++
	return s
}

// ConfirmTravel 両端点が確定している場合のみ移動中状態へ遷移する。
// 実際の経路計算は外部プランナーに委譲される。
func (m *TravelStateMachine) ConfirmTravel(s model.MapScreenState) model.MapScreenState {
	if !s.CanStartTravel() {
		return s
	}
	s.TravelState = model.TravelStateTravelling
	return s
}

// PickDepartureTime 出発時刻を選択する。nil（キャンセル）の場合は「今すぐ」に戻す。
// 繰り返しnilを渡しても状態は変わらない。
func (m *TravelStateMachine) PickDepartureTime(s model.MapScreenState, picked *time.Time) model.MapScreenState {
	if picked == nil {
		s.Departure = model.DepartureNow()
		return s
	}
	s.Departure = model.DepartureTime{Time: *picked, IsNow: false}
	return s
}

// SelectTravelMode 移動手段を選択する。未知の手段は無視する。
func (m *TravelStateMachine) SelectTravelMode(s model.MapScreenState, mode string) model.MapScreenState {
	if !model.IsValidTravelMode(mode) {
		return s
	}
	s.TravelMode = mode
	return s
}

// ChangeRegion ユーザーのパン・ズームによるビューポート変更を反映する
func (m *TravelStateMachine) ChangeRegion(s model.MapScreenState, region model.Region) model.MapScreenState {
	s.Region = region
	s.ZoomLevel = helper.GetZoomLevelByLatDelta(region.LatitudeDelta)
	return s
}

// FocusIndoorBuilding マッププロバイダの屋内建物イベントを反映する。
// 現在フロアがフロア一覧に含まれない場合は先頭フロアに正規化する。
func (m *TravelStateMachine) FocusIndoorBuilding(s model.MapScreenState, indoor *model.IndoorInformation) model.MapScreenState {
	if indoor == nil || len(indoor.Floors) == 0 {
		s.Indoor = nil
		return s
	}
	if !indoor.HasFloor(indoor.CurrentFloor) {
		indoor.CurrentFloor = indoor.Floors[0].Index
	}
	s.Indoor = indoor
	return s
}

// SelectFloor 屋内フロアを選択する。フロア一覧にないIndexは無視する。
func (m *TravelStateMachine) SelectFloor(s model.MapScreenState, floorIndex int) model.MapScreenState {
	if !s.Indoor.HasFloor(floorIndex) {
		return s
	}
	indoor := *s.Indoor
	indoor.CurrentFloor = floorIndex
	s.Indoor = &indoor
	return s
}

// displayTextFor 確定済み端点から表示文字列を導出する
func displayTextFor(marker *model.MarkerLocation) string {
	if marker == nil {
		return ""
	}
	return marker.DisplayName
}

// startDisplayTextFor 出発地側はプレースホルダが有効な場合に維持する
func startDisplayTextFor(s *model.MapScreenState) string {
	if s.Start == nil && s.LocationFetchPending {
		return model.FetchingLocationPlaceholder
	}
	return displayTextFor(s.Start)
}
