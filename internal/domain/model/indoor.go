package model

// Floor 屋内マップの1フロアを表す
type Floor struct {
	Index int    `json:"index"` // マッププロバイダが割り当てるフロア番号
	Name  string `json:"name"`  // 表示名（例: "1F", "B1"）
}

// IndoorInformation マッププロバイダの屋内建物イベントから導出されるフロア情報。
// フォーカス中の建物が変わるたびにリセットされる。
type IndoorInformation struct {
	BuildingID   string  `json:"building_id"`   // フォーカス中の建物ID
	CurrentFloor int     `json:"current_floor"` // 現在のフロアIndex（floors内のいずれか）
	Floors       []Floor `json:"floors"`        // 選択可能なフロア一覧
}

// HasFloor 指定したfloorIndexがフロア一覧に含まれているかチェック
func (i *IndoorInformation) HasFloor(index int) bool {
	if i == nil {
		return false
	}
	for _, f := range i.Floors {
		if f.Index == index {
			return true
		}
	}
	return false
}
