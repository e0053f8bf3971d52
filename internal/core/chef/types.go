package chef

import (
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
)

// 検索ポリシーはコレクション側ではなくここで持つ
const (
	// MatchCutoff 食材マッチの距離カットオフ。これを超えたヒットは捨てる
	MatchCutoff = 0.35

	// recipeOversample 料理検索で先に多めに取る件数。後段のフィルタで削られるぶんの保険
	recipeOversample = 20

	// DefaultTopN 料理候補の返却上限
	DefaultTopN = 5

	// selectionPool 上位何件からランダムに 1 件選ぶか
	selectionPool = 3
)

// 温度の好み
const (
	TemperatureHotOnly = "あったかいのがいい"
	TemperatureAny     = "どっちでもいい"
)

// 道具
const (
	ToolStove     = "コンロ"
	ToolMicrowave = "電子レンジ"
)

// コンロが要る調理法。これ以外（和える・なし等）は火を使わない
var stoveMethods = map[string]bool{
	"炒め":  true,
	"炒め煮": true,
	"煮る":  true,
	"煮込み": true,
	"焼き":  true,
	"茹でる": true,
	"炊く":  true,
}

// cookingMethodNone 加熱不要を表す調理法
const cookingMethodNone = "なし"

// ResolvedIngredient 類似検索で確定した食材
type ResolvedIngredient struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	RawEdible  bool     `json:"raw_edible"`
	Distance   float64  `json:"distance"`
	Token      string   `json:"token"` // 入力トークン
}

// RecipeCandidate ランキング済みの料理候補
type RecipeCandidate struct {
	Recipe              *catalog.RecipeEntry `json:"recipe"`
	MatchCount          int                  `json:"match_count"`
	Distance            float64              `json:"distance"`
	Toolless            bool                 `json:"toolless"`             // コンロもレンジもない＋加熱必要
	MicrowaveSubstitute bool                 `json:"microwave_substitute"` // レンジでコンロを代用
}

// Substitution 本物の食材 → ユーザーの手持ち食材への割り当て
type Substitution struct {
	Real        string `json:"real"`
	Display     string `json:"display"`
	Substituted bool   `json:"substituted"`
}

// orderedSet 追加順を保つ文字列集合。カテゴリ集約や代替候補プールに使う
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// Add 未登録なら末尾に追加する
func (s *orderedSet) Add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// Has 登録済みかどうか
func (s *orderedSet) Has(v string) bool {
	_, ok := s.seen[v]
	return ok
}

// Items 追加順のスライス
func (s *orderedSet) Items() []string {
	return s.items
}

func (s *orderedSet) Len() int {
	return len(s.items)
}
