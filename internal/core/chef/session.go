package chef

import (
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
)

// Screen 画面の状態。遷移はユーザー操作とパイプラインの結果だけで決まる
type Screen string

const (
	ScreenStart          Screen = "start"
	ScreenAnalyzed       Screen = "analyzed"
	ScreenAnalyzedRescue Screen = "analyzed_rescue"
	ScreenDetail         Screen = "detail"
	ScreenFarewell       Screen = "farewell"
	ScreenFarewellRescue Screen = "farewell_rescue"
)

// SessionState 1 回の相談サイクルの状態。1 ユーザーが独占し、共有されない
type SessionState struct {
	ID     string `json:"id"`
	Screen Screen `json:"screen"`

	// 入力
	RawInput    string   `json:"raw_input"`
	Temperature string   `json:"temperature"`
	Tools       []string `json:"tools"`

	// 解析結果
	ResolvedIngredients []ResolvedIngredient `json:"resolved_ingredients"`
	Categories          []string             `json:"categories"`
	NormalizedNames     []string             `json:"normalized_names"`

	// 選ばれた料理
	SelectedRecipe      *catalog.RecipeEntry `json:"selected_recipe,omitempty"`
	DisplayName         string               `json:"display_name"`
	MatchRate           int                  `json:"match_rate"`
	Toolless            bool                 `json:"toolless"`
	MicrowaveSubstitute bool                 `json:"microwave_substitute"`
	Substitutions       []Substitution       `json:"substitutions,omitempty"`

	// 直近に出した料理名。連続で同じ提案をしないための除外リスト
	LastRecipes []string `json:"last_recipes"`

	// セリフ（生成失敗時はテンプレートで埋まる）
	AnalysisMessage string `json:"analysis_message"`
	CookingMessage  string `json:"cooking_message"`
	FarewellMessage string `json:"farewell_message"`

	// 詳細画面の付加情報
	GreetingMessage string `json:"greeting_message"`
	SeasoningHint   string `json:"seasoning_hint"`
	EatingHint      string `json:"eating_hint"`

	// 救済パス
	ShoppingAdvice string `json:"shopping_advice"`
	GenerateFailed bool   `json:"generate_failed"` // 正規化の生成呼び出し自体が失敗した

	// お見送り画面
	ShareText string `json:"share_text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession 初期状態のセッションを作成する
func NewSession(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:          id,
		Screen:      ScreenStart,
		Temperature: TemperatureAny,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Reset トップ画面に戻す。入力テキストと除外リストだけは持ち越す
func (s *SessionState) Reset() {
	raw := s.RawInput
	last := s.LastRecipes

	*s = SessionState{
		ID:          s.ID,
		Screen:      ScreenStart,
		RawInput:    raw,
		Temperature: TemperatureAny,
		LastRecipes: last,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   time.Now(),
	}
}

// Touch 更新時刻を進める
func (s *SessionState) Touch() {
	s.UpdatedAt = time.Now()
}
