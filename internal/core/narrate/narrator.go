package narrate

import (
	"context"
	"fmt"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// 生成ごとの temperature。解析はやや固め、セリフは遊ばせる
const (
	normalizeTemperature = 0.7
	cookingTemperature   = 0.8
	farewellTemperature  = 0.8

	normalizeMaxTokens = 300
	cookingMaxTokens   = 300
	farewellMaxTokens  = 200
)

// Narrator chef.Narrator 実装。失敗は全部ここで握りつぶして ok=false にする
type Narrator struct {
	gen Generator
}

// NewNarrator Narrator を作成する
func NewNarrator(gen Generator) *Narrator {
	return &Narrator{gen: gen}
}

// normalizePayload 正規化プロンプトの期待する JSON
type normalizePayload struct {
	Ingredients []string `json:"ingredients"`
	Message     string   `json:"message"`
}

// NormalizeIngredients 入力テキストを解析して正規化食材リストとセリフを返す
// 生成呼び出しの失敗は Failed=true。JSON が見つからないだけなら空の成功
func (n *Narrator) NormalizeIngredients(ctx context.Context, input string) chef.NormalizeResult {
	prompt := fmt.Sprintf(normalizePromptTemplate, input)

	raw, err := n.gen.Generate(ctx, prompt, normalizeMaxTokens, normalizeTemperature)
	if err != nil {
		common.LogWarn("食材正規化の生成失敗", zap.Error(err))
		return chef.NormalizeResult{Failed: true}
	}

	jsonPart := common.ExtractJSONObject(raw)
	if jsonPart == "" {
		common.LogWarn("正規化応答に JSON が見つからない", zap.String("llm_response", raw))
		return chef.NormalizeResult{}
	}

	var payload normalizePayload
	if err := common.ParseJSON(jsonPart, &payload); err != nil {
		// キーがクォートされていない出力が時々来るので補修して再挑戦
		if err2 := common.ParseJSON(common.QuoteJSONKeys(jsonPart), &payload); err2 != nil {
			common.LogWarn("正規化応答の解析失敗", zap.Error(err), zap.String("llm_response", raw))
			return chef.NormalizeResult{Failed: true}
		}
	}

	return chef.NormalizeResult{
		Ingredients: payload.Ingredients,
		Message:     payload.Message,
	}
}

// CookingSteps 置換済み手順をもとに調理手順セリフを生成する
func (n *Narrator) CookingSteps(ctx context.Context, recipe *catalog.RecipeEntry, replacedSteps []string) (string, bool) {
	steps, err := common.ToJSON(replacedSteps)
	if err != nil {
		return "", false
	}

	prompt := fmt.Sprintf(cookingPromptTemplate, recipe.Name, recipe.Genre, steps, recipe.CookingMethod)

	message, err := n.gen.Generate(ctx, prompt, cookingMaxTokens, cookingTemperature)
	if err != nil {
		common.LogWarn("調理手順セリフの生成失敗", zap.Error(err), zap.String("recipe", recipe.Name))
		return "", false
	}
	return message, true
}

// Farewell 本物の食材で話すお見送りセリフを生成する
func (n *Narrator) Farewell(ctx context.Context, recipe *catalog.RecipeEntry) (string, bool) {
	ingredients, err := common.ToJSON(recipe.RealIngredients)
	if err != nil {
		return "", false
	}

	prompt := fmt.Sprintf(farewellPromptTemplate, recipe.Name, ingredients, recipe.Description)

	message, err := n.gen.Generate(ctx, prompt, farewellMaxTokens, farewellTemperature)
	if err != nil {
		common.LogWarn("お見送りセリフの生成失敗", zap.Error(err), zap.String("recipe", recipe.Name))
		return "", false
	}
	return message, true
}
