package chef

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// AppURL シェア文面に入れるアプリの URL
const AppURL = "https://yuruyuruchef.streamlit.app/"

// NormalizeResult 食材正規化セリフ生成の結果
// Failed は生成呼び出し自体の失敗。空の成功（何も見つからなかった）と区別する
type NormalizeResult struct {
	Ingredients []string
	Message     string
	Failed      bool
}

// Narrator セリフ生成の協力者。失敗してもエラーを返さず ok=false で知らせる
type Narrator interface {
	// NormalizeIngredients 入力テキストを解析して正規化食材リストとセリフを返す
	NormalizeIngredients(ctx context.Context, input string) NormalizeResult

	// CookingSteps 置換済み手順をもとに調理手順セリフを生成する
	CookingSteps(ctx context.Context, recipe *catalog.RecipeEntry, replacedSteps []string) (string, bool)

	// Farewell 本物の食材で話すお見送りセリフを生成する
	Farewell(ctx context.Context, recipe *catalog.RecipeEntry) (string, bool)
}

// 固定セリフ。生成が使えないときは必ずこちらに落ちる
const (
	farewellFallback      = "また、何か作りたくなったら来るといいぞい 🍳"
	farewellRescueMessage = "また、何か作りたくなったら来るといいぞい 🍳\n次は何かおいしいもの見つかるといいぞい！"
	rescueMessage         = "うーん、その食材からはいいのが思い浮かばなかったぞい。\n買い物のアドバイスもするぞい！"
	rescueGenerateFailed  = "うーん、ちょっと頭が混乱してるぞい。\nすこし待ってから、もう一回試してほしいぞい！🙏"
	perfectGreeting       = "ばっちりな食材が揃ってるぞい！最高だぞい！"
)

// Pipeline 相談 1 回ぶんの処理をまとめる
// 各操作は同期的に最後まで走り切る。バックグラウンド処理はない
type Pipeline struct {
	catalog  *catalog.Catalog
	resolver *Resolver
	ranker   *Ranker
	narrator Narrator

	// テストで差し替えるための乱数
	randIntn func(n int) int
}

// NewPipeline Pipeline を作成する
func NewPipeline(cat *catalog.Catalog, index search.Index, narrator Narrator) *Pipeline {
	return &Pipeline{
		catalog:  cat,
		resolver: NewResolver(index, cat),
		ranker:   NewRanker(index, cat),
		narrator: narrator,
		randIntn: rand.Intn,
	}
}

// Consult 食材入力から料理提案まで一気に進める
// 候補が出れば Analyzed、出なければ AnalyzedRescue に遷移する
// やり直しは Start / Analyzed からのみ
func (p *Pipeline) Consult(ctx context.Context, s *SessionState, input, temperature string, tools []string) error {
	if s.Screen != ScreenStart && s.Screen != ScreenAnalyzed {
		return common.ErrScreenMismatch
	}

	s.RawInput = input
	s.Temperature = temperature
	s.Tools = tools

	// 生成で食材を正規化。失敗時は素朴な分割にフォールバック
	norm := p.narrator.NormalizeIngredients(ctx, input)

	tokens := norm.Ingredients
	if len(tokens) == 0 {
		tokens = Tokenize(input)
	}

	resolved := p.resolver.Resolve(ctx, tokens)

	// カテゴリは正規化リストの辞書直引きを優先する
	// 辞書に 1 件もなければベクトル検索の解決結果で代替する
	var categories []string
	if len(norm.Ingredients) > 0 {
		categories = p.resolver.CategoriesFromNames(norm.Ingredients)
	}
	if len(categories) == 0 {
		categories = CategoriesOf(resolved)
	}

	candidates := p.ranker.Rank(ctx, categories, tools, temperature, s.LastRecipes, DefaultTopN)

	s.ResolvedIngredients = resolved
	s.Categories = categories
	s.NormalizedNames = norm.Ingredients
	s.GenerateFailed = norm.Failed

	if len(candidates) == 0 {
		// 前回の提案結果が残らないように消してから救済画面へ
		s.SelectedRecipe = nil
		s.DisplayName = ""
		s.MatchRate = 0
		s.Toolless = false
		s.MicrowaveSubstitute = false
		s.ShoppingAdvice = ShoppingAdvice[p.randIntn(len(ShoppingAdvice))]
		if norm.Failed {
			s.AnalysisMessage = rescueGenerateFailed
		} else {
			s.AnalysisMessage = rescueMessage
		}
		s.Screen = ScreenAnalyzedRescue
		s.Touch()
		common.LogInfo("候補なし・救済パスへ",
			zap.String("session_id", s.ID),
			zap.Strings("categories", categories),
			zap.Bool("generate_failed", norm.Failed),
		)
		return nil
	}

	// 上位からランダムに 1 件。毎回同じ提案にならないように
	pool := selectionPool
	if len(candidates) < pool {
		pool = len(candidates)
	}
	selected := candidates[p.randIntn(pool)]

	displayName, rate := BuildRecipeName(selected.Recipe, resolved, norm.Ingredients)

	s.SelectedRecipe = selected.Recipe
	s.DisplayName = displayName
	s.MatchRate = rate
	s.Toolless = selected.Toolless
	s.MicrowaveSubstitute = selected.MicrowaveSubstitute
	s.LastRecipes = append(s.LastRecipes, selected.Recipe.Name)

	if norm.Message != "" {
		s.AnalysisMessage = norm.Message
	} else {
		s.AnalysisMessage = analysisFallback(resolved)
	}

	s.Screen = ScreenAnalyzed
	s.Touch()

	common.LogInfo("料理提案",
		zap.String("session_id", s.ID),
		zap.String("recipe", selected.Recipe.Name),
		zap.Int("match_rate", rate),
		zap.Int("candidates", len(candidates)),
	)
	return nil
}

// Detail 代替割り当てと調理手順セリフを組み立てる。Analyzed → Detail
func (p *Pipeline) Detail(ctx context.Context, s *SessionState) error {
	if s.Screen != ScreenAnalyzed || s.SelectedRecipe == nil {
		return common.ErrScreenMismatch
	}
	recipe := s.SelectedRecipe

	userNames := s.NormalizedNames
	if len(userNames) == 0 {
		for _, ing := range s.ResolvedIngredients {
			userNames = append(userNames, ing.Name)
		}
	}

	subs := MapSubstitutes(p.catalog, recipe, userNames)
	s.Substitutions = subs

	// 置換は生成任せにすると揺れるので、先にこちらで済ませてから渡す
	replacedSteps := ReplaceIngredientNames(recipe.PrepSteps, subs)

	message, ok := p.narrator.CookingSteps(ctx, recipe, replacedSteps)
	if !ok || message == "" {
		message = cookingFallback(recipe, replacedSteps)
	}
	s.CookingMessage = message

	s.GreetingMessage = greetingFor(recipe, userNames)
	s.SeasoningHint = SeasoningHintFor(recipe.Genre)
	s.EatingHint = EatingHintFor(recipe.Genre, recipe.UsableCategories)

	s.Screen = ScreenDetail
	s.Touch()
	return nil
}

// Farewell お見送りセリフとシェア文面を組み立てる
// Detail → Farewell、AnalyzedRescue → FarewellRescue
func (p *Pipeline) Farewell(ctx context.Context, s *SessionState) error {
	switch s.Screen {
	case ScreenDetail:
		message, ok := p.narrator.Farewell(ctx, s.SelectedRecipe)
		if !ok || message == "" {
			message = farewellFallback
		}
		s.FarewellMessage = message
		s.ShareText = buildShareText(s.DisplayName, s.CookingMessage)
		s.Screen = ScreenFarewell

	case ScreenAnalyzedRescue:
		s.FarewellMessage = farewellRescueMessage
		s.Screen = ScreenFarewellRescue

	default:
		return common.ErrScreenMismatch
	}

	s.Touch()
	return nil
}

// analysisFallback 生成セリフがないときの解析セリフ
func analysisFallback(resolved []ResolvedIngredient) string {
	names := "いろいろ"
	if len(resolved) > 0 {
		parts := make([]string, len(resolved))
		for i, ing := range resolved {
			parts[i] = ing.Name
		}
		names = strings.Join(parts, "と")
	}
	return fmt.Sprintf("「%s」があるんだぞい。ちょっと考えてみるぞい…", names)
}

// cookingFallback 生成セリフがないときの調理手順
func cookingFallback(recipe *catalog.RecipeEntry, replacedSteps []string) string {
	if len(replacedSteps) == 0 {
		return fmt.Sprintf("%sしたらできるぞい！", recipe.CookingMethod)
	}
	return fmt.Sprintf("%sして、%sしたらできるぞい！", strings.Join(replacedSteps, "、"), recipe.CookingMethod)
}

// greetingFor 詳細画面のふきだし。足りない食材と代替食材の組み合わせで変える
func greetingFor(recipe *catalog.RecipeEntry, userNames []string) string {
	userSet := make(map[string]bool, len(userNames))
	for _, name := range userNames {
		userSet[name] = true
	}
	realSet := make(map[string]bool, len(recipe.RealIngredients))
	for _, name := range recipe.RealIngredients {
		realSet[name] = true
	}

	var missing []string
	for _, name := range recipe.RealIngredients {
		if !userSet[name] {
			missing = append(missing, name)
		}
	}
	var substitutes []string
	for _, name := range userNames {
		if !realSet[name] {
			substitutes = append(substitutes, name)
		}
	}

	missingStr := strings.Join(missing, "と")
	subStr := strings.Join(substitutes, "と")

	switch {
	case len(missing) > 0 && len(substitutes) > 0:
		return fmt.Sprintf("本物は%sが入るらしいけど、%sがいい仕事してくれるぞい！", missingStr, subStr)
	case len(missing) > 0:
		return fmt.Sprintf("本物は%sが入るらしいけど、これもきっとおいしいぞい！", missingStr)
	case len(substitutes) > 0:
		return fmt.Sprintf("%sは%sでも、いい味だしてくれるはずだぞい！", subStr, recipe.Name)
	default:
		return perfectGreeting
	}
}

// buildShareText お見送り画面のシェア文面
func buildShareText(displayName, cookingMessage string) string {
	if cookingMessage != "" {
		return fmt.Sprintf("ゆるゆるコックさんに「%s」の作り方を教えてもらったぞい\n\n【作り方】\n%s\n\n🍳 %s",
			displayName, cookingMessage, AppURL)
	}
	return fmt.Sprintf("ゆるゆるコックさんに「%s」の作り方を教えてもらったぞい\n\n🍳 %s", displayName, AppURL)
}
