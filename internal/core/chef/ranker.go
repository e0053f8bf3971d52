package chef

import (
	"context"
	"sort"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Ranker カテゴリ・道具・温度の好みで料理候補を並べる
type Ranker struct {
	index   search.Index
	catalog *catalog.Catalog
}

// NewRanker Ranker を作成する
func NewRanker(index search.Index, cat *catalog.Catalog) *Ranker {
	return &Ranker{index: index, catalog: cat}
}

// Rank 料理候補を検索して上位 n 件を返す
// カテゴリが空のときは検索せず空を返す（呼び出し側が救済パスに入る）
func (r *Ranker) Rank(ctx context.Context, categories, tools []string, temperature string, excludeNames []string, n int) []RecipeCandidate {
	if len(categories) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultTopN
	}

	query := common.StringSliceToString(categories) + "を使った料理"
	hits, err := r.index.QueryRecipes(ctx, query, recipeOversample)
	if err != nil {
		// 検索サービスの失敗は候補なしとして扱い、救済パスに流す
		common.LogWarn("料理検索失敗",
			zap.Error(err),
			zap.String("code", common.ErrSearchUnavailable.Code),
		)
		return nil
	}

	exclude := make(map[string]bool, len(excludeNames))
	for _, name := range excludeNames {
		exclude[name] = true
	}

	hasStove := containsTool(tools, ToolStove)
	hasMicrowave := containsTool(tools, ToolMicrowave)

	candidates := make([]RecipeCandidate, 0, len(hits))
	for _, hit := range hits {
		entry := r.catalog.Recipe(hit.Name)
		if entry == nil {
			common.LogWarn("検索ヒットがカタログに存在しない", zap.String("name", hit.Name))
			continue
		}

		if exclude[entry.Name] {
			continue
		}

		if temperature == TemperatureHotOnly && !entry.RequiresHeat {
			continue
		}

		// ベクトル類似度だけで引っかかった無関係な料理を弾く
		matchCount := categoryOverlap(categories, entry.UsableCategories)
		if matchCount == 0 {
			continue
		}

		// 道具がなくても除外はしない。注意書きフラグだけ立てて必ず提案する
		needsStove := stoveMethods[entry.CookingMethod]
		noHeatNeeded := entry.CookingMethod == cookingMethodNone
		needsHeat := needsStove && !noHeatNeeded

		candidates = append(candidates, RecipeCandidate{
			Recipe:              entry,
			MatchCount:          matchCount,
			Distance:            hit.Distance,
			Toolless:            !hasStove && !hasMicrowave && needsHeat,
			MicrowaveSubstitute: needsStove && !hasStove && hasMicrowave,
		})
	}

	// カテゴリ一致数が多い順、同数なら距離が近い順
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].MatchCount != candidates[j].MatchCount {
			return candidates[i].MatchCount > candidates[j].MatchCount
		}
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// categoryOverlap 2 つのカテゴリ集合の共通要素数
func categoryOverlap(query, usable []string) int {
	set := make(map[string]bool, len(query))
	for _, c := range query {
		set[c] = true
	}
	count := 0
	for _, c := range usable {
		if set[c] {
			count++
			set[c] = false // 重複カウント防止
		}
	}
	return count
}

func containsTool(tools []string, tool string) bool {
	for _, t := range tools {
		if t == tool {
			return true
		}
	}
	return false
}
