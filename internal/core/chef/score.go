package chef

import (
	"fmt"
	"strings"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
)

// MatchRate 一致率を計算する（食材 80 点＋調理 20 点、上限 100）
// normalizedNames があればそちらを優先する。ベクトル検索結果の混入を防ぐため
// 調理点は道具の有無にかかわらず常に 20 点。作ろうとした気持ちを応援する仕様
func MatchRate(recipe *catalog.RecipeEntry, resolved []ResolvedIngredient, normalizedNames []string) int {
	found := make(map[string]bool)
	if len(normalizedNames) > 0 {
		for _, name := range normalizedNames {
			found[name] = true
		}
	} else {
		for _, ing := range resolved {
			found[ing.Name] = true
		}
	}

	ingredientScore := 0
	if len(recipe.RealIngredients) > 0 {
		matched := 0
		for _, real := range recipe.RealIngredients {
			if found[real] {
				matched++
			}
		}
		ingredientScore = matched * 80 / len(recipe.RealIngredients)
	}

	const cookingScore = 20

	total := ingredientScore + cookingScore
	if total > 100 {
		total = 100
	}
	return total
}

// MatchPrefixFor 一致率に応じた前置きを返す。高い閾値から順に最初に届いたもの
func MatchPrefixFor(rate int) string {
	for _, tier := range matchPrefixTiers {
		if rate >= tier.threshold {
			return tier.prefix
		}
	}
	return matchPrefixTiers[len(matchPrefixTiers)-1].prefix
}

// BuildRecipeName 命名を生成する（前置き＋料理名ぽいのん＋代替食材）
// 同じ入力からは必ず同じ結果が出る純粋関数
func BuildRecipeName(recipe *catalog.RecipeEntry, resolved []ResolvedIngredient, normalizedNames []string) (string, int) {
	rate := MatchRate(recipe, resolved, normalizedNames)
	prefix := MatchPrefixFor(rate)

	real := make(map[string]bool, len(recipe.RealIngredients))
	for _, name := range recipe.RealIngredients {
		real[name] = true
	}

	var userNames []string
	if len(normalizedNames) > 0 {
		userNames = normalizedNames
	} else {
		for _, ing := range resolved {
			userNames = append(userNames, ing.Name)
		}
	}

	var substitutes []string
	for _, name := range userNames {
		if !real[name] {
			substitutes = append(substitutes, name)
		}
	}

	suffix := ""
	switch {
	case len(substitutes) == 1:
		suffix = fmt.Sprintf("（%s入り）", substitutes[0])
	case len(substitutes) >= 2:
		suffix = fmt.Sprintf("（%s入り）", strings.Join(substitutes[:2], "と"))
	}

	return fmt.Sprintf("%s%sぽいのん%s", prefix, recipe.Name, suffix), rate
}
