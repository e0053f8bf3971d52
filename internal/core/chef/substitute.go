package chef

import (
	"sort"
	"strings"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
)

// MapSubstitutes 本物の食材ごとに、手持ち食材から代替を割り当てる
// 完全一致 → カテゴリ一致の未使用候補 → 未使用候補 → 代替なし（自分自身）の順
// 主食系とカタログ未登録の食材は代替候補から外す
// 同じ代替食材を 2 つの本物食材に使い回さない
func MapSubstitutes(cat *catalog.Catalog, recipe *catalog.RecipeEntry, userNames []string) []Substitution {
	real := make(map[string]bool, len(recipe.RealIngredients))
	for _, name := range recipe.RealIngredients {
		real[name] = true
	}

	// 代替候補プール（本物にない・主食系でない・カタログにある）。入力順を保つ
	pool := newOrderedSet()
	for _, name := range userNames {
		if real[name] {
			continue
		}
		cats := cat.CategoriesOf(name)
		if len(cats) == 0 {
			continue
		}
		if containsCategory(cats, catalog.StapleCategory) {
			continue
		}
		pool.Add(name)
	}

	userSet := make(map[string]bool, len(userNames))
	for _, name := range userNames {
		userSet[name] = true
	}

	used := make(map[string]bool)
	subs := make([]Substitution, 0, len(recipe.RealIngredients))

	for _, realName := range recipe.RealIngredients {
		if userSet[realName] {
			subs = append(subs, Substitution{Real: realName, Display: realName})
			continue
		}

		realCats := cat.CategoriesOf(realName)

		// カテゴリが 1 つでも一致する未使用候補を優先する
		best := ""
		for _, candidate := range pool.Items() {
			if used[candidate] {
				continue
			}
			if sharesCategory(realCats, cat.CategoriesOf(candidate)) {
				best = candidate
				break
			}
		}

		// カテゴリ一致なし → 未使用候補を入力順に割り当てる
		if best == "" {
			for _, candidate := range pool.Items() {
				if !used[candidate] {
					best = candidate
					break
				}
			}
		}

		if best != "" {
			used[best] = true
			subs = append(subs, Substitution{Real: realName, Display: best, Substituted: true})
		} else {
			// 候補が尽きたら本物の名前のまま
			subs = append(subs, Substitution{Real: realName, Display: realName})
		}
	}
	return subs
}

// ReplaceIngredientNames 加工手順の文中の本物食材名を代替名に置換する
// 長い食材名から先に置換して、短い名前による部分一致の誤爆を防ぐ
// （「ご飯」が「ご飯粒」の中を先に食うと断片が残る）
func ReplaceIngredientNames(steps []string, subs []Substitution) []string {
	sorted := make([]Substitution, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len([]rune(sorted[i].Real)) > len([]rune(sorted[j].Real))
	})

	replaced := make([]string, len(steps))
	for i, step := range steps {
		for _, sub := range sorted {
			if sub.Display != sub.Real {
				step = strings.ReplaceAll(step, sub.Real, sub.Display)
			}
		}
		replaced[i] = step
	}
	return replaced
}

func containsCategory(categories []string, target string) bool {
	for _, c := range categories {
		if c == target {
			return true
		}
	}
	return false
}

func sharesCategory(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, c := range a {
		set[c] = true
	}
	for _, c := range b {
		if set[c] {
			return true
		}
	}
	return false
}
