package catalog

import (
	"fmt"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"
)

// BuildRecipeDocument 料理 1 件をベクトル検索用のテキストに変換する
func BuildRecipeDocument(r *RecipeEntry) string {
	ingredients := common.StringSliceToString(r.RealIngredients)
	categories := common.StringSliceToString(r.UsableCategories)
	steps := common.StringSliceToString(r.PrepSteps)
	return fmt.Sprintf("%s。ジャンル：%s。食材：%s。使える食材カテゴリ：%s。調理法：%s。手順：%s。%s",
		r.Name, r.Genre, ingredients, categories, r.CookingMethod, steps, r.Description)
}

// BuildIngredientDocument 食材 1 件をベクトル検索用のテキストに変換する
// 食材名を冒頭に 3 回繰り返して表記ゆれ（ねぎ・ネギ・葱）に強くする
func BuildIngredientDocument(i *IngredientEntry) string {
	categories := common.StringSliceToString(i.Categories)
	raw := "加熱必要"
	if i.RawEdible {
		raw = "生食可"
	}
	nameEmphasis := fmt.Sprintf("%s %s %s。", i.Name, i.Name, i.Name)
	return fmt.Sprintf("%sカテゴリ：%s。%s。%s", nameEmphasis, categories, raw, i.Description)
}
