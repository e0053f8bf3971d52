package chef

import (
	"context"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
)

// fakeIndex search.Index のテスト用実装
type fakeIndex struct {
	ingredientHits map[string][]search.Hit
	recipeHits     []search.Hit
	ingredientErr  error
	recipeErr      error

	recipeQueries []string
}

func (f *fakeIndex) QueryIngredients(ctx context.Context, text string, k int) ([]search.Hit, error) {
	if f.ingredientErr != nil {
		return nil, f.ingredientErr
	}
	return f.ingredientHits[text], nil
}

func (f *fakeIndex) QueryRecipes(ctx context.Context, text string, k int) ([]search.Hit, error) {
	f.recipeQueries = append(f.recipeQueries, text)
	if f.recipeErr != nil {
		return nil, f.recipeErr
	}
	return f.recipeHits, nil
}

// fakeNarrator chef.Narrator のテスト用実装
type fakeNarrator struct {
	normalize  NormalizeResult
	cooking    string
	cookingOK  bool
	farewell   string
	farewellOK bool
}

func (f *fakeNarrator) NormalizeIngredients(ctx context.Context, input string) NormalizeResult {
	return f.normalize
}

func (f *fakeNarrator) CookingSteps(ctx context.Context, recipe *catalog.RecipeEntry, replacedSteps []string) (string, bool) {
	return f.cooking, f.cookingOK
}

func (f *fakeNarrator) Farewell(ctx context.Context, recipe *catalog.RecipeEntry) (string, bool) {
	return f.farewell, f.farewellOK
}

// testCatalog テスト共通の小さなカタログ
func testCatalog() *catalog.Catalog {
	ingredients := []catalog.IngredientEntry{
		{Name: "卵", Categories: []string{"卵系"}, RawEdible: true},
		{Name: "ねぎ", Categories: []string{"野菜系", "薬味系"}, RawEdible: true},
		{Name: "玉ねぎ", Categories: []string{"野菜系"}, RawEdible: true},
		{Name: "豚肉", Categories: []string{"肉系"}, RawEdible: false},
		{Name: "鶏肉", Categories: []string{"肉系"}, RawEdible: false},
		{Name: "豆腐", Categories: []string{"豆製品系"}, RawEdible: true},
		{Name: "チーズ", Categories: []string{"乳製品系"}, RawEdible: true},
		{Name: "ツナ缶", Categories: []string{"魚介系", "加工品系"}, RawEdible: true},
		{Name: "ご飯", Categories: []string{"主食系"}, RawEdible: true},
		{Name: "ハム", Categories: []string{"肉系", "加工品系"}, RawEdible: true},
	}
	recipes := []catalog.RecipeEntry{
		{
			Name:             "チャーハン",
			Genre:            "中華",
			RequiresHeat:     true,
			CookingMethod:    "炒め",
			RealIngredients:  []string{"ご飯", "卵", "ねぎ", "ハム"},
			UsableCategories: []string{"主食系", "卵系", "肉系", "薬味系", "野菜系"},
			PrepSteps:        []string{"ねぎとハムを刻んで", "卵を溶いて"},
			Description:      "冷やご飯が生まれ変わる炒めご飯",
		},
		{
			Name:             "親子丼",
			Genre:            "和食",
			RequiresHeat:     true,
			CookingMethod:    "煮る",
			RealIngredients:  []string{"鶏肉", "卵", "玉ねぎ", "ご飯"},
			UsableCategories: []string{"肉系", "卵系", "野菜系", "主食系"},
			PrepSteps:        []string{"鶏肉と玉ねぎを甘辛く煮て", "卵でとじて"},
			Description:      "甘辛つゆと卵のとろとろ丼",
		},
		{
			Name:             "冷奴アレンジ",
			Genre:            "和食",
			RequiresHeat:     false,
			CookingMethod:    "なし",
			RealIngredients:  []string{"豆腐", "ねぎ"},
			UsableCategories: []string{"豆製品系", "薬味系"},
			PrepSteps:        []string{"豆腐にねぎをのせて"},
			Description:      "火を使わない一品",
		},
	}
	return catalog.New(ingredients, recipes)
}
