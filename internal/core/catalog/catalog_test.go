package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ingredientPath := writeFile(t, dir, "ingredient_db.json", `[
		{"食材名": "卵", "カテゴリ": ["卵系"], "生食可": true, "説明": "たまご"},
		{"食材名": "ねぎ", "カテゴリ": ["野菜系", "薬味系"], "生食可": true, "説明": "ネギ"}
	]`)
	recipePath := writeFile(t, dir, "recipe_db.json", `[
		{
			"name": "チャーハン",
			"ジャンル": "中華",
			"加熱": true,
			"必要調理法": "炒め",
			"本物の食材": ["ご飯", "卵", "ねぎ"],
			"使える食材カテゴリ": ["主食系", "卵系", "薬味系"],
			"加工手順": ["ねぎを刻んで"],
			"説明文": "炒めご飯"
		}
	]`)

	cat, err := Load(ingredientPath, recipePath)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.IngredientCount())
	assert.Equal(t, 1, cat.RecipeCount())

	egg := cat.Ingredient("卵")
	require.NotNil(t, egg)
	assert.True(t, egg.RawEdible)
	assert.Equal(t, []string{"卵系"}, egg.Categories)

	recipe := cat.Recipe("チャーハン")
	require.NotNil(t, recipe)
	assert.True(t, recipe.RequiresHeat)
	assert.Equal(t, "炒め", recipe.CookingMethod)

	assert.Nil(t, cat.Ingredient("存在しない"))
	assert.Nil(t, cat.Recipe("存在しない"))
	assert.Equal(t, []string{"野菜系", "薬味系"}, cat.CategoriesOf("ねぎ"))
	assert.Empty(t, cat.CategoriesOf("存在しない"))
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe_db.json", `[]`)

	_, err := Load(filepath.Join(dir, "nope.json"), recipePath)
	assert.Error(t, err)
}

func TestBuildRecipeDocument(t *testing.T) {
	recipe := &RecipeEntry{
		Name:             "チャーハン",
		Genre:            "中華",
		CookingMethod:    "炒め",
		RealIngredients:  []string{"ご飯", "卵"},
		UsableCategories: []string{"主食系", "卵系"},
		PrepSteps:        []string{"卵を溶いて"},
		Description:      "炒めご飯",
	}

	doc := BuildRecipeDocument(recipe)
	assert.Equal(t, "チャーハン。ジャンル：中華。食材：ご飯、卵。使える食材カテゴリ：主食系、卵系。調理法：炒め。手順：卵を溶いて。炒めご飯", doc)
}

func TestBuildIngredientDocument(t *testing.T) {
	egg := &IngredientEntry{
		Name:        "卵",
		Categories:  []string{"卵系"},
		RawEdible:   true,
		Description: "たまご。生卵",
	}

	// 表記ゆれ対策で名前を冒頭に 3 回繰り返す
	doc := BuildIngredientDocument(egg)
	assert.Equal(t, "卵 卵 卵。カテゴリ：卵系。生食可。たまご。生卵", doc)

	raw := &IngredientEntry{Name: "豚肉", Categories: []string{"肉系"}, RawEdible: false, Description: "ぶたにく"}
	assert.Contains(t, BuildIngredientDocument(raw), "加熱必要")
}
