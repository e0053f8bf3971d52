package catalog

import (
	"fmt"
	"os"
	"sync"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// StapleCategory 主食系カテゴリ。主食は他カテゴリの代替にならない
const StapleCategory = "主食系"

// IngredientEntry 食材 DB の 1 件。起動時に読み込んだ後は不変
type IngredientEntry struct {
	Name        string   `json:"食材名"`
	Categories  []string `json:"カテゴリ"`
	RawEdible   bool     `json:"生食可"`
	Description string   `json:"説明"`
}

// RecipeEntry 料理 DB の 1 件。起動時に読み込んだ後は不変
type RecipeEntry struct {
	Name             string   `json:"name"`
	Genre            string   `json:"ジャンル"`
	RequiresHeat     bool     `json:"加熱"`
	CookingMethod    string   `json:"必要調理法"`
	RealIngredients  []string `json:"本物の食材"`
	UsableCategories []string `json:"使える食材カテゴリ"`
	PrepSteps        []string `json:"加工手順"`
	Description      string   `json:"説明文"`
}

// Catalog 食材・料理の参照データ一式
type Catalog struct {
	Ingredients []IngredientEntry
	Recipes     []RecipeEntry

	ingredientByName map[string]*IngredientEntry
	recipeByName     map[string]*RecipeEntry
}

// New メモリ上のエントリからカタログを構築する
func New(ingredients []IngredientEntry, recipes []RecipeEntry) *Catalog {
	c := &Catalog{
		Ingredients:      ingredients,
		Recipes:          recipes,
		ingredientByName: make(map[string]*IngredientEntry, len(ingredients)),
		recipeByName:     make(map[string]*RecipeEntry, len(recipes)),
	}
	for i := range c.Ingredients {
		c.ingredientByName[c.Ingredients[i].Name] = &c.Ingredients[i]
	}
	for i := range c.Recipes {
		c.recipeByName[c.Recipes[i].Name] = &c.Recipes[i]
	}
	return c
}

// Load JSON ファイルからカタログを読み込む
func Load(ingredientPath, recipePath string) (*Catalog, error) {
	var ingredients []IngredientEntry
	if err := loadJSONFile(ingredientPath, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to load ingredient catalog: %w", err)
	}

	var recipes []RecipeEntry
	if err := loadJSONFile(recipePath, &recipes); err != nil {
		return nil, fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	c := New(ingredients, recipes)

	common.LogInfo("カタログ読み込み完了",
		zap.Int("食材数", len(ingredients)),
		zap.Int("料理数", len(recipes)),
	)

	return c, nil
}

func loadJSONFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return common.DecodeJSON(f, v)
}

// Ingredient 食材名でエントリを引く。見つからなければ nil
func (c *Catalog) Ingredient(name string) *IngredientEntry {
	return c.ingredientByName[name]
}

// Recipe 料理名でエントリを引く。見つからなければ nil
func (c *Catalog) Recipe(name string) *RecipeEntry {
	return c.recipeByName[name]
}

// IngredientCount 食材エントリ数
func (c *Catalog) IngredientCount() int {
	return len(c.Ingredients)
}

// RecipeCount 料理エントリ数
func (c *Catalog) RecipeCount() int {
	return len(c.Recipes)
}

// CategoriesOf 食材名のカテゴリを引く。カタログにない食材は空
func (c *Catalog) CategoriesOf(name string) []string {
	if e := c.ingredientByName[name]; e != nil {
		return e.Categories
	}
	return nil
}

// プロセス共通のカタログ。最初のアクセスで一度だけ構築する
var (
	shared     *Catalog
	sharedErr  error
	sharedOnce sync.Once
)

// Shared プロセス共通カタログを返す（初回のみ読み込み）
func Shared(ingredientPath, recipePath string) (*Catalog, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = Load(ingredientPath, recipePath)
	})
	return shared, sharedErr
}
