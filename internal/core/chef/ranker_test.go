package chef

import (
	"context"
	"errors"
	"testing"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"

	"github.com/stretchr/testify/assert"
)

func TestRankEmptyCategoriesSkipsSearch(t *testing.T) {
	index := &fakeIndex{}
	ranker := NewRanker(index, testCatalog())

	candidates := ranker.Rank(context.Background(), nil, nil, TemperatureAny, nil, DefaultTopN)

	assert.Nil(t, candidates)
	assert.Empty(t, index.recipeQueries, "カテゴリなしでは検索しない")
}

func TestRankDiscardsZeroOverlap(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "チャーハン", Distance: 0.2},
			{Name: "冷奴アレンジ", Distance: 0.1},
		},
	}
	ranker := NewRanker(index, testCatalog())

	// 卵系だけ → 冷奴アレンジ（豆製品系・薬味系）はカテゴリが重ならないので落ちる
	candidates := ranker.Rank(context.Background(), []string{"卵系"}, nil, TemperatureAny, nil, DefaultTopN)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "チャーハン", candidates[0].Recipe.Name)
	assert.Equal(t, 1, candidates[0].MatchCount)
}

func TestRankSortsByMatchCountThenDistance(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "冷奴アレンジ", Distance: 0.05},
			{Name: "チャーハン", Distance: 0.3},
			{Name: "親子丼", Distance: 0.2},
		},
	}
	ranker := NewRanker(index, testCatalog())

	categories := []string{"卵系", "主食系", "薬味系"}
	candidates := ranker.Rank(context.Background(), categories, nil, TemperatureAny, nil, DefaultTopN)

	// チャーハン 3 一致、親子丼 2 一致、冷奴アレンジ 1 一致
	assert.Len(t, candidates, 3)
	assert.Equal(t, "チャーハン", candidates[0].Recipe.Name)
	assert.Equal(t, 3, candidates[0].MatchCount)
	assert.Equal(t, "親子丼", candidates[1].Recipe.Name)
	assert.Equal(t, "冷奴アレンジ", candidates[2].Recipe.Name)
}

func TestRankSameMatchCountPrefersCloser(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "親子丼", Distance: 0.3},
			{Name: "チャーハン", Distance: 0.1},
		},
	}
	ranker := NewRanker(index, testCatalog())

	// どちらも 2 一致 → 距離が近いチャーハンが先
	candidates := ranker.Rank(context.Background(), []string{"卵系", "肉系"}, nil, TemperatureAny, nil, DefaultTopN)

	assert.Len(t, candidates, 2)
	assert.Equal(t, "チャーハン", candidates[0].Recipe.Name)
	assert.Equal(t, "親子丼", candidates[1].Recipe.Name)
}

func TestRankHotOnlyFiltersColdRecipes(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "冷奴アレンジ", Distance: 0.1},
			{Name: "親子丼", Distance: 0.2},
		},
	}
	ranker := NewRanker(index, testCatalog())

	candidates := ranker.Rank(context.Background(), []string{"豆製品系", "卵系"}, nil, TemperatureHotOnly, nil, DefaultTopN)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "親子丼", candidates[0].Recipe.Name)
}

func TestRankExcludesRecentRecipes(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "チャーハン", Distance: 0.1},
			{Name: "親子丼", Distance: 0.2},
		},
	}
	ranker := NewRanker(index, testCatalog())

	candidates := ranker.Rank(context.Background(), []string{"卵系"}, nil, TemperatureAny, []string{"チャーハン"}, DefaultTopN)

	assert.Len(t, candidates, 1)
	assert.Equal(t, "親子丼", candidates[0].Recipe.Name)
}

func TestRankToolFlags(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "チャーハン", Distance: 0.1},
			{Name: "冷奴アレンジ", Distance: 0.2},
		},
	}
	ranker := NewRanker(index, testCatalog())
	categories := []string{"卵系", "豆製品系"}

	// 道具なし：加熱が要る料理にだけ道具なしフラグ
	candidates := ranker.Rank(context.Background(), categories, nil, TemperatureAny, nil, DefaultTopN)
	assert.Len(t, candidates, 2)
	for _, c := range candidates {
		switch c.Recipe.Name {
		case "チャーハン":
			assert.True(t, c.Toolless)
			assert.False(t, c.MicrowaveSubstitute)
		case "冷奴アレンジ":
			assert.False(t, c.Toolless)
			assert.False(t, c.MicrowaveSubstitute)
		}
	}

	// レンジだけ：コンロ調理はレンジ代用フラグ
	candidates = ranker.Rank(context.Background(), categories, []string{ToolMicrowave}, TemperatureAny, nil, DefaultTopN)
	for _, c := range candidates {
		if c.Recipe.Name == "チャーハン" {
			assert.False(t, c.Toolless)
			assert.True(t, c.MicrowaveSubstitute)
		}
	}

	// コンロあり：フラグは立たない
	candidates = ranker.Rank(context.Background(), categories, []string{ToolStove}, TemperatureAny, nil, DefaultTopN)
	for _, c := range candidates {
		assert.False(t, c.Toolless)
		assert.False(t, c.MicrowaveSubstitute)
	}
}

func TestRankSearchErrorReturnsNoCandidates(t *testing.T) {
	index := &fakeIndex{recipeErr: errors.New("deadline exceeded")}
	ranker := NewRanker(index, testCatalog())

	// 検索失敗は候補なし扱い（呼び出し側で救済パスへ）
	candidates := ranker.Rank(context.Background(), []string{"卵系"}, nil, TemperatureAny, nil, DefaultTopN)
	assert.Nil(t, candidates)
}

func TestRankTruncatesToLimit(t *testing.T) {
	index := &fakeIndex{
		recipeHits: []search.Hit{
			{Name: "チャーハン", Distance: 0.1},
			{Name: "親子丼", Distance: 0.2},
			{Name: "冷奴アレンジ", Distance: 0.3},
		},
	}
	ranker := NewRanker(index, testCatalog())

	candidates := ranker.Rank(context.Background(), []string{"卵系", "豆製品系", "薬味系"}, nil, TemperatureAny, nil, 2)
	assert.Len(t, candidates, 2)
}

func TestCategoryOverlapIgnoresDuplicates(t *testing.T) {
	assert.Equal(t, 1, categoryOverlap([]string{"野菜系"}, []string{"野菜系", "野菜系"}))
	assert.Equal(t, 0, categoryOverlap([]string{"肉系"}, []string{"野菜系"}))
	assert.Equal(t, 2, categoryOverlap([]string{"肉系", "野菜系", "卵系"}, []string{"野菜系", "肉系"}))
}
