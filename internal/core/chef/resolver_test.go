package chef

import (
	"context"
	"errors"
	"testing"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"卵", "ねぎ", "豆腐"}, Tokenize("卵、ねぎ 豆腐"))
	assert.Equal(t, []string{"卵", "ねぎ"}, Tokenize("卵,ねぎ"))
	assert.Equal(t, []string{"卵", "ねぎ"}, Tokenize("卵，ねぎ"))
	assert.Empty(t, Tokenize("  、、 "))
}

func TestResolveCutoff(t *testing.T) {
	index := &fakeIndex{
		ingredientHits: map[string][]search.Hit{
			"たまご":  {{Name: "卵", Distance: 0.12, Query: "たまご"}},
			"ねぎ":   {{Name: "ねぎ", Distance: 0.35, Query: "ねぎ"}},
			"スマホ":  {{Name: "豆腐", Distance: 0.72, Query: "スマホ"}},
		},
	}
	resolver := NewResolver(index, testCatalog())

	resolved := resolver.Resolve(context.Background(), []string{"たまご", "ねぎ", "スマホ"})

	// カットオフちょうどは採用、超えたものだけ捨てる
	assert.Len(t, resolved, 2)
	assert.Equal(t, "卵", resolved[0].Name)
	assert.Equal(t, "たまご", resolved[0].Token)
	assert.Equal(t, "ねぎ", resolved[1].Name)
}

func TestResolveDeduplicates(t *testing.T) {
	index := &fakeIndex{
		ingredientHits: map[string][]search.Hit{
			"たまご": {{Name: "卵", Distance: 0.1}},
			"玉子":  {{Name: "卵", Distance: 0.15}},
			"ねぎ":  {{Name: "ねぎ", Distance: 0.1}},
		},
	}
	resolver := NewResolver(index, testCatalog())

	resolved := resolver.Resolve(context.Background(), []string{"たまご", "玉子", "ねぎ"})

	// 同じ食材に解決されたら初出だけ残る
	assert.Len(t, resolved, 2)
	assert.Equal(t, "卵", resolved[0].Name)
	assert.Equal(t, "たまご", resolved[0].Token)
	assert.Equal(t, "ねぎ", resolved[1].Name)
}

func TestResolveDropsUnknownCatalogEntry(t *testing.T) {
	index := &fakeIndex{
		ingredientHits: map[string][]search.Hit{
			"なぞの食材": {{Name: "存在しない食材", Distance: 0.1}},
		},
	}
	resolver := NewResolver(index, testCatalog())

	resolved := resolver.Resolve(context.Background(), []string{"なぞの食材"})
	assert.Empty(t, resolved)
}

func TestResolveIndexErrorDropsToken(t *testing.T) {
	index := &fakeIndex{ingredientErr: errors.New("connection refused")}
	resolver := NewResolver(index, testCatalog())

	// 検索失敗はエラーにせず空で返す
	resolved := resolver.Resolve(context.Background(), []string{"卵", "ねぎ"})
	assert.Empty(t, resolved)
}

func TestCategoriesOfKeepsFirstSeenOrder(t *testing.T) {
	resolved := []ResolvedIngredient{
		{Name: "ねぎ", Categories: []string{"野菜系", "薬味系"}},
		{Name: "玉ねぎ", Categories: []string{"野菜系"}},
		{Name: "卵", Categories: []string{"卵系"}},
	}

	assert.Equal(t, []string{"野菜系", "薬味系", "卵系"}, CategoriesOf(resolved))
}

func TestCategoriesFromNames(t *testing.T) {
	resolver := NewResolver(&fakeIndex{}, testCatalog())

	categories := resolver.CategoriesFromNames([]string{"ねぎ", "卵", "未知の食材"})

	// 辞書直引き。カタログにない名前は無視する
	assert.Equal(t, []string{"野菜系", "薬味系", "卵系"}, categories)
}
