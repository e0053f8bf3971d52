package search

import (
	"context"
)

// Hit 類似検索の結果 1 件。Distance は小さいほど近い（コサイン距離）
type Hit struct {
	Name     string  // カタログ上の正式名
	Distance float64 // 0 以上。1 - コサイン類似度
	Query    string  // 検索に使ったテキスト
}

// Index 食材・料理カタログの類似検索
// カットオフや k の判断は呼び出し側（core）が持つ。ここは取ってくるだけ
type Index interface {
	// QueryIngredients 食材コレクションを検索する
	QueryIngredients(ctx context.Context, text string, k int) ([]Hit, error)

	// QueryRecipes 料理コレクションを検索する
	QueryRecipes(ctx context.Context, text string, k int) ([]Hit, error)
}

// Embedder テキストを埋め込みベクトルに変換する
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
