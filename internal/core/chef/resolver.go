package chef

import (
	"context"
	"strings"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Resolver 自由入力のトークンをカタログ上の食材に解決する
type Resolver struct {
	index   search.Index
	catalog *catalog.Catalog
}

// NewResolver Resolver を作成する
func NewResolver(index search.Index, cat *catalog.Catalog) *Resolver {
	return &Resolver{index: index, catalog: cat}
}

// Tokenize 生テキストを読点・カンマ・空白で雑に分割する
// 正規化セリフ生成が失敗したときのフォールバック
func Tokenize(raw string) []string {
	replaced := strings.NewReplacer("、", " ", ",", " ", "，", " ").Replace(raw)
	fields := strings.Fields(replaced)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Resolve 各トークンを最近傍 1 件で解決する
// カットオフ超え・検索失敗・カタログ未登録は黙って落とす（エラーにしない）
// 結果は食材名で重複排除し、初出順を保つ
func (r *Resolver) Resolve(ctx context.Context, tokens []string) []ResolvedIngredient {
	resolved := make([]ResolvedIngredient, 0, len(tokens))
	seen := newOrderedSet()

	for _, token := range tokens {
		hit := r.resolveOne(ctx, token)
		if hit == nil {
			continue
		}
		if seen.Has(hit.Name) {
			continue
		}
		seen.Add(hit.Name)
		resolved = append(resolved, *hit)
	}
	return resolved
}

// resolveOne 1 トークンを最近傍 1 件で検索する。見つからなければ nil
func (r *Resolver) resolveOne(ctx context.Context, token string) *ResolvedIngredient {
	hits, err := r.index.QueryIngredients(ctx, token, 1)
	if err != nil {
		// 検索サービスの失敗はそのトークンの解決失敗として扱う
		common.LogWarn("食材検索失敗",
			zap.String("token", token),
			zap.Error(err),
			zap.String("code", common.ErrSearchUnavailable.Code),
		)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	best := hits[0]
	if best.Distance > MatchCutoff {
		common.LogDebug("距離カットオフ超過",
			zap.String("token", token),
			zap.String("name", best.Name),
			zap.Float64("distance", best.Distance),
		)
		return nil
	}

	entry := r.catalog.Ingredient(best.Name)
	if entry == nil {
		// インデックスとカタログがずれている場合。再インデックスで直る
		common.LogWarn("検索ヒットがカタログに存在しない", zap.String("name", best.Name))
		return nil
	}

	return &ResolvedIngredient{
		Name:       entry.Name,
		Categories: entry.Categories,
		RawEdible:  entry.RawEdible,
		Distance:   best.Distance,
		Token:      token,
	}
}

// CategoriesOf 解決済み食材のカテゴリを初出順で集約する
func CategoriesOf(resolved []ResolvedIngredient) []string {
	set := newOrderedSet()
	for _, ing := range resolved {
		for _, cat := range ing.Categories {
			set.Add(cat)
		}
	}
	return set.Items()
}

// CategoriesFromNames 正規化済みの食材名リストからカテゴリを辞書引きで集約する
// ベクトル検索を二段重ねにすると誤差が増すので、ここは直引きにする
func (r *Resolver) CategoriesFromNames(names []string) []string {
	set := newOrderedSet()
	for _, name := range names {
		for _, cat := range r.catalog.CategoriesOf(name) {
			set.Add(cat)
		}
	}
	return set.Items()
}
