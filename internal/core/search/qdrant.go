package search

import (
	"context"
	"fmt"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// QdrantIndex Qdrant をバックエンドにした Index 実装
type QdrantIndex struct {
	conn        *grpc.ClientConn
	points      qdrantclient.PointsClient
	collections qdrantclient.CollectionsClient
	embedder    Embedder

	ingredientCollection string
	recipeCollection     string
}

// NewQdrantIndex Qdrant への gRPC 接続を張って Index を作成する
func NewQdrantIndex(host string, port int, ingredientCollection, recipeCollection string, embedder Embedder) (*QdrantIndex, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	common.LogInfo("Qdrant 接続確立",
		zap.String("addr", addr),
		zap.String("ingredient_collection", ingredientCollection),
		zap.String("recipe_collection", recipeCollection),
	)

	return &QdrantIndex{
		conn:                 conn,
		points:               qdrantclient.NewPointsClient(conn),
		collections:          qdrantclient.NewCollectionsClient(conn),
		embedder:             embedder,
		ingredientCollection: ingredientCollection,
		recipeCollection:     recipeCollection,
	}, nil
}

// QueryIngredients 食材コレクションを検索する
func (x *QdrantIndex) QueryIngredients(ctx context.Context, text string, k int) ([]Hit, error) {
	return x.query(ctx, x.ingredientCollection, text, k)
}

// QueryRecipes 料理コレクションを検索する
func (x *QdrantIndex) QueryRecipes(ctx context.Context, text string, k int) ([]Hit, error) {
	return x.query(ctx, x.recipeCollection, text, k)
}

func (x *QdrantIndex) query(ctx context.Context, collection, text string, k int) ([]Hit, error) {
	vector, err := x.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	searchReq := &qdrantclient.SearchPoints{
		CollectionName: collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{"name"},
				},
			},
		},
	}

	resp, err := x.points.Search(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("failed to search in Qdrant: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Result))
	for _, point := range resp.Result {
		nameVal, ok := point.Payload["name"]
		if !ok {
			continue
		}
		// コサイン類似度 → コサイン距離に直す。小さいほど近い
		distance := float64(1 - point.GetScore())
		if distance < 0 {
			distance = 0
		}
		hits = append(hits, Hit{
			Name:     nameVal.GetStringValue(),
			Distance: distance,
			Query:    text,
		})
	}
	return hits, nil
}

// EnsureCollection コレクションを用意する。recreate なら作り直す
func (x *QdrantIndex) EnsureCollection(ctx context.Context, collection string, dimension uint64, recreate bool) error {
	listResp, err := x.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	exists := false
	for _, c := range listResp.Collections {
		if c.Name == collection {
			exists = true
			break
		}
	}

	if exists && recreate {
		if _, err := x.collections.Delete(ctx, &qdrantclient.DeleteCollection{CollectionName: collection}); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		exists = false
	}

	if !exists {
		createReq := &qdrantclient.CreateCollection{
			CollectionName: collection,
			VectorsConfig: &qdrantclient.VectorsConfig{
				Config: &qdrantclient.VectorsConfig_Params{
					Params: &qdrantclient.VectorParams{
						Size:     dimension,
						Distance: qdrantclient.Distance_Cosine,
					},
				},
			},
		}
		if _, err := x.collections.Create(ctx, createReq); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		common.LogInfo("コレクション作成", zap.String("collection", collection), zap.Uint64("dimension", dimension))
	}

	return nil
}

// UpsertDocument 文書 1 件を埋め込んで登録する
func (x *QdrantIndex) UpsertDocument(ctx context.Context, collection string, id uint64, name, document string) error {
	vector, err := x.embedder.Embed(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to embed document: %w", err)
	}

	point := &qdrantclient.PointStruct{
		Id: &qdrantclient.PointId{
			PointIdOptions: &qdrantclient.PointId_Num{
				Num: id,
			},
		},
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{
					Data: vector,
				},
			},
		},
		Payload: map[string]*qdrantclient.Value{
			"name":     {Kind: &qdrantclient.Value_StringValue{StringValue: name}},
			"document": {Kind: &qdrantclient.Value_StringValue{StringValue: document}},
		},
	}

	upsertReq := &qdrantclient.UpsertPoints{
		CollectionName: collection,
		Points:         []*qdrantclient.PointStruct{point},
	}
	if _, err := x.points.Upsert(ctx, upsertReq); err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

// IngredientCollection 食材コレクション名
func (x *QdrantIndex) IngredientCollection() string { return x.ingredientCollection }

// RecipeCollection 料理コレクション名
func (x *QdrantIndex) RecipeCollection() string { return x.recipeCollection }

// Close gRPC 接続を閉じる
func (x *QdrantIndex) Close() error {
	return x.conn.Close()
}
