package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/catalog"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/search"
	sessionstore "github.com/yamawaki64-design/yuruyuru-chef/internal/core/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIndex 固定のヒットを返す search.Index
type stubIndex struct {
	ingredientHits map[string][]search.Hit
	recipeHits     []search.Hit
}

func (s *stubIndex) QueryIngredients(ctx context.Context, text string, k int) ([]search.Hit, error) {
	return s.ingredientHits[text], nil
}

func (s *stubIndex) QueryRecipes(ctx context.Context, text string, k int) ([]search.Hit, error) {
	return s.recipeHits, nil
}

// stubNarrator 生成結果を返さず、常にテンプレートへ落とす chef.Narrator
type stubNarrator struct{}

func (stubNarrator) NormalizeIngredients(ctx context.Context, input string) chef.NormalizeResult {
	return chef.NormalizeResult{}
}

func (stubNarrator) CookingSteps(ctx context.Context, recipe *catalog.RecipeEntry, replacedSteps []string) (string, bool) {
	return "", false
}

func (stubNarrator) Farewell(ctx context.Context, recipe *catalog.RecipeEntry) (string, bool) {
	return "", false
}

func newTestRouter(t *testing.T) (*gin.Engine, sessionstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.New(
		[]catalog.IngredientEntry{
			{Name: "卵", Categories: []string{"卵系"}, RawEdible: true},
			{Name: "ねぎ", Categories: []string{"野菜系", "薬味系"}, RawEdible: true},
			{Name: "ご飯", Categories: []string{"主食系"}, RawEdible: true},
			{Name: "ハム", Categories: []string{"肉系", "加工品系"}, RawEdible: true},
		},
		[]catalog.RecipeEntry{
			{
				Name:             "チャーハン",
				Genre:            "中華",
				RequiresHeat:     true,
				CookingMethod:    "炒め",
				RealIngredients:  []string{"ご飯", "卵", "ねぎ", "ハム"},
				UsableCategories: []string{"主食系", "卵系", "肉系", "薬味系", "野菜系"},
				PrepSteps:        []string{"ねぎとハムを刻んで", "卵を溶いて"},
				Description:      "炒めご飯",
			},
		},
	)
	index := &stubIndex{
		ingredientHits: map[string][]search.Hit{
			"卵":  {{Name: "卵", Distance: 0.1}},
			"ねぎ": {{Name: "ねぎ", Distance: 0.1}},
			"ご飯": {{Name: "ご飯", Distance: 0.1}},
			"ハム": {{Name: "ハム", Distance: 0.1}},
		},
		recipeHits: []search.Hit{{Name: "チャーハン", Distance: 0.1}},
	}

	pipeline := chef.NewPipeline(cat, index, stubNarrator{})
	store := sessionstore.NewMemoryStore(time.Hour)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(pipeline, store)

	router := gin.New()
	sessions := router.Group("/api/v1/sessions")
	sessions.POST("", h.HandleCreate)
	sessions.GET("/:id", h.HandleGet)
	sessions.POST("/:id/consult", h.HandleConsult)
	sessions.POST("/:id/steps", h.HandleSteps)
	sessions.POST("/:id/farewell", h.HandleFarewell)
	sessions.POST("/:id/reset", h.HandleReset)
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, SessionView) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var view SessionView
	if w.Code < 400 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	}
	return w, view
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	// 作成 → トップ画面
	w, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, chef.ScreenStart, view.Screen)
	require.NotEmpty(t, view.ID)
	id := view.ID

	// 相談 → 提案画面
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input: "卵、ねぎ、ご飯、ハム",
		Tools: []string{chef.ToolStove},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenAnalyzed, view.Screen)
	assert.Equal(t, "チャーハン", view.RecipeName)
	assert.Equal(t, 100, view.MatchRate)
	require.NotNil(t, view.Mood)
	assert.Equal(t, "🤩", view.Mood.Face)
	assert.NotEmpty(t, view.AnalysisMessage)

	// 作り方 → 詳細画面
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/steps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenDetail, view.Screen)
	assert.NotEmpty(t, view.CookingMessage)
	assert.NotEmpty(t, view.SeasoningHint)
	assert.NotEmpty(t, view.EatingHint)

	// お見送り
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/farewell", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenFarewell, view.Screen)
	assert.NotEmpty(t, view.FarewellMessage)
	assert.Contains(t, view.ShareText, view.DisplayName)

	// リセット → トップ画面（入力は持ち越す）
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenStart, view.Screen)
	assert.Equal(t, "卵、ねぎ、ご飯、ハム", view.RawInput)
}

func TestConsultRescue(t *testing.T) {
	router, _ := newTestRouter(t)

	_, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	id := view.ID

	// 解決できない入力 → 救済画面
	w, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input: "スマホ",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenAnalyzedRescue, view.Screen)
	assert.False(t, view.GenerateFailed)
	assert.Contains(t, chef.ShoppingAdvice, view.ShoppingAdvice)

	// 救済画面からのお見送り
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/farewell", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenFarewellRescue, view.Screen)
}

func TestConsultAfterFarewellRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	_, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	id := view.ID

	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input: "卵、ねぎ、ご飯、ハム",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/steps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/farewell", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// お見送り後はリセットしない限り相談し直せない
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input: "卵",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SCREEN_MISMATCH")

	// リセットすればまた相談できる
	// 提案済みリストは持ち越すので、唯一の候補チャーハンは除外されて救済画面になる
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, view = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input: "卵",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chef.ScreenAnalyzedRescue, view.Screen)
}

func TestGetUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_NOT_FOUND")
}

func TestStepsOnWrongScreen(t *testing.T) {
	router, _ := newTestRouter(t)

	_, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)

	// トップ画面で作り方は要求できない
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+view.ID+"/steps", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SCREEN_MISMATCH")
}

func TestConsultValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	_, view := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	id := view.ID

	// input なし
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")

	// temperature の値が不正
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/consult", ConsultRequest{
		Input:       "卵",
		Temperature: "ぬるめ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	assert.Contains(t, w.Body.String(), "temperature の値が不正")
}
