package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/yamawaki64-design/yuruyuru-chef/internal/core/chef"
	sessionstore "github.com/yamawaki64-design/yuruyuru-chef/internal/core/session"
	"github.com/yamawaki64-design/yuruyuru-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsultRequest 食材相談リクエスト
type ConsultRequest struct {
	Input       string   `json:"input" binding:"required"` // 冷蔵庫にある食材の自由入力
	Temperature string   `json:"temperature,omitempty"`    // あったかいのがいい / どっちでもいい
	Tools       []string `json:"tools,omitempty"`          // コンロ / 電子レンジ
}

// SessionView クライアントに返すセッションの見え方
type SessionView struct {
	ID     string      `json:"id"`
	Screen chef.Screen `json:"screen"`

	RawInput    string   `json:"raw_input,omitempty"`
	Temperature string   `json:"temperature,omitempty"`
	Tools       []string `json:"tools,omitempty"`

	ResolvedIngredients []chef.ResolvedIngredient `json:"resolved_ingredients,omitempty"`
	NormalizedNames     []string                  `json:"normalized_names,omitempty"`

	RecipeName          string              `json:"recipe_name,omitempty"`
	DisplayName         string              `json:"display_name,omitempty"`
	MatchRate           int                 `json:"match_rate,omitempty"`
	Mood                *chef.Mood          `json:"mood,omitempty"`
	Toolless            bool                `json:"toolless,omitempty"`
	MicrowaveSubstitute bool                `json:"microwave_substitute,omitempty"`
	Substitutions       []chef.Substitution `json:"substitutions,omitempty"`

	AnalysisMessage string `json:"analysis_message,omitempty"`
	GenerateFailed  bool   `json:"generate_failed,omitempty"`
	CookingMessage  string `json:"cooking_message,omitempty"`
	FarewellMessage string `json:"farewell_message,omitempty"`
	GreetingMessage string `json:"greeting_message,omitempty"`
	SeasoningHint   string `json:"seasoning_hint,omitempty"`
	EatingHint      string `json:"eating_hint,omitempty"`
	ShoppingAdvice  string `json:"shopping_advice,omitempty"`
	ShareText       string `json:"share_text,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Handler セッション API のハンドラ群
type Handler struct {
	pipeline *chef.Pipeline
	store    sessionstore.Store
}

// NewHandler セッションハンドラーを作成する
func NewHandler(pipeline *chef.Pipeline, store sessionstore.Store) *Handler {
	return &Handler{
		pipeline: pipeline,
		store:    store,
	}
}

// HandleCreate セッション作成。トップ画面から始まる
func (h *Handler) HandleCreate(c *gin.Context) {
	requestID := ensureRequestID(c)

	s := chef.NewSession(common.GenerateUUID())
	if err := h.store.Save(c.Request.Context(), s); err != nil {
		common.LogError("セッション保存に失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		writeError(c, common.ErrInternalError)
		return
	}

	common.LogInfo("セッション作成",
		zap.String("session_id", s.ID),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusCreated, buildView(s))
}

// HandleGet 現在のセッションの見え方を返す
func (h *Handler) HandleGet(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildView(s))
}

// HandleConsult 食材入力から料理提案まで。Start/Analyzed からやり直しもできる
func (h *Handler) HandleConsult(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req ConsultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("リクエスト形式が不正",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		writeError(c, common.NewValidationError("input は必須"))
		return
	}

	temperature := req.Temperature
	if temperature == "" {
		temperature = chef.TemperatureAny
	}
	if temperature != chef.TemperatureAny && temperature != chef.TemperatureHotOnly {
		writeError(c, common.NewValidationError("temperature の値が不正"))
		return
	}

	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := h.pipeline.Consult(c.Request.Context(), s, req.Input, temperature, req.Tools); err != nil {
		writeError(c, err)
		return
	}

	if err := h.store.Save(c.Request.Context(), s); err != nil {
		common.LogError("セッション保存に失敗",
			zap.Error(err),
			zap.String("session_id", s.ID),
		)
		writeError(c, common.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, buildView(s))
}

// HandleSteps 詳細画面へ。代替割り当てと調理手順セリフを組み立てる
func (h *Handler) HandleSteps(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := h.pipeline.Detail(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}

	if err := h.store.Save(c.Request.Context(), s); err != nil {
		common.LogError("セッション保存に失敗",
			zap.Error(err),
			zap.String("session_id", s.ID),
		)
		writeError(c, common.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, buildView(s))
}

// HandleFarewell お見送り画面へ
func (h *Handler) HandleFarewell(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	if err := h.pipeline.Farewell(c.Request.Context(), s); err != nil {
		writeError(c, err)
		return
	}

	if err := h.store.Save(c.Request.Context(), s); err != nil {
		common.LogError("セッション保存に失敗",
			zap.Error(err),
			zap.String("session_id", s.ID),
		)
		writeError(c, common.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, buildView(s))
}

// HandleReset トップ画面に戻す。入力テキストと提案済みリストは持ち越す
func (h *Handler) HandleReset(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}

	s.Reset()

	if err := h.store.Save(c.Request.Context(), s); err != nil {
		common.LogError("セッション保存に失敗",
			zap.Error(err),
			zap.String("session_id", s.ID),
		)
		writeError(c, common.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, buildView(s))
}

// loadSession パスパラメータのセッションを取得する。失敗時はレスポンス済み
func (h *Handler) loadSession(c *gin.Context) (*chef.SessionState, bool) {
	id := c.Param("id")
	s, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			writeError(c, common.ErrSessionNotFound)
			return nil, false
		}
		common.LogError("セッション取得に失敗",
			zap.Error(err),
			zap.String("session_id", id),
		)
		writeError(c, common.ErrInternalError)
		return nil, false
	}
	return s, true
}

// buildView セッション状態を画面ごとの見え方に写す
func buildView(s *chef.SessionState) SessionView {
	view := SessionView{
		ID:          s.ID,
		Screen:      s.Screen,
		RawInput:    s.RawInput,
		Temperature: s.Temperature,
		Tools:       s.Tools,
		UpdatedAt:   s.UpdatedAt,
	}

	switch s.Screen {
	case chef.ScreenAnalyzed:
		view.ResolvedIngredients = s.ResolvedIngredients
		view.NormalizedNames = s.NormalizedNames
		view.RecipeName = s.SelectedRecipe.Name
		view.DisplayName = s.DisplayName
		view.MatchRate = s.MatchRate
		mood := chef.MoodFor(s.MatchRate)
		view.Mood = &mood
		view.Toolless = s.Toolless
		view.MicrowaveSubstitute = s.MicrowaveSubstitute
		view.AnalysisMessage = s.AnalysisMessage

	case chef.ScreenAnalyzedRescue:
		view.ResolvedIngredients = s.ResolvedIngredients
		view.NormalizedNames = s.NormalizedNames
		view.AnalysisMessage = s.AnalysisMessage
		view.GenerateFailed = s.GenerateFailed
		view.ShoppingAdvice = s.ShoppingAdvice

	case chef.ScreenDetail:
		view.RecipeName = s.SelectedRecipe.Name
		view.DisplayName = s.DisplayName
		view.MatchRate = s.MatchRate
		mood := chef.MoodFor(s.MatchRate)
		view.Mood = &mood
		view.Toolless = s.Toolless
		view.MicrowaveSubstitute = s.MicrowaveSubstitute
		view.Substitutions = s.Substitutions
		view.CookingMessage = s.CookingMessage
		view.GreetingMessage = s.GreetingMessage
		view.SeasoningHint = s.SeasoningHint
		view.EatingHint = s.EatingHint

	case chef.ScreenFarewell:
		view.DisplayName = s.DisplayName
		view.FarewellMessage = s.FarewellMessage
		view.ShareText = s.ShareText

	case chef.ScreenFarewellRescue:
		view.FarewellMessage = s.FarewellMessage
	}

	return view
}

// ensureRequestID リクエスト ID がなければ採番してヘッダに載せる
func ensureRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// writeError CustomError をステータス付きで返す
func writeError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(common.ErrInvalidRequest.Status, common.ErrorResponse{
			Code:    common.ErrInvalidRequest.Code,
			Message: err.Error(),
		})
		return
	}

	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "サーバ内部エラー",
	})
}
