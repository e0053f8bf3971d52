package common

import (
	"net/http"
)

// ErrorResponse API エラーレスポンス構造
type ErrorResponse struct {
	Code    string `json:"code"`              // エラーコード
	Message string `json:"message"`           // エラーメッセージ
	Details string `json:"details,omitempty"` // 詳細（開発モードのみ）
}

// CustomError カスタムエラー型
type CustomError struct {
	Code    string // エラーコード
	Message string // エラーメッセージ
	Err     error  // 元エラー
	Status  int    // HTTP ステータスコード
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError カスタムエラーを作成する
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 入力検証エラー
type ValidationError struct {
	message string
}

// Error error インターフェース実装
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 入力検証エラーを作成する
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 入力検証エラーかどうか
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// 定義済みエラーコード
const (
	// クライアントエラー (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeUnauthorized     = "UNAUTHORIZED"       // 401
	ErrCodeForbidden        = "FORBIDDEN"          // 403
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeConflict         = "CONFLICT"           // 409
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// サーバエラー (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 定義済みエラー
var (
	// クライアントエラー
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "不正なリクエスト", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "リソースが存在しない", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "リクエストが多すぎる", http.StatusTooManyRequests, nil)

	// サーバエラー
	ErrInternalError      = NewError(ErrCodeInternalError, "サーバ内部エラー", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "サービス一時停止中", http.StatusServiceUnavailable, nil)

	// 業務エラー
	ErrSessionNotFound   = NewError("SESSION_NOT_FOUND", "セッションが存在しない", http.StatusNotFound, nil)
	ErrScreenMismatch    = NewError("SCREEN_MISMATCH", "現在の画面では実行できない操作", http.StatusConflict, nil)
	ErrSearchUnavailable = NewError("SEARCH_UNAVAILABLE", "検索サービスが利用できない", http.StatusServiceUnavailable, nil)
	ErrCatalogNotLoaded  = NewError("CATALOG_NOT_LOADED", "カタログが未ロード", http.StatusServiceUnavailable, nil)
)
