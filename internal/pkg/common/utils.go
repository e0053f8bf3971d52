package common

import (
	"github.com/google/uuid"
)

// GenerateUUID UUID を生成する
func GenerateUUID() string {
	return uuid.New().String()
}
