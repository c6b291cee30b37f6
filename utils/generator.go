package utils

import (
	"math/rand"

	"github.com/quizdesk/quiz_platform/models"
	"gorm.io/gorm"
)

const accessCodeLength = 6
const letterBytes = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateUniqueAccessCode returns a join code not yet used by any quiz.
func GenerateUniqueAccessCode(tx *gorm.DB) (string, error) {
	for {
		b := make([]byte, accessCodeLength)
		for i := range b {
			b[i] = letterBytes[rand.Intn(len(letterBytes))]
		}
		code := string(b)

		var quiz models.Quiz
		err := tx.Where("access_code = ?", code).First(&quiz).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
