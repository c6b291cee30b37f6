package jobs

import (
	"log"

	"github.com/quizdesk/quiz_platform/database"
	"github.com/quizdesk/quiz_platform/services"
)

// ExpireOverdueAttempts finalizes timed attempts whose deadline passed
// without a submission, so they count against the student's max attempts.
func ExpireOverdueAttempts() {
	log.Println("Running job: ExpireOverdueAttempts...")

	expired, err := services.ExpireOverdueAttempts(database.DB)
	if err != nil {
		log.Printf("Error expiring overdue attempts: %v", err)
		return
	}

	if expired > 0 {
		log.Printf("Expired %d overdue attempt(s)", expired)
	}
}
