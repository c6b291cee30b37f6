package models

import (
	"testing"
	"time"
)

func TestQuizStatusHelpers(t *testing.T) {
	quiz := Quiz{Status: QuizStatusDraft}
	if !quiz.IsDraft() || quiz.IsPublished() {
		t.Fatal("new quiz should be draft")
	}

	quiz.Status = QuizStatusPublished
	if quiz.IsDraft() || !quiz.IsPublished() {
		t.Fatal("published quiz should not report draft")
	}
}

func TestQuizOpenAt(t *testing.T) {
	now := time.Now()

	quiz := Quiz{}
	if !quiz.OpenAt(now) {
		t.Fatal("quiz without a scheduled start should always be open")
	}

	past := now.Add(-time.Hour)
	quiz.StartAt = &past
	if !quiz.OpenAt(now) {
		t.Fatal("quiz scheduled in the past should be open")
	}

	future := now.Add(time.Hour)
	quiz.StartAt = &future
	if quiz.OpenAt(now) {
		t.Fatal("quiz scheduled in the future should not be open")
	}

	quiz.StartAt = &now
	if !quiz.OpenAt(now) {
		t.Fatal("quiz should open exactly at its scheduled start")
	}
}

func TestQuizDeadline(t *testing.T) {
	startedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	quiz := Quiz{}
	if quiz.Deadline(startedAt) != nil {
		t.Fatal("quiz without a time limit has no deadline")
	}

	limit := 30
	quiz.TimeLimitMinutes = &limit
	deadline := quiz.Deadline(startedAt)
	if deadline == nil {
		t.Fatal("timed quiz should have a deadline")
	}
	if want := startedAt.Add(30 * time.Minute); !deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
}

func TestAttemptTimeTaken(t *testing.T) {
	startedAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	attempt := Attempt{StartedAt: startedAt}
	if got := attempt.TimeTakenSeconds(); got != 0 {
		t.Fatalf("in-progress attempt should report 0 seconds, got %d", got)
	}
	if attempt.Completed() {
		t.Fatal("attempt without completion timestamp should be in progress")
	}

	completedAt := startedAt.Add(95 * time.Second)
	attempt.CompletedAt = &completedAt
	if got := attempt.TimeTakenSeconds(); got != 95 {
		t.Fatalf("TimeTakenSeconds = %d, want 95", got)
	}
	if !attempt.Completed() {
		t.Fatal("attempt with completion timestamp should be completed")
	}
}
