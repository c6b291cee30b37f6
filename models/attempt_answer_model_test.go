package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestOptionIDsJSONRoundTrip(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	answer := AttemptAnswer{
		SelectedOptionIDs: OptionIDsJSON(ids),
		CorrectOptionIDs:  OptionIDsJSON(nil),
	}

	selected := answer.SelectedIDs()
	if len(selected) != 2 || selected[0] != ids[0] || selected[1] != ids[1] {
		t.Fatalf("SelectedIDs round trip failed: %v", selected)
	}

	if got := answer.CorrectIDs(); len(got) != 0 {
		t.Fatalf("nil option set should decode as empty, got %v", got)
	}
	if string(answer.CorrectOptionIDs) != "[]" {
		t.Fatalf("nil option set should be stored as [], got %s", answer.CorrectOptionIDs)
	}
}
