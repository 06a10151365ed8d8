package dates

import (
	"context"
	"testing"
	"time"
)

func TestCandidates_RelativePhrase(t *testing.T) {
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecognizer()
	rec.now = func() time.Time { return base }

	got, err := rec.Candidates(context.Background(), "payment due tomorrow per agreement")
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("Candidates found nothing in a text with a date phrase")
	}
	if d := got[0].Sub(base); d <= 0 || d > 48*time.Hour {
		t.Errorf("resolved %v, want within two days after %v", got[0], base)
	}
}

func TestCandidates_NoDates(t *testing.T) {
	rec := NewRecognizer()
	got, err := rec.Candidates(context.Background(), "widgets and gadgets only")
	if err != nil {
		t.Fatalf("Candidates error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Candidates = %v, want none", got)
	}
}

func TestCandidates_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := NewRecognizer()
	if _, err := rec.Candidates(ctx, "due tomorrow"); err == nil {
		t.Fatal("Candidates ignored cancelled context")
	}
}
