package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestJoinOptionIDsIsOrderInsensitive(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	first := JoinOptionIDs([]uuid.UUID{a, b, c})
	second := JoinOptionIDs([]uuid.UUID{c, a, b})

	if first != second {
		t.Errorf("expected identical serialization for equal sets, got %q and %q", first, second)
	}
}

func TestSplitOptionIDsRoundTrip(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	stored := JoinOptionIDs(ids)

	parsed := SplitOptionIDs(stored)
	if len(parsed) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(parsed))
	}
	if JoinOptionIDs(parsed) != stored {
		t.Errorf("round trip changed the stored form: %q vs %q", JoinOptionIDs(parsed), stored)
	}

	if got := SplitOptionIDs(""); got != nil {
		t.Errorf("expected nil for empty stored answer, got %v", got)
	}
}

func TestAnswerIsCorrectExactSetEquality(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	testCases := []struct {
		name     string
		selected []uuid.UUID
		correct  []uuid.UUID
		want     bool
	}{
		{"single choice match", []uuid.UUID{a}, []uuid.UUID{a}, true},
		{"single choice miss", []uuid.UUID{b}, []uuid.UUID{a}, false},
		{"multiple choice exact match", []uuid.UUID{a, b}, []uuid.UUID{b, a}, true},
		{"subset earns nothing", []uuid.UUID{a}, []uuid.UUID{a, b}, false},
		{"superset earns nothing", []uuid.UUID{a, b, c}, []uuid.UUID{a, b}, false},
		{"disjoint", []uuid.UUID{c}, []uuid.UUID{a, b}, false},
		{"no correct set", []uuid.UUID{a}, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AnswerIsCorrect(JoinOptionIDs(tc.selected), tc.correct)
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScoreSessionAllCorrect(t *testing.T) {
	correctSets := make(map[uuid.UUID][]uuid.UUID)
	answers := make(map[uuid.UUID]string)
	for i := 0; i < 4; i++ {
		questionID := uuid.New()
		correct := []uuid.UUID{uuid.New()}
		correctSets[questionID] = correct
		answers[questionID] = JoinOptionIDs(correct)
	}

	score := ScoreSession(correctSets, answers, 90)
	if score.Score != 100 {
		t.Errorf("expected score 100, got %d", score.Score)
	}
	if !score.IsPassed {
		t.Error("expected a perfect session to pass")
	}
	if score.CorrectAnswers != 4 || score.TotalQuestions != 4 {
		t.Errorf("expected 4/4, got %d/%d", score.CorrectAnswers, score.TotalQuestions)
	}
}

func TestScoreSessionTwoOfThree(t *testing.T) {
	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	wrong := uuid.New()

	correctSets := map[uuid.UUID][]uuid.UUID{
		q1: {c1},
		q2: {c2},
		q3: {c3},
	}
	answers := map[uuid.UUID]string{
		q1: JoinOptionIDs([]uuid.UUID{c1}),
		q2: JoinOptionIDs([]uuid.UUID{c2}),
		q3: JoinOptionIDs([]uuid.UUID{wrong}),
	}

	score := ScoreSession(correctSets, answers, 90)
	if score.CorrectAnswers != 2 {
		t.Errorf("expected 2 correct, got %d", score.CorrectAnswers)
	}
	// 200/3 rounds to 67
	if score.Score != 67 {
		t.Errorf("expected score 67, got %d", score.Score)
	}
	if score.IsPassed {
		t.Error("expected 67 not to pass at threshold 90")
	}
}

func TestScoreSessionUnansweredCountsIncorrect(t *testing.T) {
	q1, q2 := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()

	correctSets := map[uuid.UUID][]uuid.UUID{
		q1: {c1},
		q2: {c2},
	}
	answers := map[uuid.UUID]string{
		q1: JoinOptionIDs([]uuid.UUID{c1}),
	}

	score := ScoreSession(correctSets, answers, 50)
	if score.CorrectAnswers != 1 {
		t.Errorf("expected 1 correct, got %d", score.CorrectAnswers)
	}
	if score.Score != 50 {
		t.Errorf("expected score 50, got %d", score.Score)
	}
	if !score.IsPassed {
		t.Error("expected 50 to pass at threshold 50")
	}
}

func TestScoreSessionEmpty(t *testing.T) {
	score := ScoreSession(map[uuid.UUID][]uuid.UUID{}, map[uuid.UUID]string{}, 90)
	if score.Score != 0 || score.IsPassed {
		t.Errorf("expected zero score and no pass for empty set, got %+v", score)
	}
}

func TestScoreSessionPassBoundary(t *testing.T) {
	testCases := []struct {
		name         string
		correct      int
		total        int
		passingScore int
		wantScore    int
		wantPassed   bool
	}{
		{"exactly at threshold", 9, 10, 90, 90, true},
		{"just below threshold", 8, 10, 90, 80, false},
		{"perfect with minimal threshold", 5, 5, 1, 100, true},
		{"perfect with max threshold", 5, 5, 100, 100, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correctSets := make(map[uuid.UUID][]uuid.UUID)
			answers := make(map[uuid.UUID]string)
			for i := 0; i < tc.total; i++ {
				questionID := uuid.New()
				correct := []uuid.UUID{uuid.New()}
				correctSets[questionID] = correct
				if i < tc.correct {
					answers[questionID] = JoinOptionIDs(correct)
				} else {
					answers[questionID] = JoinOptionIDs([]uuid.UUID{uuid.New()})
				}
			}

			score := ScoreSession(correctSets, answers, tc.passingScore)
			if score.Score != tc.wantScore {
				t.Errorf("expected score %d, got %d", tc.wantScore, score.Score)
			}
			if score.IsPassed != tc.wantPassed {
				t.Errorf("expected passed=%v, got %v", tc.wantPassed, score.IsPassed)
			}
		})
	}
}
