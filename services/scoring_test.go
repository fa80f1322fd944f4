package services

import (
	"strconv"
	"testing"

	"quizarena/models"
)

func scoringQuiz() *models.Quiz {
	return &models.Quiz{
		Title: "Mixed",
		Questions: []models.Question{
			{ID: intPtr(7), Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", Points: 10},
			{Text: "Sky color?", Options: []string{"blue", "green"}, CorrectAnswer: "blue", Points: 15},
			{Text: "No points set", Options: []string{"yes", "no"}, CorrectAnswer: "yes"},
		},
	}
}

func TestScoreQuiz(t *testing.T) {
	quiz := scoringQuiz()
	answers := []AnswerSubmission{
		{QuestionID: "7", SelectedOption: "4"},    // explicit id, correct, 10 pts
		{QuestionID: "1", SelectedOption: "blue"}, // positional id, correct, 15 pts
		{QuestionID: "2", SelectedOption: "no"},   // positional id, wrong
	}

	total, breakdown := ScoreQuiz(quiz, answers)
	if total != 25 {
		t.Errorf("expected total 25, got %d", total)
	}
	if len(breakdown) != 3 {
		t.Fatalf("expected 3 breakdown entries, got %d", len(breakdown))
	}
	if !breakdown[0].IsCorrect || !breakdown[1].IsCorrect || breakdown[2].IsCorrect {
		t.Errorf("unexpected correctness flags: %+v", breakdown)
	}
}

func TestScoreQuizDeterministic(t *testing.T) {
	quiz := scoringQuiz()
	answers := []AnswerSubmission{
		{QuestionID: "7", SelectedOption: "4"},
		{QuestionID: "1", SelectedOption: "green"},
	}

	first, _ := ScoreQuiz(quiz, answers)
	second, _ := ScoreQuiz(quiz, answers)
	if first != second {
		t.Errorf("same inputs scored differently: %d vs %d", first, second)
	}
	if first != 10 {
		t.Errorf("expected 10, got %d", first)
	}
}

func TestScoreQuizSkipsUnknownIDs(t *testing.T) {
	quiz := scoringQuiz()
	answers := []AnswerSubmission{
		{QuestionID: "999", SelectedOption: "4"},
		{QuestionID: "7", SelectedOption: "4"},
	}

	total, breakdown := ScoreQuiz(quiz, answers)
	if total != 10 {
		t.Errorf("unknown id must not score, got total %d", total)
	}
	if len(breakdown) != 1 || breakdown[0].QuestionID != "7" {
		t.Errorf("unknown id must be skipped from breakdown: %+v", breakdown)
	}
}

func TestScoreQuizDefaultPoints(t *testing.T) {
	quiz := scoringQuiz()
	answers := []AnswerSubmission{{QuestionID: "2", SelectedOption: "yes"}}

	total, _ := ScoreQuiz(quiz, answers)
	if total != defaultQuestionPoints {
		t.Errorf("expected default %d points, got %d", defaultQuestionPoints, total)
	}
}

func TestScoreQuizExactMatchOnly(t *testing.T) {
	quiz := scoringQuiz()
	answers := []AnswerSubmission{{QuestionID: "1", SelectedOption: "Blue"}}

	total, breakdown := ScoreQuiz(quiz, answers)
	if total != 0 || breakdown[0].IsCorrect {
		t.Errorf("option comparison must be exact, got total %d", total)
	}
}

func TestScoreQuizEmptySubmission(t *testing.T) {
	total, breakdown := ScoreQuiz(scoringQuiz(), nil)
	if total != 0 || len(breakdown) != 0 {
		t.Errorf("empty submission must score zero, got %d with %d entries", total, len(breakdown))
	}
}

// Ids handed out by StripAnswers must be the ids ScoreQuiz resolves, for
// quizzes with and without explicit question ids.
func TestStripAnswersRoundTrip(t *testing.T) {
	quiz := scoringQuiz()
	served := StripAnswers(quiz)

	var answers []AnswerSubmission
	for i, question := range served.Questions {
		if question.CorrectAnswer != "" {
			t.Fatalf("question %d still carries its answer", i)
		}
		if question.ID == nil {
			t.Fatalf("question %d has no resolved id", i)
		}
		// Answer every question correctly using the served ids.
		answers = append(answers, AnswerSubmission{
			QuestionID:     strconv.Itoa(*question.ID),
			SelectedOption: quiz.Questions[i].CorrectAnswer,
		})
	}

	total, breakdown := ScoreQuiz(quiz, answers)
	if total != 35 {
		t.Errorf("expected full score 35, got %d", total)
	}
	for _, entry := range breakdown {
		if !entry.IsCorrect {
			t.Errorf("expected all correct, got %+v", entry)
		}
	}
}

func TestStripAnswersDoesNotMutateOriginal(t *testing.T) {
	quiz := scoringQuiz()
	StripAnswers(quiz)

	if quiz.Questions[0].CorrectAnswer != "4" {
		t.Errorf("original quiz mutated: %+v", quiz.Questions[0])
	}
	if quiz.Questions[1].ID != nil {
		t.Errorf("original quiz gained an id: %+v", quiz.Questions[1])
	}
}
