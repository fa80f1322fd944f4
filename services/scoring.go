package services

import (
	"strconv"

	"quizarena/models"
)

// defaultQuestionPoints is awarded when a question carries no point value.
// The stored document cannot distinguish a missing value from an explicit
// zero, so zero-point questions also score the default.
const defaultQuestionPoints = 10

// AnswerSubmission is one submitted answer as sent by a client.
type AnswerSubmission struct {
	QuestionID     string `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

// questionIdentifier resolves a question's identifier: the explicit id when
// present, otherwise the question's zero-based position in the quiz. The
// same rule is applied when serving quizzes (StripAnswers), so ids
// round-trip between serving and scoring.
func questionIdentifier(question *models.Question, index int) string {
	if question.ID != nil {
		return strconv.Itoa(*question.ID)
	}
	return strconv.Itoa(index)
}

// ScoreQuiz computes the total score and per-answer breakdown for a set of
// submitted answers against a quiz. It is a pure function of its inputs:
// same quiz and answers always produce the same result.
//
// A submitted answer is correct iff its selected option string equals the
// question's correct answer exactly. Correct answers contribute the
// question's point value (default 10); answers referencing unknown
// question ids are skipped rather than rejected, so partial or malformed
// submissions still score deterministically.
func ScoreQuiz(quiz *models.Quiz, answers []AnswerSubmission) (int, []models.UserAnswer) {
	total := 0
	breakdown := make([]models.UserAnswer, 0, len(answers))

	for _, answer := range answers {
		for index := range quiz.Questions {
			question := &quiz.Questions[index]
			if questionIdentifier(question, index) != answer.QuestionID {
				continue
			}

			correct := answer.SelectedOption == question.CorrectAnswer
			if correct {
				points := question.Points
				if points <= 0 {
					points = defaultQuestionPoints
				}
				total += points
			}

			breakdown = append(breakdown, models.UserAnswer{
				QuestionID:     answer.QuestionID,
				SelectedOption: answer.SelectedOption,
				IsCorrect:      correct,
			})
			break
		}
	}

	return total, breakdown
}

// StripAnswers returns a client-safe copy of a quiz: correct answers are
// removed and every question carries its resolved identifier, so the ids a
// client submits later match what ScoreQuiz resolves.
func StripAnswers(quiz *models.Quiz) *models.Quiz {
	stripped := *quiz
	stripped.Questions = make([]models.Question, len(quiz.Questions))

	for index, question := range quiz.Questions {
		q := question
		q.CorrectAnswer = ""
		if q.ID == nil {
			position := index
			q.ID = &position
		}
		stripped.Questions[index] = q
	}
	return &stripped
}
