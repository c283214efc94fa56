package session

import (
	"math"

	"github.com/lshigami/Snapquiz/internal/model"
)

// ComputeResults partitions the question indices by correctness in index order.
// The log is expected to hold exactly one answer per question.
func ComputeResults(set model.QuizSet, answers []model.QuizAnswer) model.QuizResults {
	total := len(set)
	res := model.QuizResults{
		TotalQuestions:      total,
		AnsweredCorrectly:   []int{},
		AnsweredIncorrectly: []int{},
		Review:              make([]model.ReviewItem, 0, total),
	}

	byIndex := make(map[int]model.QuizAnswer, len(answers))
	for _, a := range answers {
		byIndex[a.QuestionIndex] = a
	}

	for i, q := range set {
		a, answered := byIndex[i]
		correct := answered && a.IsCorrect
		if correct {
			res.AnsweredCorrectly = append(res.AnsweredCorrectly, i)
		} else {
			res.AnsweredIncorrectly = append(res.AnsweredIncorrectly, i)
		}
		res.Review = append(res.Review, model.ReviewItem{
			QuestionIndex:  i,
			Question:       q.Question,
			SelectedAnswer: a.SelectedAnswer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      correct,
			TimedOut:       a.TimedOut,
		})
	}

	res.Score = Score(len(res.AnsweredCorrectly), total)
	return res
}

// Score is round(100*correct/total), or 0 for an empty quiz.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// ReviewSet builds a fresh set from the incorrectly answered questions, in original order.
func ReviewSet(set model.QuizSet, results model.QuizResults) model.QuizSet {
	out := make(model.QuizSet, 0, len(results.AnsweredIncorrectly))
	for _, idx := range results.AnsweredIncorrectly {
		if idx >= 0 && idx < len(set) {
			out = append(out, set[idx])
		}
	}
	return out.Clone()
}
