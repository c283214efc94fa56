package model

// OptionsPerQuestion is the number of choices every question must offer.
const OptionsPerQuestion = 4

// QuizQuestion is a single multiple-choice question produced from model output.
// It is treated as immutable once validated.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// HasOption reports whether answer equals one of the options exactly.
func (q QuizQuestion) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// QuizSet is the ordered, validated list of questions for one session.
type QuizSet []QuizQuestion

// Clone returns a deep copy so callers cannot mutate a set another session owns.
func (s QuizSet) Clone() QuizSet {
	if s == nil {
		return nil
	}
	out := make(QuizSet, len(s))
	for i, q := range s {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
