package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lshigami/Snapquiz/internal/model"
)

const codeFence = "```"

// stripCodeFence removes a ``` or ```json wrapper around the whole response.
func stripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, codeFence) {
		return t
	}
	t = strings.TrimPrefix(t, codeFence)
	if len(t) >= 4 && strings.EqualFold(t[:4], "json") {
		t = t[4:]
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, codeFence)
	return strings.TrimSpace(t)
}

// ParseQuizSet turns raw model text into a validated QuizSet. required is the exact number
// of questions expected; zero or less accepts any non-empty array. Validation stops at the
// first violated rule.
func ParseQuizSet(raw string, required int) (model.QuizSet, error) {
	text := stripCodeFence(raw)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, &GenerationError{Kind: KindNotAnArray}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return nil, &GenerationError{Kind: KindMalformedJSON, Err: err}
	}
	if err := checkCount(len(elems), required); err != nil {
		return nil, err
	}

	set := make(model.QuizSet, 0, len(elems))
	for i, elem := range elems {
		q, err := decodeQuestion(i+1, elem)
		if err != nil {
			return nil, err
		}
		if err := checkOptions(i+1, q); err != nil {
			return nil, err
		}
		set = append(set, q)
	}
	return set, nil
}

// ValidateQuizSet applies the same rules to questions that arrive already decoded, such as a
// set a client hands back to start a session.
func ValidateQuizSet(set model.QuizSet, required int) error {
	if err := checkCount(len(set), required); err != nil {
		return err
	}
	for i, q := range set {
		n := i + 1
		switch {
		case q.ID == "":
			return missingField(n, "id")
		case q.Question == "":
			return missingField(n, "question")
		case q.Options == nil:
			return missingField(n, "options")
		case q.CorrectAnswer == "":
			return missingField(n, "correctAnswer")
		}
		if err := checkOptions(n, q); err != nil {
			return err
		}
	}
	return nil
}

func checkCount(got, required int) error {
	if required > 0 && got != required {
		return &GenerationError{Kind: KindWrongQuestionCount, Detail: fmt.Sprintf("got %d, want %d", got, required)}
	}
	if got == 0 {
		return &GenerationError{Kind: KindWrongQuestionCount, Detail: "got 0, want at least 1"}
	}
	return nil
}

func checkOptions(n int, q model.QuizQuestion) error {
	if len(q.Options) != model.OptionsPerQuestion {
		return &GenerationError{Kind: KindWrongOptionCount, Question: n, Detail: fmt.Sprintf("got %d", len(q.Options))}
	}
	if !q.HasOption(q.CorrectAnswer) {
		return &GenerationError{Kind: KindAnswerNotInOptions, Question: n}
	}
	return nil
}

const (
	fieldAbsent    = ""
	fieldEmpty     = "empty value"
	fieldWrongType = "wrong type"
)

func missingField(n int, field string) error {
	return invalidField(n, field, fieldAbsent)
}

// invalidField reports a field that is absent, empty or of the wrong JSON type. All three are
// MissingField; detail tells them apart in logs.
func invalidField(n int, field, detail string) error {
	return &GenerationError{Kind: KindMissingField, Question: n, Field: field, Detail: detail}
}

// decodeQuestion checks presence and kind of every field. Empty strings count as missing.
func decodeQuestion(n int, elem json.RawMessage) (model.QuizQuestion, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
		return model.QuizQuestion{}, invalidField(n, "id", "question is not an object")
	}

	var q model.QuizQuestion
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"id", &q.ID},
		{"question", &q.Question},
	} {
		if ok, detail := decodeString(obj[f.name], f.dst); !ok {
			return model.QuizQuestion{}, invalidField(n, f.name, detail)
		}
	}

	rawOpts, present := obj["options"]
	switch {
	case !present:
		return model.QuizQuestion{}, missingField(n, "options")
	case json.Unmarshal(rawOpts, &q.Options) != nil:
		return model.QuizQuestion{}, invalidField(n, "options", fieldWrongType)
	case q.Options == nil:
		return model.QuizQuestion{}, invalidField(n, "options", fieldEmpty)
	}
	if ok, detail := decodeString(obj["correctAnswer"], &q.CorrectAnswer); !ok {
		return model.QuizQuestion{}, invalidField(n, "correctAnswer", detail)
	}
	return q, nil
}

// decodeString reports whether raw held a non-empty string, and why not otherwise.
func decodeString(raw json.RawMessage, dst *string) (bool, string) {
	if raw == nil {
		return false, fieldAbsent
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fieldWrongType
	}
	if *dst == "" {
		return false, fieldEmpty
	}
	return true, ""
}
