package service

import (
	"fmt"
)

// ErrorKind classifies why a quiz generation attempt failed.
type ErrorKind int

const (
	KindNotAnArray ErrorKind = iota + 1
	KindMalformedJSON
	KindWrongQuestionCount
	KindMissingField
	KindWrongOptionCount
	KindAnswerNotInOptions
	KindTransportFailure
	KindExhaustedRetries
)

var kindNames = map[ErrorKind]string{
	KindNotAnArray:         "NotAnArray",
	KindMalformedJSON:      "MalformedJSON",
	KindWrongQuestionCount: "WrongQuestionCount",
	KindMissingField:       "MissingField",
	KindWrongOptionCount:   "WrongOptionCount",
	KindAnswerNotInOptions: "AnswerNotInOptions",
	KindTransportFailure:   "TransportFailure",
	KindExhaustedRetries:   "ExhaustedRetries",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// GenerationError is returned by the quiz pipeline. Question is the 1-based index of the
// offending question, or 0 when the failure is not tied to one.
type GenerationError struct {
	Kind     ErrorKind
	Question int
	Field    string
	Detail   string
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindNotAnArray:
		return "response is not a JSON array"
	case KindMalformedJSON:
		return fmt.Sprintf("response is not valid JSON: %v", e.Err)
	case KindWrongQuestionCount:
		return "invalid number of questions: " + e.Detail
	case KindMissingField:
		if e.Detail != "" {
			return fmt.Sprintf("question %d has invalid required field %q: %s", e.Question, e.Field, e.Detail)
		}
		return fmt.Sprintf("question %d is missing required field %q", e.Question, e.Field)
	case KindWrongOptionCount:
		return fmt.Sprintf("question %d must have exactly 4 options, %s", e.Question, e.Detail)
	case KindAnswerNotInOptions:
		return fmt.Sprintf("question %d correct answer must match one of the options", e.Question)
	case KindTransportFailure:
		return fmt.Sprintf("model gateway request failed: %v", e.Err)
	case KindExhaustedRetries:
		return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Retryable reports whether resubmitting the whole request may succeed.
func (e *GenerationError) Retryable() bool { return e.Kind != KindExhaustedRetries }
