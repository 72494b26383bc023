package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
	ShortAnswer    QuestionType = "SHORT_ANSWER"
)

// Question is one entry of a module's question bank.
//
// Options is required for MULTIPLE_CHOICE and must contain the correct
// answer's text; for the other types it is empty. CorrectAnswer is a
// string, except for TRUE_FALSE where it is a boolean.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type" validate:"required,question_type"`
	Text          string       `json:"text" validate:"required"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer AnswerValue  `json:"correctAnswer"`
}

// AnswerValue holds a submitted or correct answer. The persisted form is
// `string | boolean`, so the zero-ish union is kept explicit instead of
// using interface{} everywhere.
type AnswerValue struct {
	Text   string
	Bool   bool
	IsBool bool
}

func StringAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

func BoolAnswer(b bool) AnswerValue {
	return AnswerValue{Bool: b, IsBool: true}
}

// AsBool coerces the value to a boolean for TRUE_FALSE grading. Strings
// other than "true"/"false" do not coerce.
func (a AnswerValue) AsBool() (bool, bool) {
	if a.IsBool {
		return a.Bool, true
	}
	switch strings.ToLower(strings.TrimSpace(a.Text)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// String returns the textual form ("true"/"false" for booleans).
func (a AnswerValue) String() string {
	if a.IsBool {
		if a.Bool {
			return "true"
		}
		return "false"
	}
	return a.Text
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.IsBool {
		return json.Marshal(a.Bool)
	}
	return json.Marshal(a.Text)
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = BoolAnswer(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = StringAnswer(s)
		return nil
	}
	return fmt.Errorf("answer value must be a string or boolean, got %s", string(data))
}
