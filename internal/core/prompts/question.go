// Package prompts declares the interactive questions of the adaptation
// project wizard and runs them in the terminal.
//
// Questions are plain values. Their When, Default, Choices and Validate
// closures capture the services of a prompt flow, so the wizard logic can be
// tested without a terminal.
package prompts

import (
	"context"
	"fmt"
)

// QuestionType selects the input widget.
type QuestionType string

const (
	List     QuestionType = "list"
	Input    QuestionType = "input"
	Password QuestionType = "password"
	Confirm  QuestionType = "confirm"
	Editor   QuestionType = "editor"
)

// Choice is one entry of a list question.
type Choice struct {
	Name  string
	Value string
}

// Answers collects the values given so far, keyed by question name.
type Answers map[string]any

// String returns the answer for name as a string.
func (a Answers) String(name string) string {
	switch v := a[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the answer for name as a bool.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Question is one step of a prompt flow.
type Question struct {
	Type     QuestionType
	Name     string
	Message  string
	Guide    string
	Choices  func(ctx context.Context, answers Answers) ([]Choice, error)
	Default  func(answers Answers) any
	When     func(answers Answers) bool
	Validate func(ctx context.Context, value any, answers Answers) error
}

// Applies reports whether the question is asked for answers.
func (q Question) Applies(answers Answers) bool {
	return q.When == nil || q.When(answers)
}

// DefaultValue evaluates the default for answers.
func (q Question) DefaultValue(answers Answers) any {
	if q.Default == nil {
		return nil
	}
	return q.Default(answers)
}

// Check runs the validator, if any.
func (q Question) Check(ctx context.Context, value any, answers Answers) error {
	if q.Validate == nil {
		return nil
	}
	return q.Validate(ctx, value, answers)
}

// Prompter asks a list of questions.
type Prompter interface {
	Ask(ctx context.Context, questions []Question) (Answers, error)
}

// StaticPrompter answers from a fixed map. Questions without an entry take
// their default. Every applicable answer is validated.
type StaticPrompter struct {
	Values Answers
}

// Ask implements Prompter.
func (s StaticPrompter) Ask(ctx context.Context, questions []Question) (Answers, error) {
	answers := Answers{}
	for _, q := range questions {
		if !q.Applies(answers) {
			continue
		}
		value, ok := s.Values[q.Name]
		if !ok {
			if value, ok = s.fallback(ctx, q, answers); !ok {
				return answers, fmt.Errorf("%s: no answer given", q.Name)
			}
		}
		if err := q.Check(ctx, value, answers); err != nil {
			return answers, fmt.Errorf("%s: %w", q.Name, err)
		}
		answers[q.Name] = value
	}
	return answers, nil
}

// fallback returns the default of q, or its first choice for list questions.
func (s StaticPrompter) fallback(ctx context.Context, q Question, answers Answers) (any, bool) {
	var choices []Choice
	if q.Choices != nil {
		var err error
		if choices, err = q.Choices(ctx, answers); err != nil {
			return nil, false
		}
	}
	if value := q.DefaultValue(answers); value != nil {
		return value, true
	}
	if len(choices) > 0 {
		return choices[0].Value, true
	}
	switch q.Type {
	case Confirm:
		return false, true
	case Input:
		return "", true
	}
	return nil, false
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
