package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind discriminates the AnswerData union.
type AnswerKind string

const (
	KindChoice  AnswerKind = "mcq_single"
	KindChoices AnswerKind = "mcq_multi"
	KindText    AnswerKind = "text"
)

// AnswerData is a learner response. Exactly one of Value or Values is meaningful,
// depending on Kind: KindChoices uses Values, the other kinds use Value.
type AnswerData struct {
	Kind   AnswerKind
	Value  string
	Values []string
}

func Choice(v string) AnswerData { return AnswerData{Kind: KindChoice, Value: v} }
func Choices(v ...string) AnswerData { return AnswerData{Kind: KindChoices, Values: v} }
func Text(v string) AnswerData { return AnswerData{Kind: KindText, Value: v} }

// Plain renders the answer as one string, one value per line for KindChoices.
func (a AnswerData) Plain() string {
	if a.Kind == KindChoices {
		return strings.Join(a.Values, "\n")
	}
	return a.Value
}

// ErrEmptyAnswer is returned by ParseAnswer for null or blank payloads.
var ErrEmptyAnswer = errors.New("answer is required")

type taggedAnswer struct {
	Type  AnswerKind      `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (a AnswerData) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindChoices:
		values := a.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(struct {
			Type  AnswerKind `json:"type"`
			Value []string   `json:"value"`
		}{a.Kind, values})
	case KindChoice, KindText:
		return json.Marshal(struct {
			Type  AnswerKind `json:"type"`
			Value string     `json:"value"`
		}{a.Kind, a.Value})
	default:
		return nil, fmt.Errorf("unknown answer kind %q", a.Kind)
	}
}

func (a *AnswerData) UnmarshalJSON(b []byte) error {
	var t taggedAnswer
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	switch t.Type {
	case KindChoices:
		values, err := coerceStrings(t.Value)
		if err != nil {
			return err
		}
		*a = Choices(values...)
	case KindChoice, KindText:
		v, err := coerceString(t.Value)
		if err != nil {
			return err
		}
		*a = AnswerData{Kind: t.Type, Value: v}
	default:
		return fmt.Errorf("unknown answer type %q", t.Type)
	}
	return nil
}

// ParseAnswer decodes what a client sent for a question of type qt. Both the tagged
// form ({"type":...,"value":...}) and bare JSON values are accepted; bare values are
// coerced by question type.
func ParseAnswer(qt QuestionType, raw json.RawMessage) (AnswerData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return AnswerData{}, ErrEmptyAnswer
	}

	if trimmed[0] == '{' {
		var a AnswerData
		if err := json.Unmarshal(trimmed, &a); err != nil {
			return AnswerData{}, fmt.Errorf("malformed answer object: %w", err)
		}
		return a, nil
	}

	if trimmed[0] == '[' {
		values, err := coerceStrings(trimmed)
		if err != nil {
			return AnswerData{}, err
		}
		switch qt {
		case TypeMCQSingle:
			if len(values) == 1 {
				return Choice(values[0]), nil
			}
			return Choices(values...), nil
		case TypeMCQMulti:
			return Choices(values...), nil
		case TypeWritingPrompt, TypeSpeakingPrompt:
			return Text(strings.Join(values, "\n")), nil
		default:
			if len(values) == 1 {
				return Text(values[0]), nil
			}
			return Choices(values...), nil
		}
	}

	v, err := coerceString(trimmed)
	if err != nil {
		return AnswerData{}, err
	}
	switch qt {
	case TypeMCQSingle:
		return Choice(v), nil
	case TypeMCQMulti:
		return Choices(v), nil
	default:
		return Text(v), nil
	}
}

// coerceString turns a JSON string, number or bool into a string.
func coerceString(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("malformed answer: %w", err)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", ErrEmptyAnswer
	default:
		return "", fmt.Errorf("answer must be a string, got %T", v)
	}
}

func coerceStrings(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("answer must be an array: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, err := coerceString(it)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
