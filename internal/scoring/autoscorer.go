// Package scoring is the autoscorer: a pure mapping from (question type, answer key,
// submitted answer, weight) to correctness and score. It performs no I/O.
package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultWeight applies when the set composition carries no score override.
const DefaultWeight = 1.0

// Result of scoring one answer. A nil IsCorrect means "not automatically gradable";
// in that case Score is nil too.
type Result struct {
	IsCorrect *bool
	Score     *float64

	// Degraded is set when a malformed key or answer shape forced a null result
	// for a type that is normally auto-scored. Reason says why.
	Degraded bool
	Reason   string
}

var errMalformedKey = errors.New("malformed answer key")

// Score never fails: any problem comparing key and answer degrades to a null result.
func Score(qt QuestionType, answerKey json.RawMessage, answer AnswerData, weight float64) Result {
	if qt.IsFreeResponse() {
		return Result{Reason: "manual grading required"}
	}

	var (
		correct bool
		err     error
	)
	switch qt {
	case TypeMCQSingle:
		correct, err = scoreSingle(answerKey, answer)
	case TypeMCQMulti:
		correct, err = scoreMulti(answerKey, answer)
	case TypeFillBlank:
		correct, err = scoreFillBlank(answerKey, answer)
	default:
		err = fmt.Errorf("unsupported question type %q", qt)
	}
	if err != nil {
		return Result{Degraded: true, Reason: err.Error()}
	}

	score := 0.0
	if correct {
		score = weight
	}
	return Result{IsCorrect: &correct, Score: &score}
}

// ResolveWeight returns the set-composition override, or DefaultWeight.
func ResolveWeight(override *float64) float64 {
	if override != nil {
		return *override
	}
	return DefaultWeight
}

func scoreSingle(answerKey json.RawMessage, answer AnswerData) (bool, error) {
	key, err := decodeKey(answerKey)
	if err != nil {
		return false, err
	}
	got, err := singleValue(answer)
	if err != nil {
		return false, err
	}
	return normalize(got) == normalize(key[0]), nil
}

func scoreMulti(answerKey json.RawMessage, answer AnswerData) (bool, error) {
	key, err := decodeKey(answerKey)
	if err != nil {
		return false, err
	}
	var got []string
	switch answer.Kind {
	case KindChoices:
		got = answer.Values
	case KindChoice, KindText:
		got = []string{answer.Value}
	default:
		return false, fmt.Errorf("unexpected answer kind %q", answer.Kind)
	}
	return setEqual(toSet(key), toSet(got)), nil
}

func scoreFillBlank(answerKey json.RawMessage, answer AnswerData) (bool, error) {
	key, err := decodeKey(answerKey)
	if err != nil {
		return false, err
	}
	got, err := singleValue(answer)
	if err != nil {
		return false, err
	}
	n := normalize(got)
	for _, variant := range key {
		if normalize(variant) == n {
			return true, nil
		}
	}
	return false, nil
}

func singleValue(answer AnswerData) (string, error) {
	switch answer.Kind {
	case KindChoice, KindText:
		return answer.Value, nil
	case KindChoices:
		if len(answer.Values) == 1 {
			return answer.Values[0], nil
		}
		return "", fmt.Errorf("expected one value, got %d", len(answer.Values))
	default:
		return "", fmt.Errorf("unexpected answer kind %q", answer.Kind)
	}
}

// decodeKey accepts a JSON array of accepted values or a bare string.
func decodeKey(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errMalformedKey
	}
	var key []string
	if raw[0] == '[' {
		values, err := coerceStrings(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedKey, err)
		}
		key = values
	} else {
		v, err := coerceString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedKey, err)
		}
		key = []string{v}
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty", errMalformedKey)
	}
	return key, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[normalize(v)] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
