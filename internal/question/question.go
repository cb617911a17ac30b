package question

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/hashstructure/v2"
)

// Question is an immutable prompt paired with an answer of any type.
// Two questions are equal when text, difficulty and answer match, with
// the answer compared structurally rather than by identity.
type Question[T any] struct {
	questionText string
	answer       T
	difficulty   Difficulty
}

// New builds a question. It never fails.
func New[T any](questionText string, answer T, difficulty Difficulty) Question[T] {
	return Question[T]{
		questionText: questionText,
		answer:       answer,
		difficulty:   difficulty,
	}
}

func (q Question[T]) Text() string           { return q.questionText }
func (q Question[T]) Answer() T              { return q.answer }
func (q Question[T]) Difficulty() Difficulty { return q.difficulty }

// answerOptions make cmp follow unexported fields, compare floats by bit
// pattern (NaN equals NaN) and funcs by code pointer, so equality stays
// reflexive and agrees with Hash.
var answerOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.FilterPath(pathKind(reflect.Float32, reflect.Float64), cmp.Comparer(func(x, y any) bool {
		a, b := reflect.ValueOf(x).Float(), reflect.ValueOf(y).Float()
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		if reflect.TypeOf(x).Kind() == reflect.Float32 {
			return math.Float32bits(float32(a)) == math.Float32bits(float32(b))
		}
		return math.Float64bits(a) == math.Float64bits(b)
	})),
	cmp.FilterPath(pathKind(reflect.Func), cmp.Comparer(func(x, y any) bool {
		return reflect.ValueOf(x).Pointer() == reflect.ValueOf(y).Pointer()
	})),
}

func pathKind(kinds ...reflect.Kind) func(cmp.Path) bool {
	return func(p cmp.Path) bool {
		t := p.Last().Type()
		if t == nil {
			return false
		}
		for _, k := range kinds {
			if t.Kind() == k {
				return true
			}
		}
		return false
	}
}

// Equal reports structural equality of all three fields.
func (q Question[T]) Equal(other Question[T]) bool {
	return q.questionText == other.questionText &&
		q.difficulty == other.difficulty &&
		cmp.Equal(q.answer, other.answer, answerOptions...)
}

// Hash is consistent with Equal: equal questions hash identically.
// The answer is left out of the digest when hashstructure could disagree
// with Equal on it (see hashableAnswer), leaving only text and difficulty.
func (q Question[T]) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(q.questionText)
	_, _ = d.Write([]byte{0, byte(q.difficulty)})
	if !hashableAnswer(reflect.ValueOf(&q.answer).Elem(), map[visit]bool{}) {
		return d.Sum64()
	}
	if h, err := hashstructure.Hash(q.answer, hashstructure.FormatV2, nil); err == nil {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// hashableAnswer reports whether hashstructure can hash v in agreement
// with Equal. It fails for values containing a type with its own Equal or
// Hash method (cmp and hashstructure honour those differently), funcs,
// channels, complex numbers, and cycles, which hashstructure would recurse into forever.
// onPath holds the references on the current walk only, so shared
// acyclic references are fine.
func hashableAnswer(v reflect.Value, onPath map[visit]bool) bool {
	if !v.IsValid() {
		return true
	}
	t := v.Type()
	if hasMethod(t, "Equal") || hasMethod(t, "Hash") {
		return false
	}

	switch v.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return hashableAnswer(v.Elem(), onPath)
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() || (v.Kind() == reflect.Slice && v.Len() == 0) {
			return true
		}
		key := visit{ptr: v.Pointer(), typ: t}
		if onPath[key] {
			return false
		}
		onPath[key] = true
		defer delete(onPath, key)
	}

	switch v.Kind() {
	case reflect.Pointer:
		return hashableAnswer(v.Elem(), onPath)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !hashableAnswer(v.Field(i), onPath) {
				return false
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !hashableAnswer(v.Index(i), onPath) {
				return false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !hashableAnswer(iter.Key(), onPath) || !hashableAnswer(iter.Value(), onPath) {
				return false
			}
		}
	}
	return true
}

func hasMethod(t reflect.Type, name string) bool {
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		_, ok := reflect.PointerTo(t).MethodByName(name)
		return ok
	}
	return false
}

func (q Question[T]) String() string {
	return fmt.Sprintf("Question(questionText=%s, answer=%v, difficulty=%s)",
		q.questionText, q.answer, q.difficulty)
}

// Patch selects the fields CopyWith overrides. Nil fields keep the source value.
type Patch[T any] struct {
	QuestionText *string
	Answer       *T
	Difficulty   *Difficulty
}

// CopyWith returns a new question with the patched fields replaced.
// The receiver is left untouched.
func (q Question[T]) CopyWith(p Patch[T]) Question[T] {
	out := q
	if p.QuestionText != nil {
		out.questionText = *p.QuestionText
	}
	if p.Answer != nil {
		out.answer = *p.Answer
	}
	if p.Difficulty != nil {
		out.difficulty = *p.Difficulty
	}
	return out
}

func (q Question[T]) WithText(questionText string) Question[T] {
	return q.CopyWith(Patch[T]{QuestionText: &questionText})
}

func (q Question[T]) WithAnswer(answer T) Question[T] {
	return q.CopyWith(Patch[T]{Answer: &answer})
}

func (q Question[T]) WithDifficulty(difficulty Difficulty) Question[T] {
	return q.CopyWith(Patch[T]{Difficulty: &difficulty})
}

type questionJSON[T any] struct {
	QuestionText string     `json:"questionText"`
	Answer       T          `json:"answer"`
	Difficulty   Difficulty `json:"difficulty"`
}

func (q Question[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON[T]{
		QuestionText: q.questionText,
		Answer:       q.answer,
		Difficulty:   q.difficulty,
	})
}

// UnmarshalJSON rejects missing answers and answers whose JSON type does
// not fit T with ErrTypeMismatch, and missing or unknown difficulties with
// ErrInvalidDifficulty.
func (q *Question[T]) UnmarshalJSON(data []byte) error {
	var wire struct {
		QuestionText string          `json:"questionText"`
		Answer       json.RawMessage `json:"answer"`
		Difficulty   Difficulty      `json:"difficulty"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode question: %w", err)
	}
	if !wire.Difficulty.Valid() {
		return fmt.Errorf("%w: missing", ErrInvalidDifficulty)
	}
	if len(wire.Answer) == 0 {
		return fmt.Errorf("%w: missing answer", ErrTypeMismatch)
	}

	var answer T
	if err := json.Unmarshal(wire.Answer, &answer); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: cannot use JSON %s as %s", ErrTypeMismatch, typeErr.Value, typeErr.Type)
		}
		return fmt.Errorf("decode answer: %w", err)
	}
	*q = New(wire.QuestionText, answer, wire.Difficulty)
	return nil
}
