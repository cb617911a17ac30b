package question

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tags the answer type carried by an Entry.
type Kind string

const (
	KindText   Kind = "text"
	KindFlag   Kind = "flag"
	KindNumber Kind = "number"
)

// Entry lets questions with different answer types share one sequence.
// The set of implementations is closed: TextQuestion, FlagQuestion and
// NumberQuestion.
type Entry interface {
	Kind() Kind
	Text() string
	Difficulty() Difficulty
	String() string

	entry()
}

type TextQuestion struct{ Question[string] }

type FlagQuestion struct{ Question[bool] }

type NumberQuestion struct{ Question[int] }

func (TextQuestion) Kind() Kind   { return KindText }
func (FlagQuestion) Kind() Kind   { return KindFlag }
func (NumberQuestion) Kind() Kind { return KindNumber }

func (TextQuestion) entry()   {}
func (FlagQuestion) entry()   {}
func (NumberQuestion) entry() {}

// AnswerOf unwraps the answer of any entry. A nil entry yields nil.
func AnswerOf(e Entry) any {
	switch v := e.(type) {
	case nil:
		return nil
	case TextQuestion:
		return v.Answer()
	case FlagQuestion:
		return v.Answer()
	case NumberQuestion:
		return v.Answer()
	default:
		panic(fmt.Sprintf("question: unexpected entry type %T", e))
	}
}

type catalogItem struct {
	Kind         Kind       `yaml:"kind"`
	QuestionText string     `yaml:"questionText"`
	Answer       yaml.Node  `yaml:"answer"`
	Difficulty   Difficulty `yaml:"difficulty"`
}

// ParseCatalog decodes a YAML (or JSON) list of
// {kind, questionText, answer, difficulty} records into entries.
func ParseCatalog(data []byte) ([]Entry, error) {
	var items []catalogItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		e, err := item.toEntry()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (c catalogItem) toEntry() (Entry, error) {
	if !c.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: missing", ErrInvalidDifficulty)
	}

	switch c.Kind {
	case KindText:
		var answer string
		if err := decodeAnswer(&c.Answer, "!!str", &answer); err != nil {
			return nil, err
		}
		return TextQuestion{New(c.QuestionText, answer, c.Difficulty)}, nil
	case KindFlag:
		var answer bool
		if err := decodeAnswer(&c.Answer, "!!bool", &answer); err != nil {
			return nil, err
		}
		return FlagQuestion{New(c.QuestionText, answer, c.Difficulty)}, nil
	case KindNumber:
		var answer int
		if err := decodeAnswer(&c.Answer, "!!int", &answer); err != nil {
			return nil, err
		}
		return NumberQuestion{New(c.QuestionText, answer, c.Difficulty)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

func decodeAnswer(node *yaml.Node, tag string, out any) error {
	if node.Kind == 0 {
		return fmt.Errorf("%w: missing answer", ErrTypeMismatch)
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != tag {
		return fmt.Errorf("%w: line %d: want %s, got %s", ErrTypeMismatch, node.Line, tag, node.ShortTag())
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrTypeMismatch, node.Line, err)
	}
	return nil
}
