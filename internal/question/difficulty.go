package question

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty is the closed set of levels a question can carry.
type Difficulty uint8

const (
	Easy Difficulty = iota + 1
	Normal
	Hard
)

var difficultyNames = map[Difficulty]string{
	Easy:   "Easy",
	Normal: "Normal",
	Hard:   "Hard",
}

// Difficulties lists every level from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard}
}

// ParseDifficulty maps a label such as "EASY" or "hard" onto its level.
// Matching ignores case; any other label fails with ErrInvalidDifficulty.
func ParseDifficulty(label string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if strings.EqualFold(label, difficultyNames[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, label)
}

// Valid reports whether d is one of the declared levels.
func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML accepts scalar labels only.
func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a label", ErrInvalidDifficulty, node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}
