package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"EASY":   Easy,
		"easy":   Easy,
		"Normal": Normal,
		"hArD":   Hard,
	}
	for label, want := range cases {
		got, err := ParseDifficulty(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}
}

func TestParseDifficultyRejectsUnknownLabels(t *testing.T) {
	for _, label := range []string{"MEDIUM", "", " easy", "3"} {
		_, err := ParseDifficulty(label)
		assert.ErrorIs(t, err, ErrInvalidDifficulty, label)
	}
}

func TestDifficultyString(t *testing.T) {
	assert.Equal(t, "Easy", Easy.String())
	assert.Equal(t, "Normal", Normal.String())
	assert.Equal(t, "Hard", Hard.String())
	assert.Equal(t, "Difficulty(0)", Difficulty(0).String())
	assert.Equal(t, []Difficulty{Easy, Normal, Hard}, Difficulties())
}

func TestDifficultyTextCodec(t *testing.T) {
	data, err := json.Marshal(map[string]Difficulty{"d": Normal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"Normal"}`, string(data))

	var decoded struct {
		D Difficulty `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"HARD"}`), &decoded))
	assert.Equal(t, Hard, decoded.D)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"d":"MEDIUM"}`), &decoded), ErrInvalidDifficulty)

	_, err = Difficulty(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestDifficultyYAML(t *testing.T) {
	var d Difficulty
	require.NoError(t, yaml.Unmarshal([]byte(`easy`), &d))
	assert.Equal(t, Easy, d)

	assert.ErrorIs(t, yaml.Unmarshal([]byte(`MEDIUM`), &d), ErrInvalidDifficulty)
	assert.ErrorIs(t, yaml.Unmarshal([]byte(`[easy]`), &d), ErrInvalidDifficulty)
}
