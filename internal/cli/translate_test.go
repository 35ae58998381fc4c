package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/strand/internal/model"
)

func TestTranslate_Text(t *testing.T) {
	out, err := executeRoot(t, "translate", "all", "single", "word", "palindromic", "strings")
	require.NoError(t, err)
	assert.Equal(t,
		"query: all single word palindromic strings\nfilters: {\"is_palindrome\":true,\"word_count\":1}\n",
		out)
}

func TestTranslate_JSON(t *testing.T) {
	out, err := executeRoot(t, "--format", "json", "translate", "strings longer than 10 containing the letter z")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Original      string          `json:"original"`
			ParsedFilters model.FilterSet `json:"parsed_filters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "strings longer than 10 containing the letter z", resp.Data.Original)
	assert.Equal(t, model.FilterSet{MinLength: model.Int(11), ContainsCharacter: model.String("z")}, resp.Data.ParsedFilters)
}

func TestTranslate_YAMLInlinesInterpretation(t *testing.T) {
	out, err := executeRoot(t, "--format", "yaml", "translate", "palindromic")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Original      string          `yaml:"original"`
			ParsedFilters model.FilterSet `yaml:"parsed_filters"`
		} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "palindromic", resp.Data.Original)
	assert.Equal(t, model.FilterSet{IsPalindrome: model.Bool(true)}, resp.Data.ParsedFilters)
}

func TestTranslate_Unrecognized(t *testing.T) {
	out, err := executeRoot(t, "translate", "show me everything")
	require.NoError(t, err)
	assert.Equal(t, "query: show me everything\nfilters: {}\n", out)
}

func TestTranslate_BlankQuery(t *testing.T) {
	out, err := executeRoot(t, "translate", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [EMPTY_QUERY]: query must not be blank\n", out)
}

func TestTranslate_RequiresArgument(t *testing.T) {
	_, err := executeRoot(t, "translate")
	require.Error(t, err)
}
