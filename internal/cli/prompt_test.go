package cli_test

import (
	"bytes"
	"goalTracker/internal/cli"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	var out bytes.Buffer
	p := cli.NewPrompter(strings.NewReader("new title\n\n   \nlast"), &out)

	got, err := p.Ask("Title", "old")
	require.NoError(t, err)
	assert.Equal(t, "new title", got)
	assert.Contains(t, out.String(), "Title [old]: ")

	got, err = p.Ask("Category", "work")
	require.NoError(t, err)
	assert.Equal(t, "work", got, "empty line keeps the default")

	got, err = p.Ask("Priority", "low")
	require.NoError(t, err)
	assert.Equal(t, "low", got)

	got, err = p.Ask("Description", "")
	require.NoError(t, err)
	assert.Equal(t, "last", got, "final line without newline still counts")

	_, err = p.Ask("More", "x")
	assert.ErrorIs(t, err, cli.ErrCancelled)
}

func TestPrompter_AskOptional(t *testing.T) {
	var out bytes.Buffer
	p := cli.NewPrompter(strings.NewReader("-\n\n new notes \n"), &out)

	got, err := p.AskOptional("Description", "old notes")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, out.String(), "Description (- clears) [old notes]: ")

	got, err = p.AskOptional("Description", "old notes")
	require.NoError(t, err)
	assert.Equal(t, "old notes", got, "empty line keeps the default")

	got, err = p.AskOptional("Description", "old notes")
	require.NoError(t, err)
	assert.Equal(t, " new notes ", got)

	_, err = p.AskOptional("Description", "old notes")
	assert.ErrorIs(t, err, cli.ErrCancelled)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := cli.NewPrompter(strings.NewReader(tt.input), &out)
		assert.Equal(t, tt.want, p.Confirm("Delete?"), "input %q", tt.input)
		assert.Contains(t, out.String(), "Delete? [y/N]: ")
	}
}
