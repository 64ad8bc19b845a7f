package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello  \n"))

	got, err := GetSimpleText(r, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Contains(t, out.String(), "Prompt")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))

	got, err := GetMultiline(r, "Body", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestGetTags(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(" go , testing ,,web\n"))

	got, err := GetTags(r, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "testing", "web"}, got)
}

func TestGetTags_Empty(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("\n"))

	got, err := GetTags(r, &out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPassword_StubbedReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Enter password")
}
