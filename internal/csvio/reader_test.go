package csvio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_HeadersAndRows(t *testing.T) {
	rd, err := NewReader(strings.NewReader("First Name,Last Name!\nAda,Lovelace\nAlan,Turing\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first_name", "last_name"}, rd.Headers())
	assert.Equal(t, []string{"First Name", "Last Name!"}, rd.RawHeaders())

	rows, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[1].Get("last_name")
	assert.True(t, ok)
	assert.Equal(t, "Turing", v)
	assert.Equal(t, []string{"first_name", "last_name"}, rows[0].Keys())
}

func TestReader_HeadersOnly(t *testing.T) {
	rd, err := NewReader(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rd.Headers())

	rows, err := rd.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReader_EmptyInput(t *testing.T) {
	rd, err := NewReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rd.Headers())

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ShortAndLongRecords(t *testing.T) {
	rd, err := NewReader(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)

	short, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, short.Keys())
	_, ok := short.Get("c")
	assert.False(t, ok)

	long, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "_3"}, long.Keys())
}

func TestReader_QuotedFieldsAndBlankLines(t *testing.T) {
	input := "name,quote\n\n\"Smith, J\",\"He said \"\"hi\"\"\"\n\n"
	rd, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rows, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	v, _ := rows[0].Get("name")
	assert.Equal(t, "Smith, J", v)
	v, _ = rows[0].Get("quote")
	assert.Equal(t, `He said "hi"`, v)
}

func TestReader_DuplicateHeadersLastValueWins(t *testing.T) {
	rd, err := NewReader(strings.NewReader("Name,NAME\nfirst,second\n"))
	require.NoError(t, err)

	row, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, row.Len())
	v, _ := row.Get("name")
	assert.Equal(t, "second", v)
}

func TestReader_WithDelimiter(t *testing.T) {
	rd, err := NewReader(strings.NewReader("a;b\n1;2\n"), WithDelimiter(';'))
	require.NoError(t, err)

	row, err := rd.Next()
	require.NoError(t, err)
	v, _ := row.Get("b")
	assert.Equal(t, "2", v)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("X\n1\n"), 0644))

	rd, closer, err := OpenFile(path)
	require.NoError(t, err)
	defer closer.Close()

	rows, err := rd.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpenFile_Missing(t *testing.T) {
	_, _, err := OpenFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
