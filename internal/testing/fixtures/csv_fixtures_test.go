package fixtures

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVBuilder(t *testing.T) {
	csv := NewCSV("A", "B").Row("1", "2").Raw(`"x,y",z`).String()
	assert.Equal(t, "A,B\n1,2\n\"x,y\",z\n", csv)
}

func TestCSVBuilder_Empty(t *testing.T) {
	assert.Equal(t, "", NewCSV().String())
}

func TestCSVBuilder_Delimiter(t *testing.T) {
	csv := NewCSV("A", "B").Delimiter(";").Row("1", "2").String()
	assert.Equal(t, "A;B\n1;2\n", csv)
}

func TestCSVBuilder_WriteFile(t *testing.T) {
	path := NewCSV("A").Row("1").WriteFile(t, t.TempDir(), "in.csv")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(data))
}
