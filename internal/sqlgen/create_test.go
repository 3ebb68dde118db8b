package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCreateTableScript(t *testing.T) {
	script := BuildCreateTableScript("people", []string{"a", "b"}, "")

	expected := "DROP TABLE IF EXISTS `people`;\n" +
		"CREATE TABLE `people` (\n" +
		"  `a` VARCHAR(255),\n" +
		"  `b` VARCHAR(255)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;\n\n"
	assert.Equal(t, expected, script)
}

func TestBuildCreateTableScript_CustomTypeAndQuoting(t *testing.T) {
	script := BuildCreateTableScript("we`ird", []string{"x"}, "TEXT")

	assert.Contains(t, script, "DROP TABLE IF EXISTS `we``ird`;")
	assert.Contains(t, script, "  `x` TEXT\n")
}

func TestBuildInsertScript(t *testing.T) {
	one, two, quote := "1", "2", "O'Brien"
	rows := [][]*string{
		{&one, &two},
		{&quote, nil},
		{&one},
	}

	script := BuildInsertScript("t", []string{"a", "b"}, rows, 2)

	statements := strings.Count(script, "INSERT INTO `t` (`a`, `b`) VALUES")
	assert.Equal(t, 2, statements)
	assert.Contains(t, script, "('1', '2'),\n('O''Brien', NULL);\n")
	assert.Contains(t, script, "('1', NULL);\n")
}

func TestBuildInsertScript_Empty(t *testing.T) {
	assert.Equal(t, "", BuildInsertScript("t", []string{"a"}, nil, 10))
	assert.Equal(t, "", BuildInsertScript("t", nil, [][]*string{{}}, 10))
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", "'it''s'"},
		{`C:\temp`, `'C:\\temp'`},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := QuoteLiteral(tt.in); got != tt.want {
			t.Errorf("QuoteLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeValue(t *testing.T) {
	assert.Equal(t, "a''b''", EscapeValue("a'b'"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "SELECT 1", Preview("  SELECT 1 \n", 200))
	assert.Equal(t, "abc...", Preview("abcdef", 3))
}
