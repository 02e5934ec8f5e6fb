package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	got := CleanText("line one\r\nline two\rline three")
	assert.Equal(t, "line one\nline two\nline three", got)
}

func TestCleanText_CollapsesInnerSpaces(t *testing.T) {
	got := CleanText("We   are    hiring\ta Go engineer")
	assert.Equal(t, "We are hiring a Go engineer", got)
}

func TestCleanText_LimitsBlankLines(t *testing.T) {
	got := CleanText("Requirements\n\n\n\n\n- Go\n- SQL")
	assert.Equal(t, "Requirements\n\n- Go\n- SQL", got)
}

func TestCleanText_PreservesHeadings(t *testing.T) {
	got := CleanText("   ## About the Role   \nShip things.")
	assert.Equal(t, "## About the Role\nShip things.", got)
}

func TestCleanText_PreservesBulletIndent(t *testing.T) {
	input := "Responsibilities:\n- Own services\n  - Including  on-call\n* Mentor  engineers"
	want := "Responsibilities:\n- Own services\n  - Including on-call\n* Mentor engineers"
	assert.Equal(t, want, CleanText(input))
}

func TestCleanText_TrimsTrailingWhitespace(t *testing.T) {
	got := CleanText("first line   \nsecond line\t\n")
	assert.Equal(t, "first line\nsecond line", got)
}
