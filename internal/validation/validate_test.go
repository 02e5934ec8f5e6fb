package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckResume_CleanContent(t *testing.T) {
	content := `# Jordan Doe

## Experience

- Led migration of 40 services to Kubernetes
- Cut p99 latency by 35% through connection pooling`

	assert.Empty(t, CheckResume(content, nil))
}

func TestCheckResume_CombinesChecks(t *testing.T) {
	content := "A proven track record of delivery\n- " + strings.Repeat("b", 250)

	violations := CheckResume(content, nil)
	require.Len(t, violations, 2)
	assert.Equal(t, "cliche_phrase", violations[0].Type)
	assert.Equal(t, "line_too_long", violations[1].Type)
}

func TestCheckResume_ExtraPhrases(t *testing.T) {
	violations := CheckResume("Deep expertise in blockchain", &Options{
		ExtraPhrases: []string{"blockchain"},
	})
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Details, "blockchain")
}

func TestCheckResume_MaxLineCharsOverride(t *testing.T) {
	line := strings.Repeat("c", 120)

	assert.Empty(t, CheckResume(line, nil))
	assert.Len(t, CheckResume(line, &Options{MaxLineChars: 100}), 1)
}
