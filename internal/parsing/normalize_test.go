package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"golang", "Go"},
		{"Golang", "Go"},
		{"k8s", "Kubernetes"},
		{"postgres", "PostgreSQL"},
		{"node.js", "Node.js"},
		{"python", "Python"},
		{"SQL", "SQL"},
		{"machine learning", "machine learning"},
		{"  terraform  ", "Terraform"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkillName(tt.input))
		})
	}
}

func TestNormalizeSkills_Dedupes(t *testing.T) {
	got := NormalizeSkills([]string{"Go", "golang", "GO", "", "k8s", "Kubernetes"})
	assert.Equal(t, []string{"Go", "Kubernetes"}, got)
}

func TestNormalizeExperienceLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"senior", "senior"},
		{"Senior (5-8 years)", "senior"},
		{"Staff or Senior", "staff"},
		{"Principal Engineer", "staff"},
		{"entry", "entry"},
		{"New graduate", "entry"},
		{"Junior", "entry"},
		{"Mid-level", "mid"},
		{"Director of Engineering", "executive"},
		{"VP", "executive"},
		{"5+ years", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExperienceLevel(tt.input))
		})
	}
}
