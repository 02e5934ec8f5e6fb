package tailoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/prompts"
	"github.com/jordan/job-search-agent/internal/types"
)

// topSectionCount is how many of the most relevant sections are called out
// in the tailoring prompt.
const topSectionCount = 5

// TailorResume rewrites the resume for the target job and reports how well
// the rewritten content covers the job's keywords. The prompt forbids
// inventing skills or employers; the rewrite only reweights what is there.
func TailorResume(ctx context.Context, client llm.Client, resume string, profile *types.JobProfile) (*types.TailoredResume, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, fmt.Errorf("resume is empty")
	}
	if profile == nil {
		return nil, fmt.Errorf("job profile is required")
	}

	ranked := RankSections(SplitSections(resume), profile)

	template := prompts.MustGet("tailoring.json", "tailor-resume")
	prompt := prompts.Format(template, map[string]string{
		"Title":        profile.Title,
		"Company":      profile.Company,
		"Requirements": bulletList(profile.Requirements),
		"Skills":       strings.Join(profile.Skills, ", "),
		"TopSections":  formatTopSections(ranked),
		"Resume":       resume,
	})

	content, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to tailor resume: %w", err)
	}

	content = stripMarkdownFence(content)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("model returned an empty resume")
	}

	matched, missing := MatchedKeywords(content, profile)

	return &types.TailoredResume{
		Content:         content,
		RelevanceScore:  RelevanceScore(content, profile),
		MatchedKeywords: matched,
		MissingKeywords: missing,
	}, nil
}

// GenerateCoverLetter writes a cover letter for the application. A company
// profile is optional; when present its research enriches the letter's tone.
func GenerateCoverLetter(ctx context.Context, client llm.Client, resume string, profile *types.JobProfile, company *types.CompanyProfile) (string, error) {
	if strings.TrimSpace(resume) == "" {
		return "", fmt.Errorf("resume is empty")
	}
	if profile == nil {
		return "", fmt.Errorf("job profile is required")
	}

	template := prompts.MustGet("tailoring.json", "cover-letter")
	prompt := prompts.Format(template, map[string]string{
		"Title":          profile.Title,
		"Company":        profile.Company,
		"Resume":         resume,
		"CompanyContext": companyContext(company),
	})

	letter, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate cover letter: %w", err)
	}

	letter = strings.TrimSpace(stripMarkdownFence(letter))
	if letter == "" {
		return "", fmt.Errorf("model returned an empty cover letter")
	}

	return letter, nil
}

// TailoringSuggestions asks for concrete resume improvements for the job
// and returns them as a list parsed from the model's bullet lines.
func TailoringSuggestions(ctx context.Context, client llm.Client, resume string, profile *types.JobProfile) ([]string, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, fmt.Errorf("resume is empty")
	}
	if profile == nil {
		return nil, fmt.Errorf("job profile is required")
	}

	template := prompts.MustGet("tailoring.json", "suggestions")
	prompt := prompts.Format(template, map[string]string{
		"Title":        profile.Title,
		"Company":      profile.Company,
		"Requirements": bulletList(profile.Requirements),
		"Skills":       strings.Join(profile.Skills, ", "),
		"Resume":       resume,
	})

	response, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	return parseBulletLines(response), nil
}

// parseBulletLines extracts `-`, `*` and `•` bullet lines.
func parseBulletLines(text string) []string {
	var suggestions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, marker) {
				if item := strings.TrimSpace(strings.TrimPrefix(line, marker)); item != "" {
					suggestions = append(suggestions, item)
				}
				break
			}
		}
	}
	return suggestions
}

func formatTopSections(ranked []ScoredSection) string {
	count := len(ranked)
	if count > topSectionCount {
		count = topSectionCount
	}

	var sb strings.Builder
	for _, scored := range ranked[:count] {
		title := scored.Section.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "- %s (relevance %.2f", title, scored.Score)
		if len(scored.Matched) > 0 {
			fmt.Fprintf(&sb, ", matches: %s", strings.Join(scored.Matched, ", "))
		}
		sb.WriteString(")\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func companyContext(company *types.CompanyProfile) string {
	if company == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Company research:\n")
	if company.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", company.Summary)
	}
	if company.Culture != "" {
		fmt.Fprintf(&sb, "Culture: %s\n", company.Culture)
	}
	if company.Tone != "" {
		fmt.Fprintf(&sb, "Preferred tone: %s\n", company.Tone)
	}
	if len(company.Values) > 0 {
		fmt.Fprintf(&sb, "Values: %s\n", strings.Join(company.Values, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none listed)"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// stripMarkdownFence removes a wrapping ``` fence when the model adds one.
func stripMarkdownFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return text
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
