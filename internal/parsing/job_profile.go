// Package parsing turns cleaned job posting text into a structured profile
// using LLM extraction with schema validation.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/prompts"
	"github.com/jordan/job-search-agent/internal/schemas"
	"github.com/jordan/job-search-agent/internal/types"
)

// ParseJobDescription extracts a structured JobProfile from cleaned job
// posting text. The model is asked for JSON; when it answers in the older
// labelled-line format instead, the heuristic parser picks it up.
func ParseJobDescription(ctx context.Context, client llm.Client, text string) (*types.JobProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "job description text is empty"}
	}

	prompt := buildExtractionPrompt(text)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate job profile",
			Cause:   err,
		}
	}

	profile, parseErr := decodeProfile(responseText)
	if parseErr != nil {
		labelled, ok := parseLabelled(responseText)
		if !ok {
			return nil, parseErr
		}
		profile = labelled
	}

	postProcess(profile)

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func buildExtractionPrompt(jobText string) string {
	template := prompts.MustGet("parsing.json", "extract-job-profile")
	return prompts.Format(template, map[string]string{
		"JobText": jobText,
	})
}

func decodeProfile(jsonText string) (*types.JobProfile, error) {
	var profile types.JobProfile
	if err := json.Unmarshal([]byte(jsonText), &profile); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}
	return &profile, nil
}

// postProcess trims fields, drops empty list entries, normalizes skill
// names and lowercases keywords.
func postProcess(profile *types.JobProfile) {
	profile.Title = strings.TrimSpace(profile.Title)
	profile.Company = strings.TrimSpace(profile.Company)
	profile.Location = strings.TrimSpace(profile.Location)
	profile.ExperienceLevel = NormalizeExperienceLevel(profile.ExperienceLevel)

	profile.Requirements = cleanList(profile.Requirements)
	profile.Responsibilities = cleanList(profile.Responsibilities)
	profile.Skills = NormalizeSkills(profile.Skills)

	keywords := make([]string, 0, len(profile.Keywords))
	seen := make(map[string]bool)
	for _, keyword := range profile.Keywords {
		normalized := types.NormalizeKeyword(keyword)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		keywords = append(keywords, normalized)
	}
	profile.Keywords = keywords
}

// cleanList trims entries and drops empties and exact duplicates.
// The result is never nil so the profile re-encodes arrays, not null.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func validateProfile(profile *types.JobProfile) error {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return &ParseError{
			Message: "failed to re-encode profile for validation",
			Cause:   err,
		}
	}

	if err := schemas.ValidateJobProfile(string(encoded)); err != nil {
		return &ValidationError{
			Message: "job profile failed schema validation",
			Cause:   err,
		}
	}

	return nil
}
