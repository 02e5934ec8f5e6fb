package messaging

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/prompts"
	"github.com/jordan/job-search-agent/internal/types"
)

// ConnectionRequest generates a LinkedIn connection request under the
// 200-character limit. An over-limit draft gets one stricter regeneration
// pass and is then truncated at a word boundary if still too long.
func ConnectionRequest(ctx context.Context, client llm.Client, contact *types.Contact, targetJob string, templates Templates) (*types.Message, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	_, template := SelectTemplate(templates, contact.ConnectionType)

	prompt := prompts.Format(prompts.MustGet("messaging.json", "connection-request"), map[string]string{
		"Name":           contact.Name,
		"Role":           roleOrType(contact),
		"Company":        contact.Company,
		"ConnectionType": strings.ReplaceAll(contact.ConnectionType, "_", " "),
		"Background":     contactBackground(contact, targetJob),
		"Template":       template,
	})

	text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[MESSAGING] connection request generation failed, using fallback: %v", err)
		text = fallbackConnectionRequest(contact, targetJob)
	}
	text = stripQuotes(text)

	if utf8.RuneCountInString(text) > types.ConnectionRequestMaxChars {
		text = regenerateShorter(ctx, client, text)
	}
	if utf8.RuneCountInString(text) > types.ConnectionRequestMaxChars {
		text = truncateAtWord(text, types.ConnectionRequestMaxChars)
	}

	return &types.Message{Kind: types.MessageConnection, Body: text}, nil
}

// RecruiterEmail generates an outreach email with a subject line.
// candidateContext is a short background blurb (typically the resume
// summary) woven into the pitch.
func RecruiterEmail(ctx context.Context, client llm.Client, contact *types.Contact, targetJob, candidateContext string, templates Templates) (*types.Message, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	_, template := SelectTemplate(templates, contact.ConnectionType)
	if candidateContext == "" {
		candidateContext = "(none provided)"
	}

	prompt := prompts.Format(prompts.MustGet("messaging.json", "recruiter-email"), map[string]string{
		"Name":             contact.Name,
		"Role":             roleOrType(contact),
		"Company":          contact.Company,
		"Background":       contactBackground(contact, targetJob),
		"CandidateContext": candidateContext,
		"Template":         template,
	})

	fallbackSubject := emailSubject(contact, targetJob)

	text, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		log.Printf("[MESSAGING] recruiter email generation failed, using fallback: %v", err)
		return &types.Message{
			Kind:    types.MessageEmail,
			Subject: fallbackSubject,
			Body:    fallbackEmailBody(contact, targetJob),
		}, nil
	}

	subject, body := splitSubject(text, fallbackSubject)
	if body == "" {
		body = fallbackEmailBody(contact, targetJob)
	}

	return &types.Message{Kind: types.MessageEmail, Subject: subject, Body: body}, nil
}

// FollowUpMessage generates a follow-up referencing how long ago the last
// contact happened.
func FollowUpMessage(ctx context.Context, client llm.Client, contact *types.Contact, targetJob string, daysSinceContact int) (*types.Message, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	followUpContext := "the opportunity to work together"
	if targetJob != "" {
		followUpContext = fmt.Sprintf("the %s role", targetJob)
	}

	prompt := prompts.Format(prompts.MustGet("messaging.json", "follow-up"), map[string]string{
		"Name":      contact.Name,
		"Company":   contact.Company,
		"DaysSince": strconv.Itoa(daysSinceContact),
		"Context":   followUpContext,
	})

	text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[MESSAGING] follow-up generation failed, using fallback: %v", err)
		text = fallbackFollowUp(contact, targetJob)
	}

	return &types.Message{Kind: types.MessageFollowUp, Body: strings.TrimSpace(text)}, nil
}

// NetworkingMessage generates a post-event networking note.
func NetworkingMessage(ctx context.Context, client llm.Client, contact *types.Contact, event string) (*types.Message, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	if event == "" {
		event = "a recent industry event"
	}

	prompt := prompts.Format(prompts.MustGet("messaging.json", "networking"), map[string]string{
		"Name":       contact.Name,
		"Role":       roleOrType(contact),
		"Company":    contact.Company,
		"Event":      event,
		"Background": contactBackground(contact, ""),
	})

	text, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[MESSAGING] networking message generation failed, using fallback: %v", err)
		text = fallbackNetworking(contact, event)
	}

	return &types.Message{Kind: types.MessageNetworking, Body: strings.TrimSpace(text)}, nil
}

func validateContact(contact *types.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact is required")
	}
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}
	return nil
}

func regenerateShorter(ctx context.Context, client llm.Client, message string) string {
	prompt := prompts.Format(prompts.MustGet("messaging.json", "connection-request-shorter"), map[string]string{
		"Message": message,
	})

	shorter, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return message
	}
	shorter = stripQuotes(shorter)
	if shorter == "" {
		return message
	}
	return shorter
}

func roleOrType(contact *types.Contact) string {
	if contact.Role != "" {
		return contact.Role
	}
	return strings.ReplaceAll(contact.ConnectionType, "_", " ")
}

func contactBackground(contact *types.Contact, targetJob string) string {
	var lines []string
	if targetJob != "" {
		lines = append(lines, "Target role: "+targetJob)
	}
	if contact.Location != "" {
		lines = append(lines, "Location: "+contact.Location)
	}
	if contact.MutualConnections != "" {
		lines = append(lines, "Mutual connections: "+contact.MutualConnections)
	}
	if contact.SharedExperience != "" {
		lines = append(lines, "Shared background: "+contact.SharedExperience)
	}
	return strings.Join(lines, "\n")
}

// splitSubject parses a `Subject: ...` first line. Without one, the whole
// text becomes the body under the fallback subject.
func splitSubject(text, fallbackSubject string) (string, string) {
	text = strings.TrimSpace(text)

	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if len(first) >= len("subject:") && strings.EqualFold(first[:len("subject:")], "subject:") {
		subject := strings.TrimSpace(first[len("subject:"):])
		if subject == "" {
			subject = fallbackSubject
		}
		return subject, strings.TrimSpace(rest)
	}

	return fallbackSubject, text
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// truncateAtWord cuts s to at most max runes, backing up to the previous
// word boundary.
func truncateAtWord(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max])
	if idx := strings.LastIndexAny(cut, " \n\t"); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " \n\t,.;:-")
}
