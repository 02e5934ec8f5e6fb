package messaging

import (
	"fmt"
	"strings"

	"github.com/jordan/job-search-agent/internal/types"
)

// Static fallbacks keep outreach working when the LLM is unavailable.
// They stay under the connection request limit without truncation.

func fallbackConnectionRequest(contact *types.Contact, targetJob string) string {
	interest := "opportunities on your team"
	if targetJob != "" {
		interest = fmt.Sprintf("the %s role", targetJob)
	}
	return fmt.Sprintf("Hi %s, I came across your work at %s and would love to connect. I'm interested in %s and would value being in touch.",
		firstName(contact.Name), contact.Company, interest)
}

func fallbackEmailBody(contact *types.Contact, targetJob string) string {
	interest := "opportunities"
	if targetJob != "" {
		interest = fmt.Sprintf("%s opportunities", targetJob)
	}
	return fmt.Sprintf(`Hi %s,

I hope this message finds you well. I'm reaching out about %s at %s. My background aligns closely with the work your team is doing, and I'd welcome the chance to introduce myself properly.

Would you have 15 minutes in the coming week for a brief call?

Thank you for your time.`,
		firstName(contact.Name), interest, contact.Company)
}

func fallbackFollowUp(contact *types.Contact, targetJob string) string {
	subject := "my earlier note"
	if targetJob != "" {
		subject = fmt.Sprintf("my note about the %s role", targetJob)
	}
	return fmt.Sprintf("Hi %s, I wanted to follow up on %s at %s. I remain very interested and would be glad to share anything further that would help. Thanks for your time.",
		firstName(contact.Name), subject, contact.Company)
}

func fallbackNetworking(contact *types.Contact, event string) string {
	return fmt.Sprintf("Hi %s, great connecting around %s. I enjoyed learning about your work at %s and would welcome a short chat sometime if you're open to it.",
		firstName(contact.Name), event, contact.Company)
}

func emailSubject(contact *types.Contact, targetJob string) string {
	role := targetJob
	if role == "" {
		role = "Engineering"
	}
	return fmt.Sprintf("Interest in %s Opportunities at %s", role, contact.Company)
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
