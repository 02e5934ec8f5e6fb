package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jordan/job-search-agent/internal/config"
	"github.com/jordan/job-search-agent/internal/db"
	"github.com/jordan/job-search-agent/internal/llm"
	"github.com/jordan/job-search-agent/internal/messaging"
	"github.com/jordan/job-search-agent/internal/types"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Draft an outreach message",
	Long: `Draft a personalized outreach message for a contact: a LinkedIn
connection request (kind connection), a recruiter email (email), a
follow-up nudge (follow_up) or an event networking note (networking).
The contact comes from the tracker via --contact-id or inline flags.
Generation failures fall back to the template text.`,
	RunE: runCompose,
}

var (
	composeKind      string
	composeContactID string
	composeName      string
	composeCompany   string
	composeRole      string
	composeEmail     string
	composeConnType  string
	composeMutuals   string
	composeShared    string
	composeJob       string
	composeContext   string
	composeEvent     string
	composeDays      int
	composeTemplates string
	composeSave      bool
	composeAPIKey    string
	composeProvider  string
)

func init() {
	composeCmd.Flags().StringVarP(&composeKind, "kind", "k", "", "Message kind: connection, email, follow_up or networking (required)")
	composeCmd.Flags().StringVar(&composeContactID, "contact-id", "", "Stored contact ID")
	composeCmd.Flags().StringVar(&composeName, "name", "", "Contact name (inline contact)")
	composeCmd.Flags().StringVar(&composeCompany, "company", "", "Contact company (inline contact)")
	composeCmd.Flags().StringVar(&composeRole, "role", "", "Contact role")
	composeCmd.Flags().StringVar(&composeEmail, "email", "", "Contact email")
	composeCmd.Flags().StringVar(&composeConnType, "connection-type", "recruiter", "recruiter, hiring_manager, employee or alumni")
	composeCmd.Flags().StringVar(&composeMutuals, "mutuals", "", "Mutual connections worth mentioning")
	composeCmd.Flags().StringVar(&composeShared, "shared", "", "Shared experience worth mentioning")
	composeCmd.Flags().StringVar(&composeJob, "job", "", "Target job title for context")
	composeCmd.Flags().StringVar(&composeContext, "context", "", "One-line candidate background for emails")
	composeCmd.Flags().StringVar(&composeEvent, "event", "", "Event name for networking messages")
	composeCmd.Flags().IntVar(&composeDays, "days-since", 7, "Days since last contact, for follow-ups")
	composeCmd.Flags().StringVar(&composeTemplates, "templates", "", "Path to a message templates markdown file")
	composeCmd.Flags().BoolVar(&composeSave, "save", false, "Save the drafted message to the tracker")
	composeCmd.Flags().StringVar(&composeAPIKey, "api-key", "", "LLM API key (defaults to the provider's env var)")
	composeCmd.Flags().StringVar(&composeProvider, "provider", "", "LLM provider: gemini or openrouter")

	_ = composeCmd.MarkFlagRequired("kind")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	// Accept follow-up as well as follow_up.
	kind := strings.ReplaceAll(composeKind, "-", "_")
	if !types.IsValidMessageKind(kind) {
		return fmt.Errorf("invalid message kind: %s", composeKind)
	}

	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = composeProvider
	}

	store, err := openStore(&cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	contact, err := composeContact(ctx, store)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, &cfg, composeAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	templates, err := composeLoadTemplates(&cfg)
	if err != nil {
		return err
	}

	message, err := generateMessage(ctx, kind, client, contact, templates)
	if err != nil {
		return err
	}

	if message.Subject != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Subject: %s\n\n", message.Subject)
	}
	_, _ = fmt.Fprintln(os.Stdout, message.Body)

	if composeSave {
		if _, err := store.SaveMessage(ctx, &db.MessageCreateInput{
			ContactName: contact.Name,
			Company:     contact.Company,
			Kind:        message.Kind,
			Subject:     message.Subject,
			Body:        message.Body,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save message: %v\n", err)
		}
	}

	return nil
}

// composeContact loads the stored contact or builds one from inline flags.
func composeContact(ctx context.Context, store *db.Store) (*types.Contact, error) {
	if composeContactID != "" {
		record, err := store.GetContact(ctx, composeContactID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
		if record == nil {
			return nil, fmt.Errorf("contact not found: %s", composeContactID)
		}
		return record.ToContact(), nil
	}

	if composeName == "" || composeCompany == "" {
		return nil, fmt.Errorf("--contact-id or --name and --company are required")
	}
	contact := &types.Contact{
		Name:              composeName,
		Company:           composeCompany,
		Role:              composeRole,
		Email:             composeEmail,
		ConnectionType:    composeConnType,
		MutualConnections: composeMutuals,
		SharedExperience:  composeShared,
	}
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	return contact, nil
}

func composeLoadTemplates(cfg *config.Config) (messaging.Templates, error) {
	path := composeTemplates
	if path == "" && cfg.TemplatesDir != "" {
		path = filepath.Join(cfg.TemplatesDir, "messages.md")
	}
	if path == "" {
		return messaging.DefaultTemplates(), nil
	}
	return messaging.LoadTemplates(path)
}

func generateMessage(ctx context.Context, kind string, client llm.Client, contact *types.Contact, templates messaging.Templates) (*types.Message, error) {
	switch kind {
	case types.MessageConnection:
		return messaging.ConnectionRequest(ctx, client, contact, composeJob, templates)
	case types.MessageEmail:
		return messaging.RecruiterEmail(ctx, client, contact, composeJob, composeContext, templates)
	case types.MessageFollowUp:
		return messaging.FollowUpMessage(ctx, client, contact, composeJob, composeDays)
	case types.MessageNetworking:
		return messaging.NetworkingMessage(ctx, client, contact, composeEvent)
	default:
		return nil, fmt.Errorf("invalid message kind: %s", kind)
	}
}
