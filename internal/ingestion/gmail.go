package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/fmuoria/hr-inbox-scanner/internal/models"
)

const gmailUser = "me"

// GmailClient fetches application mail from a Gmail inbox. Message bodies
// and resume attachments are materialized in memory so the pipeline never
// touches the network itself.
type GmailClient struct {
	service *gmail.Service
	logger  *zap.Logger
}

// NewGmailClient builds a Gmail client from an OAuth credentials file and a
// cached token file. A missing or stale token triggers the interactive
// authorization flow and the new token is cached for the next run.
func NewGmailClient(ctx context.Context, credentialsFile, tokenFile string, logger *zap.Logger) (*GmailClient, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client, err := getClient(ctx, config, tokenFile)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailClient{service: srv, logger: logger}, nil
}

// getClient retrieves a cached token, falling back to the web authorization
// flow, and returns an authenticated HTTP client.
func getClient(ctx context.Context, config *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

// getTokenFromWeb requests a token interactively.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken caches a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchMessages returns the messages matching a Gmail search query, with
// bodies decoded and allow-listed attachments downloaded into memory.
// Messages that fail to fetch are skipped, not fatal.
func (g *GmailClient) FetchMessages(ctx context.Context, query string) ([]models.RawMessage, error) {
	list, err := g.service.Users.Messages.List(gmailUser).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}

	g.logger.Info("mailbox searched",
		zap.String("query", query),
		zap.Int("matches", len(list.Messages)))

	messages := make([]models.RawMessage, 0, len(list.Messages))
	for _, m := range list.Messages {
		message, err := g.service.Users.Messages.Get(gmailUser, m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			g.logger.Warn("unable to retrieve message", zap.String("id", m.Id), zap.Error(err))
			continue
		}

		raw := models.RawMessage{
			ID:      message.Id,
			Sender:  messageHeader(message, "From"),
			Subject: messageHeader(message, "Subject"),
			Body:    messageBody(message.Payload),
		}

		raw.Attachments = g.fetchAttachments(ctx, message)
		messages = append(messages, raw)
	}

	return messages, nil
}

// fetchAttachments downloads every allow-listed attachment of a message.
func (g *GmailClient) fetchAttachments(ctx context.Context, message *gmail.Message) []models.Attachment {
	var attachments []models.Attachment

	var walk func(part *gmail.MessagePart)
	walk = func(part *gmail.MessagePart) {
		if part == nil {
			return
		}
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			if !IsResumeAttachment(part.Filename) {
				g.logger.Debug("skipping attachment outside allow-list",
					zap.String("filename", part.Filename))
				return
			}
			body, err := g.service.Users.Messages.Attachments.
				Get(gmailUser, message.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				g.logger.Warn("unable to retrieve attachment",
					zap.String("filename", part.Filename), zap.Error(err))
				return
			}
			data, err := base64.URLEncoding.DecodeString(body.Data)
			if err != nil {
				g.logger.Warn("unable to decode attachment",
					zap.String("filename", part.Filename), zap.Error(err))
				return
			}
			attachments = append(attachments, models.Attachment{
				Filename: part.Filename,
				Data:     data,
			})
			return
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(message.Payload)

	return attachments
}

// MarkRead removes the UNREAD label from a processed message.
func (g *GmailClient) MarkRead(ctx context.Context, id string) error {
	_, err := g.service.Users.Messages.Modify(gmailUser, id, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to mark message %s as read: %w", id, err)
	}
	return nil
}

// messageHeader returns a named header value, or empty.
func messageHeader(message *gmail.Message, name string) string {
	if message.Payload == nil {
		return ""
	}
	for _, header := range message.Payload.Headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

// messageBody finds the first text/plain part that is not an attachment
// and decodes it.
func messageBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.MimeType == "text/plain" && payload.Filename == "" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err != nil {
			return ""
		}
		return string(data)
	}
	for _, part := range payload.Parts {
		if body := messageBody(part); body != "" {
			return body
		}
	}
	return ""
}
