package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// DownloadError reports a failed attachment fetch, carrying the upstream
// failure detail. The orchestrator converts it into a user-facing message.
type DownloadError struct {
	FileID string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download file %s: %v", e.FileID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// Client talks to the Telegram Bot API: outbound messages and attachment
// downloads. One instance is created at startup and shared by every request.
type Client struct {
	api  *tgbotapi.BotAPI
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a Telegram client with a bounded request timeout.
func NewClient(token string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")

	return &Client{api: api, http: httpClient, log: log}, nil
}

// SendMessage sends a Markdown-formatted text message to a chat. Delivery is
// fire-and-forget: failures are logged, never propagated.
func (c *Client) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := c.api.Send(msg); err != nil {
		c.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

// DownloadFile resolves an opaque file handle to raw bytes. Two sequential
// calls: getFile for the server-side path, then a GET on the file URL.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, &DownloadError{FileID: fileID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(c.api.Token), nil)
	if err != nil {
		return nil, &DownloadError{FileID: fileID, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &DownloadError{FileID: fileID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{FileID: fileID, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{FileID: fileID, Err: err}
	}
	return data, nil
}
