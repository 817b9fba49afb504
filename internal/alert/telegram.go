package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	telegramBaseURL = "https://api.telegram.org"
	telegramTimeout = 15 * time.Second

	// Telegram caps bots at ~30 messages/second globally; one per second
	// is plenty for alerting and keeps bursts polite.
	telegramRate = 1.0
)

// TelegramSender delivers alert messages through the Telegram Bot API.
type TelegramSender struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewTelegramSender creates a Telegram sender. Returns nil if token or chat
// ID is empty (delivery disabled).
func NewTelegramSender(token, chatID string, logger *slog.Logger) *TelegramSender {
	if token == "" || chatID == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TelegramSender{
		httpClient: &http.Client{Timeout: telegramTimeout},
		baseURL:    telegramBaseURL,
		token:      token,
		chatID:     chatID,
		limiter:    rate.NewLimiter(rate.Limit(telegramRate), 1),
		logger:     logger,
	}
}

// telegramResponse is the Bot API response envelope.
type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send posts one Markdown message to the configured chat.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	form := url.Values{}
	form.Set("chat_id", s.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")
	form.Set("disable_web_page_preview", "true")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}

	var tr telegramResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("parse telegram response (status %d): %w", resp.StatusCode, err)
	}
	if !tr.OK {
		return fmt.Errorf("telegram send failed: %d %s", tr.ErrorCode, tr.Description)
	}
	s.logger.Debug("Telegram message sent", "chat_id", s.chatID)
	return nil
}
