package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"designflow-backend/internal/models"
)

const TelegramAPIBase = "https://api.telegram.org"

// TelegramSender pushes admin alerts to a Telegram chat via the Bot API.
type TelegramSender struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
}

func NewTelegramSender(baseURL, botToken, chatID string) *TelegramSender {
	return &TelegramSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		botToken:   botToken,
		chatID:     chatID,
	}
}

// SendNewOrderAlert tells the admin chat a new order landed.
func (t *TelegramSender) SendNewOrderAlert(order *models.Order) error {
	date := order.CreatedAt.Format("January 2, 2006")
	text := fmt.Sprintf("%s placed a new order on %s", order.ClientName, date)
	return t.sendMessage(text)
}

func (t *TelegramSender) sendMessage(text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	resp, err := t.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to call telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
