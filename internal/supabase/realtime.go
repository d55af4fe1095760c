package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RealtimeClient publishes broadcast events over Supabase Realtime's
// REST endpoint so subscribed frontends receive them without polling.
type RealtimeClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewRealtimeClient(supabaseURL, apiKey string) *RealtimeClient {
	return &RealtimeClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(supabaseURL, "/"),
		apiKey:     apiKey,
	}
}

type broadcastMessage struct {
	Topic   string         `json:"topic"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

// PublishEvent broadcasts one event on a channel topic.
func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]any) error {
	body, err := json.Marshal(map[string]any{
		"messages": []broadcastMessage{{Topic: channel, Event: event, Payload: payload}},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}

	url := fmt.Sprintf("%s/realtime/v1/api/broadcast", r.baseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call realtime API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("realtime API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (r *RealtimeClient) PublishOrderEvent(orderID string, event string, payload map[string]any) error {
	return r.PublishEvent(fmt.Sprintf("order:%s", orderID), event, payload)
}

func (r *RealtimeClient) PublishClientEvent(clientID string, event string, payload map[string]any) error {
	return r.PublishEvent(fmt.Sprintf("client:%s", clientID), event, payload)
}

// Event payloads
func OrderCreatedPayload(orderID, clientID, serviceType string) map[string]any {
	return map[string]any{
		"order_id":     orderID,
		"client_id":    clientID,
		"service_type": serviceType,
		"status":       "Pending",
	}
}

func StatusChangedPayload(orderID, oldStatus, newStatus string) map[string]any {
	return map[string]any{
		"order_id":   orderID,
		"old_status": oldStatus,
		"new_status": newStatus,
	}
}

func DraftUploadedPayload(orderID, draftURL string) map[string]any {
	return map[string]any{
		"order_id":  orderID,
		"draft_url": draftURL,
	}
}

func FinalFilesReadyPayload(orderID string, fileCount int) map[string]any {
	return map[string]any{
		"order_id":   orderID,
		"status":     "Completed",
		"file_count": fileCount,
	}
}
