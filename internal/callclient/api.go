package callclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ======================================================
// TIPOS DE TRANSPORTE
// ======================================================

// SessionState é a visão do cliente sobre a sessão, como o servidor a
// devolve em GET /me/sessions/:id.
type SessionState struct {
	ID             uint       `json:"id"`
	ConsultationID uint       `json:"consultation_id"`
	RoomID         string     `json:"room_id"`
	Status         string     `json:"status"`
	StartedAt      *time.Time `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
}

type Message struct {
	ID         uint      `json:"id"`
	SessionID  uint      `json:"session_id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// SessionAPI é o que o poller consome do servidor. A implementação HTTP
// fica abaixo; os testes usam um fake.
type SessionAPI interface {
	GetSession(ctx context.Context, sessionID uint) (SessionState, error)
	ResolveByConsultation(ctx context.Context, consultationID uint) (SessionState, error)
	ListMessagesSince(ctx context.Context, sessionID uint, afterID uint) ([]Message, error)
}

// ======================================================
// CLIENTE HTTP
// ======================================================

type HTTPSessionAPI struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPSessionAPI(baseURL, token string) *HTTPSessionAPI {
	return &HTTPSessionAPI{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *HTTPSessionAPI) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *HTTPSessionAPI) GetSession(ctx context.Context, sessionID uint) (SessionState, error) {
	var s SessionState
	err := a.get(ctx, fmt.Sprintf("/api/me/sessions/%d", sessionID), &s)
	return s, err
}

func (a *HTTPSessionAPI) ResolveByConsultation(ctx context.Context, consultationID uint) (SessionState, error) {
	var s SessionState
	err := a.get(ctx, fmt.Sprintf("/api/me/consultations/%d/session", consultationID), &s)
	return s, err
}

func (a *HTTPSessionAPI) ListMessagesSince(ctx context.Context, sessionID uint, afterID uint) ([]Message, error) {
	var out struct {
		Data []Message `json:"data"`
	}
	err := a.get(ctx, fmt.Sprintf("/api/me/sessions/%d/messages?after=%d", sessionID, afterID), &out)
	return out.Data, err
}
