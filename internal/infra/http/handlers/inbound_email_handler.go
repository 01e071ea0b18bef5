package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

// InboundEmailHandler é a borda do webhook de e-mail. Só valida o mínimo e
// joga na fila: o matching acontece no worker. Unmatched nunca é rejeição.
type InboundEmailHandler struct {
	Producer    usecase.QueueProducerInterface
	rateLimiter *RateLimiter
}

func NewInboundEmailHandler(producer usecase.QueueProducerInterface) *InboundEmailHandler {
	return &InboundEmailHandler{
		Producer:    producer,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min por IP
	}
}

type inboundEmailRequest struct {
	MessageID  string    `json:"message_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	HTML       string    `json:"html,omitempty"`
	Text       string    `json:"text,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Direction  string    `json:"direction,omitempty"`
	BusinessID string    `json:"business_id,omitempty"`
	ThreadRef  string    `json:"thread_ref,omitempty"`
}

func (h *InboundEmailHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Code:    "RATE_LIMITED",
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req inboundEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.MessageID == "" || req.From == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "message_id e from são obrigatórios",
		})
		return
	}

	payload := queue.InboundEmailPayload{
		OwnerID:    owner,
		MessageID:  req.MessageID,
		From:       req.From,
		To:         req.To,
		Subject:    req.Subject,
		HTML:       req.HTML,
		Text:       req.Text,
		Timestamp:  req.Timestamp,
		Direction:  req.Direction,
		BusinessID: req.BusinessID,
		ThreadRef:  req.ThreadRef,
	}

	if err := h.Producer.PublishInbound(r.Context(), payload); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "QUEUE_ERROR", Message: err.Error()})
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
