package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sume/estra/internal/assistant"
	"github.com/sume/estra/internal/curve"
	"github.com/sume/estra/internal/session"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Machine   string `json:"machine"`
	Period    string `json:"period"`
	Prompt    string `json:"prompt"`
}

type chatResponse struct {
	SessionID       string            `json:"session_id"`
	Reply           string            `json:"reply"`
	Provider        string            `json:"provider"`
	History         []session.Message `json:"history"`
	ShowSuggestions bool              `json:"show_suggestions"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	resp, err := h.chat(r.Context(), req)
	if err != nil {
		writeViewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// chat runs one conversational turn against the current session. A blank
// prompt consumes the pending selected question, if any.
func (h *Handler) chat(ctx context.Context, req chatRequest) (*chatResponse, error) {
	sess := h.sessions.Get(req.SessionID)

	if req.Machine != "" || req.Period != "" {
		machineID, period := sess.View()
		if req.Machine != "" {
			machineID = req.Machine
		}
		if req.Period != "" {
			p, err := curve.ParsePeriod(req.Period)
			if err != nil {
				return nil, err
			}
			period = p
		}
		if err := sess.SetView(machineID, period); err != nil {
			return nil, err
		}
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = sess.Take()
	}
	if prompt == "" {
		return nil, errEmptyPrompt
	}

	sess.Append("user", prompt)

	machineID, period := sess.View()
	areq := assistant.Request{
		Prompt:  prompt,
		Machine: machineID,
		Period:  period,
		Data:    h.summaries.Peek(),
	}

	genCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	provider := h.generator.Name()
	reply, err := h.generator.Reply(genCtx, areq)
	if err != nil && h.fallback != nil && h.fallback != h.generator {
		// Degrade to the deterministic generator rather than surfacing a
		// provider outage in the chat.
		log.Printf("[api] %s reply failed, falling back to %s: %v", provider, h.fallback.Name(), err)
		if h.metrics != nil {
			h.metrics.RecordChat(provider, true)
		}
		provider = h.fallback.Name()
		reply, err = h.fallback.Reply(genCtx, areq)
	}
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordChat(provider, true)
		}
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordChat(provider, false)
	}

	sess.Append("assistant", reply)

	return &chatResponse{
		SessionID:       sess.ID,
		Reply:           reply,
		Provider:        provider,
		History:         sess.History(),
		ShowSuggestions: sess.ShowSuggestions(),
	}, nil
}

func (h *Handler) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess := h.sessions.Get(r.URL.Query().Get("session_id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":       sess.ID,
		"history":          sess.History(),
		"show_suggestions": sess.ShowSuggestions(),
	})
}

type selectRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

func (h *Handler) handleChatSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeError(w, http.StatusBadRequest, "question field is required")
		return
	}

	sess := h.sessions.Get(req.SessionID)
	sess.Select(req.Question)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"selected":   req.Question,
	})
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	sess := h.sessions.Get(req.SessionID)
	sess.Clear()
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"history":    sess.History(),
	})
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": assistant.SuggestedQuestions(),
	})
}
