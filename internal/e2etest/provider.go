package e2etest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// Provider is a fake OpenAI-compatible chat completion endpoint.
type Provider struct {
	server *httptest.Server

	mu       sync.Mutex
	status   int
	content  string
	requests []openai.ChatCompletionRequest
	auth     []string
	// hold blocks responses until it is closed.
	hold chan struct{}
}

// StartProvider starts a fake provider that answers every chat completion with content.
//
// Close the provider when done.
func StartProvider(content string) *Provider {
	p := &Provider{ //nolint:exhaustruct // server is set below
		status:  http.StatusOK,
		content: content,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", p.chatCompletion)
	p.server = httptest.NewServer(mux)
	return p
}

// URL is the base URL to configure as the provider base URL.
func (p *Provider) URL() string {
	return p.server.URL
}

func (p *Provider) Close() {
	p.server.Close()
}

// Respond changes the answer to subsequent requests. A status other than 200 produces an API error.
func (p *Provider) Respond(status int, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.content = content
}

// Hold makes the provider wait with its responses until release is called. Requests are recorded right away.
func (p *Provider) Hold() (release func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	hold := make(chan struct{})
	p.hold = hold
	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			p.hold = nil
			p.mu.Unlock()
			close(hold)
		})
	}
}

// Requests returns the chat completion requests received so far.
func (p *Provider) Requests() []openai.ChatCompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), p.requests...)
}

// Authorizations returns the Authorization headers received so far.
func (p *Provider) Authorizations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.auth...)
}

func (p *Provider) chatCompletion(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.auth = append(p.auth, r.Header.Get("Authorization"))
	status, content, hold := p.status, p.content, p.hold
	p.mu.Unlock()

	if hold != nil {
		<-hold
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	var body any
	if status != http.StatusOK {
		body = map[string]any{
			"error": map[string]any{"message": content, "type": "server_error"},
		}
	} else {
		body = map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": openai.ChatMessageRoleAssistant, "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
		}
	}
	_ = json.NewEncoder(w).Encode(body)
}
