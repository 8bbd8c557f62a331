// Command openai-stub is a tiny OpenAI-compatible chat server for local
// end-to-end testing without a real model backend. It recognizes the article
// and summary prompts and returns canned, well-formed responses.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		sys := ""
		last := ""
		if len(req.Messages) > 0 {
			sys = strings.TrimSpace(req.Messages[0].Content)
			last = strings.TrimSpace(req.Messages[len(req.Messages)-1].Content)
		}
		var content string
		switch {
		case strings.Contains(sys, "expert technical writer"):
			// Article generation: echo turn count so tests can assert the
			// conversation actually reached the backend.
			turns := 0
			for _, m := range req.Messages[1:] {
				if m.Role == "user" || m.Role == "assistant" {
					turns++
				}
			}
			content = "Title: Stub Article\n\n## Introduction\nThis article was generated from " +
				strconv.Itoa(turns) + " conversation turns.\n\n## Details\nCanned body for end-to-end testing.\n\n## Conclusion\nDone."
		case strings.Contains(last, "provide a technical summary"):
			content = "Core concepts: canned summary for testing.\nImplementation details: none."
		default:
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
