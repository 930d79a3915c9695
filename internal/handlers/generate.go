// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"adforge/internal/adcopy"
	"adforge/internal/ai"
)

// Generate proxies copy-generation requests to the active AI provider.
// The upstream API key never leaves the server; clients authenticate with
// their session and receive only the generated text.
type Generate struct {
	registry *ai.Registry
}

// NewGenerate creates a new Generate handler.
func NewGenerate(registry *ai.Registry) *Generate {
	return &Generate{registry: registry}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	AdType string `json:"adType"`
	Tone   string `json:"tone"`
}

type generateResponse struct {
	Content string          `json:"content"`
	Fields  generatedFields `json:"fields"`
}

// generatedFields is the parsed view of the completion. Absent fields are
// omitted so clients can distinguish "not found" from "empty".
type generatedFields struct {
	Headline *string `json:"headline,omitempty"`
	BodyText *string `json:"bodyText,omitempty"`
	CTA      *string `json:"cta,omitempty"`
}

// AdCopy handles POST /api/generate-ad-copy. The response carries the
// provider's verbatim completion plus the three labelled fields extracted
// from it; a completion that ignores the format request still returns 200
// with empty fields.
func (g *Generate) AdCopy(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if msg := validateGenerate(req.Prompt, req.AdType, req.Tone); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}

	if !g.checkPromptSafety(w, r, req.Prompt) {
		return
	}

	content, err := g.registry.Generate(r.Context(),
		adcopy.SystemPrompt,
		adcopy.UserPrompt(req.AdType, req.Tone, req.Prompt),
	)
	if err != nil {
		slog.Error("ad copy generation failed", "provider", g.registry.ActiveName(), "error", err)
		errorJSON(w, http.StatusInternalServerError, "Failed to generate ad copy")
		return
	}

	fields := adcopy.Parse(content)
	if fields.Empty() {
		slog.Warn("ad copy response had no parseable fields", "provider", g.registry.ActiveName())
	}

	respondJSON(w, http.StatusOK, generateResponse{
		Content: content,
		Fields: generatedFields{
			Headline: fields.Headline,
			BodyText: fields.BodyText,
			CTA:      fields.CTA,
		},
	})
}

// checkPromptSafety runs the prompt through the moderation API. Returns
// false (response already written) when the prompt is flagged. Fails open
// on moderation errors — providers have their own safety filters.
func (g *Generate) checkPromptSafety(w http.ResponseWriter, r *http.Request, prompt string) bool {
	result, err := g.registry.CheckPrompt(r.Context(), prompt)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return true
	}

	if result.Safe {
		return true
	}

	categories := strings.Join(result.Categories, ", ")
	slog.Warn("prompt flagged by moderation", "categories", categories)

	errorJSON(w, http.StatusBadRequest, fmt.Sprintf(
		"Your prompt was flagged for: %s. Please reformulate your request and try again.",
		categories,
	))
	return false
}
