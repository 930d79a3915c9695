// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// moderation.go checks user prompts against a moderation API before the
// billed generation call is made. OpenAI's free endpoint is preferred;
// Mistral's classifier serves as fallback.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // list of flagged category names (empty when safe)
}

// Moderator checks user prompts for policy violations before sending
// them to AI generation endpoints.
type Moderator interface {
	// CheckSafety evaluates a text prompt and returns whether it is safe
	// to send to an AI provider. If not safe, Categories lists the reasons.
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// moderationRequest is the shared request shape; OpenAI and Mistral use
// the same fields.
type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []moderationEntry `json:"results"`
}

type moderationEntry struct {
	Flagged    bool            `json:"flagged"` // absent in Mistral responses
	Categories map[string]bool `json:"categories"`
}

// postModeration performs the HTTP round trip shared by both moderators.
func postModeration(ctx context.Context, client *http.Client, url, bearer string, body moderationRequest) (*moderationResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("moderation marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("moderation read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result moderationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("moderation unmarshal: %w", err)
	}
	return &result, nil
}

// flaggedCategories collects the category names set to true, in
// human-readable form ("hate/threatening" → "hate (threatening)").
func flaggedCategories(categories map[string]bool) []string {
	var flagged []string
	for cat, isFlagged := range categories {
		if !isFlagged {
			continue
		}
		display := strings.ReplaceAll(cat, "/", " (")
		if strings.Contains(cat, "/") {
			display += ")"
		}
		display = strings.ReplaceAll(display, "_", " ")
		flagged = append(flagged, display)
	}
	return flagged
}

// --- OpenAI Moderation (free endpoint) ---

// openAIModerator uses the OpenAI Moderation API (POST /v1/moderations)
// which is free for all OpenAI API key holders.
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	result, err := postModeration(ctx, m.client, m.baseURL+"/moderations", m.apiKey, moderationRequest{
		Model: "omni-moderation-latest",
		Input: text,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	return &ModerationResult{
		Safe:       false,
		Categories: flaggedCategories(result.Results[0].Categories),
	}, nil
}

// --- Mistral Moderation (paid, fallback) ---

// mistralModerator uses the Mistral Moderation API (POST /v1/moderations).
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &mistralModerator{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	result, err := postModeration(ctx, m.client, m.baseURL+"/v1/moderations", m.apiKey, moderationRequest{
		Model: "mistral-moderation-latest",
		Input: text,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	// Mistral has no top-level "flagged" — check each category.
	flagged := flaggedCategories(result.Results[0].Categories)
	return &ModerationResult{
		Safe:       len(flagged) == 0,
		Categories: flagged,
	}, nil
}

// --- Fallback chain ---

// fallbackModerator tries the primary moderator and falls through to the
// secondary when the primary call itself fails. A Safe=false verdict from
// the primary is final and never retried against the secondary.
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	result, err := m.primary.CheckSafety(ctx, text)
	if err == nil {
		return result, nil
	}
	return m.secondary.CheckSafety(ctx, text)
}
