// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package adcopy holds the prompt contract for AI ad-copy generation and
// the best-effort parser that extracts the three labelled fields
// (Headline/Body/CTA) out of the model's free-form response.
package adcopy

import (
	"fmt"
	"strings"

	"adforge/internal/models"
)

// SystemPrompt is the fixed instruction sent with every generation
// request. It is intentionally provider-agnostic.
const SystemPrompt = `You are an expert advertising copywriter. Generate compelling ad copy based on the user's requirements. Keep it concise, engaging, and action-oriented.`

// UserPrompt interpolates the ad type, tone, and user requirements into
// the templated instruction. None of the inputs are validated beyond
// presence: missing values propagate as empty interpolations.
func UserPrompt(adType, tone, prompt string) string {
	return fmt.Sprintf(`Create %s ad copy with a %s tone. Requirements: %s

Return the response in the following format:
- Headline: [catchy headline]
- Body: [main ad text]
- CTA: [call to action]`, adType, tone, prompt)
}

// Fields is the result of parsing a generation response. Each member is
// independently present-or-absent; nil means the corresponding line
// prefix was not found and any prior value should be left in place.
type Fields struct {
	Headline *string
	BodyText *string
	CTA      *string
}

// Empty reports whether no field at all was extracted.
func (f Fields) Empty() bool {
	return f.Headline == nil && f.BodyText == nil && f.CTA == nil
}

// Apply merges the extracted fields into a content bag, overwriting only
// the fields that were actually found. Absent fields leave the prior
// values untouched, so a fully malformed response is a no-op.
func (f Fields) Apply(c *models.Content) {
	if f.Headline != nil {
		c.Headline = f.Headline
	}
	if f.BodyText != nil {
		c.BodyText = f.BodyText
	}
	if f.CTA != nil {
		c.CTA = f.CTA
	}
}

// Parse extracts the Headline/Body/CTA fields from free-form completion
// text using the line-prefix convention requested by UserPrompt. The
// prefix match is case-insensitive and tolerates a leading list bullet.
// The first occurrence of each prefix wins; the rest of the line,
// whitespace-trimmed, is the value. Parse never fails: missing or
// malformed sections simply yield nil fields.
func Parse(text string) Fields {
	var f Fields
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")

		switch {
		case f.Headline == nil && hasPrefixFold(line, "headline:"):
			f.Headline = valueAfter(line, "headline:")
		case f.BodyText == nil && hasPrefixFold(line, "body:"):
			f.BodyText = valueAfter(line, "body:")
		case f.CTA == nil && hasPrefixFold(line, "cta:"):
			f.CTA = valueAfter(line, "cta:")
		}
	}
	return f
}

// hasPrefixFold is a case-insensitive strings.HasPrefix.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// valueAfter returns the trimmed remainder of the line past the prefix.
func valueAfter(line, prefix string) *string {
	v := strings.TrimSpace(line[len(prefix):])
	return &v
}
