// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TemplateType tags a project with its intended ad format. The set is
// open: unknown values are accepted and only affect display grouping.
type TemplateType string

const (
	TemplateSocial TemplateType = "social"
	TemplateBanner TemplateType = "banner"
	TemplateStory  TemplateType = "story"
)

// Default values substituted for absent content fields when a project is
// read. Absence and empty string are only distinguished at this layer.
const (
	DefaultCTA     = "Learn More"
	DefaultBgColor = "#8B5CF6"
)

// Content is the bag of editable ad fields stored as opaque JSONB on a
// project. Every field is optional; nil means the user never set it,
// which is distinct from an explicit empty string.
type Content struct {
	Headline *string `json:"headline,omitempty"`
	BodyText *string `json:"bodyText,omitempty"`
	CTA      *string `json:"cta,omitempty"`
	BgColor  *string `json:"bgColor,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// WithDefaults returns a copy with display fallbacks filled in: empty
// strings for text fields, "Learn More" for the CTA, and the default
// background colour. The stored record is never modified.
func (c Content) WithDefaults() Content {
	out := c
	if out.Headline == nil {
		out.Headline = ptr("")
	}
	if out.BodyText == nil {
		out.BodyText = ptr("")
	}
	if out.CTA == nil {
		out.CTA = ptr(DefaultCTA)
	}
	if out.BgColor == nil {
		out.BgColor = ptr(DefaultBgColor)
	}
	if out.ImageURL == nil {
		out.ImageURL = ptr("")
	}
	return out
}

func ptr(s string) *string { return &s }

// Project is the persisted unit of work representing one advertisement
// draft. A project always belongs to exactly one owner; only the owner
// may read or mutate it.
type Project struct {
	ID           uuid.UUID    `json:"id"`
	OwnerID      uuid.UUID    `json:"owner_id"`
	Title        string       `json:"title"`
	TemplateType TemplateType `json:"template_type"`
	Content      Content      `json:"content"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DefaultTitle builds the title a freshly created project receives,
// e.g. `New banner Ad` for template type "banner".
func DefaultTitle(t TemplateType) string {
	return fmt.Sprintf("New %s Ad", t)
}

// Media represents an uploaded image tracked in the database. The actual
// bytes live in S3-compatible object storage.
type Media struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Bucket       string    `json:"-"`
	S3Key        string    `json:"-"`
	ThumbS3Key   *string   `json:"-"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	CreatedAt    time.Time `json:"created_at"`
}
