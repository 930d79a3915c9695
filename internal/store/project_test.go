// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"adforge/internal/models"
)

func TestProjectCreate_Defaults(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db, "project-create@test.local")
	projects := NewProjectStore(db)

	p, err := projects.Create(owner.ID, models.TemplateBanner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.Title != "New banner Ad" {
		t.Errorf("default title: got %q, want %q", p.Title, "New banner Ad")
	}
	if p.TemplateType != models.TemplateBanner {
		t.Errorf("template type: got %q", p.TemplateType)
	}
	if p.OwnerID != owner.ID {
		t.Errorf("owner: got %v, want %v", p.OwnerID, owner.ID)
	}
	// Content bag starts empty — every field absent, not empty-string.
	if p.Content != (models.Content{}) {
		t.Errorf("content should be empty at creation: %+v", p.Content)
	}
	if p.ThumbnailURL != nil {
		t.Errorf("thumbnail should be unset at creation: %v", *p.ThumbnailURL)
	}
}

func TestProjectFindByIDForOwner_ScopesToOwner(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db, "project-owner@test.local")
	other := testUser(t, db, "project-other@test.local")
	projects := NewProjectStore(db)

	p, err := projects.Create(owner.ID, models.TemplateSocial)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Owner sees it.
	got, err := projects.FindByIDForOwner(p.ID, owner.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner: %v", err)
	}
	if got == nil || got.ID != p.ID {
		t.Fatalf("owner lookup: got %v", got)
	}

	// A different user never sees it — same result as a missing project.
	got, err = projects.FindByIDForOwner(p.ID, other.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner (other): %v", err)
	}
	if got != nil {
		t.Error("project leaked to a non-owner")
	}

	// A random ID yields the identical outcome.
	got, err = projects.FindByIDForOwner(uuid.New(), owner.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner (random): %v", err)
	}
	if got != nil {
		t.Error("random id resolved to a project")
	}
}

func TestProjectListByOwner_OrderedByUpdateDesc(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db, "project-list@test.local")
	projects := NewProjectStore(db)

	first, err := projects.Create(owner.ID, models.TemplateSocial)
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := projects.Create(owner.ID, models.TemplateStory)
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	// Saving the older project bumps it to the top of the list.
	time.Sleep(10 * time.Millisecond)
	if err := projects.UpdateContent(first.ID, owner.ID, "Bumped", models.Content{}); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	list, err := projects.ListByOwner(owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length: got %d, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("list order wrong: got [%v %v], want [%v %v]",
			list[0].ID, list[1].ID, first.ID, second.ID)
	}
}

func TestProjectUpdateContent_FullReplace(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db, "project-update@test.local")
	projects := NewProjectStore(db)

	p, err := projects.Create(owner.ID, models.TemplateSocial)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	content := models.Content{
		Headline: strPtr("Buy Now"),
		BodyText: strPtr("Great deal"),
		CTA:      strPtr("Shop"),
		BgColor:  strPtr("#112233"),
	}
	if err := projects.UpdateContent(p.ID, owner.ID, "Spring Sale", content); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}

	got, err := projects.FindByIDForOwner(p.ID, owner.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner: %v", err)
	}
	if got.Title != "Spring Sale" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Content.Headline == nil || *got.Content.Headline != "Buy Now" {
		t.Errorf("headline: got %v", got.Content.Headline)
	}
	if got.Content.ImageURL != nil {
		t.Errorf("imageUrl should be absent after replace: %v", *got.Content.ImageURL)
	}
	if !got.UpdatedAt.After(p.UpdatedAt) {
		t.Errorf("updated_at not refreshed: %v <= %v", got.UpdatedAt, p.UpdatedAt)
	}

	// The replace is full-document: fields missing from the new bag vanish.
	if err := projects.UpdateContent(p.ID, owner.ID, "Spring Sale", models.Content{CTA: strPtr("Go")}); err != nil {
		t.Fatalf("UpdateContent (second): %v", err)
	}
	got, err = projects.FindByIDForOwner(p.ID, owner.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner: %v", err)
	}
	if got.Content.Headline != nil {
		t.Errorf("headline survived a full replace: %v", *got.Content.Headline)
	}
}

func TestProjectUpdateContent_NotFoundForNonOwner(t *testing.T) {
	db := testDB(t)
	owner := testUser(t, db, "project-guard@test.local")
	other := testUser(t, db, "project-intruder@test.local")
	projects := NewProjectStore(db)

	p, err := projects.Create(owner.ID, models.TemplateSocial)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = projects.UpdateContent(p.ID, other.ID, "Hijacked", models.Content{Headline: strPtr("x")})
	if err != ErrNotFound {
		t.Fatalf("UpdateContent as non-owner: got %v, want ErrNotFound", err)
	}

	// The record is byte-for-byte unchanged after the failed attempt.
	got, err := projects.FindByIDForOwner(p.ID, owner.ID)
	if err != nil {
		t.Fatalf("FindByIDForOwner: %v", err)
	}
	if got.Title != p.Title || got.Content != (models.Content{}) {
		t.Errorf("record mutated by failed save: %+v", got)
	}
}
