// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adforge/internal/cache"
	"adforge/internal/middleware"
	"adforge/internal/models"
	"adforge/internal/store"
)

// Projects groups the ad-project CRUD handlers. All operations are scoped
// to the authenticated owner; a foreign project behaves exactly like a
// missing one.
type Projects struct {
	projectStore *store.ProjectStore
	listCache    *cache.ProjectListCache // may be nil when Valkey is absent
}

// NewProjects creates a new Projects handler group.
func NewProjects(projectStore *store.ProjectStore, listCache *cache.ProjectListCache) *Projects {
	return &Projects{
		projectStore: projectStore,
		listCache:    listCache,
	}
}

type createProjectRequest struct {
	TemplateType models.TemplateType `json:"template_type"`
}

type saveProjectRequest struct {
	Title   string         `json:"title"`
	Content models.Content `json:"content"`
}

// List returns the owner's projects, most recently updated first. The
// serialized payload is cached per owner; any write invalidates it.
func (p *Projects) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if p.listCache != nil {
		if payload, ok := p.listCache.Get(r.Context(), sess.UserID); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	projects, err := p.projectStore.ListByOwner(sess.UserID)
	if err != nil {
		slog.Error("project list failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	payload, err := json.Marshal(map[string]any{"projects": projects})
	if err != nil {
		slog.Error("project list marshal failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.listCache != nil {
		p.listCache.Set(r.Context(), sess.UserID, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// Create makes a fresh project from a template type. The title defaults
// to "New {template} Ad" and the content bag starts empty.
func (p *Projects) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TemplateType == "" {
		req.TemplateType = models.TemplateSocial
	}

	project, err := p.projectStore.Create(sess.UserID, req.TemplateType)
	if err != nil {
		slog.Error("project create failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.listCache != nil {
		p.listCache.Invalidate(r.Context(), sess.UserID)
	}

	respondJSON(w, http.StatusCreated, project)
}

// Get returns a single project with display defaults filled into the
// content bag (empty strings, "Learn More" CTA, default background).
func (p *Projects) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}

	project, err := p.projectStore.FindByIDForOwner(id, sess.UserID)
	if err != nil {
		slog.Error("project get failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if project == nil {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}

	project.Content = project.Content.WithDefaults()
	respondJSON(w, http.StatusOK, project)
}

// Save replaces a project's title and full content bag. Last write wins;
// there is no draft state or conflict detection.
func (p *Projects) Save(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}

	var req saveProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateProjectSave(req.Title, req.Content); msg != "" {
		errorJSON(w, http.StatusBadRequest, msg)
		return
	}

	err = p.projectStore.UpdateContent(id, sess.UserID, req.Title, req.Content)
	if err == store.ErrNotFound {
		errorJSON(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("project save failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.listCache != nil {
		p.listCache.Invalidate(r.Context(), sess.UserID)
	}

	project, err := p.projectStore.FindByIDForOwner(id, sess.UserID)
	if err != nil || project == nil {
		slog.Error("project reload after save failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, project)
}
