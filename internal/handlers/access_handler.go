package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/services/accesscontrol"
)

// AccessHandler serves access checks and lookups.
type AccessHandler struct {
	checker accesscontrol.CheckerInterface
	lookup  accesscontrol.LookupInterface
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(checker accesscontrol.CheckerInterface, lookup accesscontrol.LookupInterface) *AccessHandler {
	return &AccessHandler{checker: checker, lookup: lookup}
}

// targetPayload identifies a target in request bodies.
type targetPayload struct {
	Project   string `json:"project"`
	Component string `json:"component,omitempty"`
	Language  string `json:"language,omitempty"`
}

func (p targetPayload) target() entities.Target {
	return entities.Target{Project: p.Project, Component: p.Component, Language: p.Language}
}

type checkRequest struct {
	UserID     string `json:"user_id"`
	Permission string `json:"permission"`
	targetPayload
}

type checkResponse struct {
	Allowed bool `json:"allowed"`
}

// Check handles POST /v1/access/check.
func (h *AccessHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	target := req.target()
	if err := target.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !entities.KnownPermission(entities.Permission(req.Permission)) {
		respondError(w, http.StatusBadRequest, "unknown permission "+strconv.Quote(req.Permission))
		return
	}

	resp, err := h.checker.Check(r.Context(), &accesscontrol.CheckRequest{
		UserID:     req.UserID,
		Target:     target,
		Permission: entities.Permission(req.Permission),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, checkResponse{Allowed: resp.Allowed})
}

type checkMultipleRequest struct {
	UserID      string   `json:"user_id"`
	Permissions []string `json:"permissions"`
	targetPayload
}

type checkMultipleResponse struct {
	Results map[string]bool `json:"results"`
}

// CheckMultiple handles POST /v1/access/check-multiple.
func (h *AccessHandler) CheckMultiple(w http.ResponseWriter, r *http.Request) {
	var req checkMultipleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	target := req.target()
	if err := target.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Permissions) == 0 {
		respondError(w, http.StatusBadRequest, "permissions are required")
		return
	}
	permissions := make([]entities.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perm := entities.Permission(p)
		if !entities.KnownPermission(perm) {
			respondError(w, http.StatusBadRequest, "unknown permission "+strconv.Quote(p))
			return
		}
		permissions = append(permissions, perm)
	}

	results, err := h.checker.CheckMultiple(r.Context(), &accesscontrol.AccessRequest{
		UserID: req.UserID,
		Target: target,
	}, permissions)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make(map[string]bool, len(results))
	for p, allowed := range results {
		out[string(p)] = allowed
	}
	respondJSON(w, http.StatusOK, checkMultipleResponse{Results: out})
}

type effectiveRequest struct {
	UserID string `json:"user_id"`
	targetPayload
}

type effectiveResponse struct {
	CanBrowse   bool     `json:"can_browse"`
	Permissions []string `json:"permissions"`
}

// Effective handles POST /v1/access/effective.
func (h *AccessHandler) Effective(w http.ResponseWriter, r *http.Request) {
	var req effectiveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	target := req.target()
	if err := target.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	access, err := h.checker.Effective(r.Context(), &accesscontrol.AccessRequest{
		UserID: req.UserID,
		Target: target,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	permissions := make([]string, 0, len(access.Permissions))
	for _, p := range access.Permissions.List() {
		permissions = append(permissions, string(p))
	}
	sort.Strings(permissions)
	respondJSON(w, http.StatusOK, effectiveResponse{
		CanBrowse:   access.CanBrowse,
		Permissions: permissions,
	})
}

type lookupProjectsResponse struct {
	Projects      []string `json:"projects"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}

// LookupProjects handles GET /v1/access/projects.
func (h *AccessHandler) LookupProjects(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp, err := h.lookup.LookupProjects(r.Context(), &accesscontrol.LookupProjectsRequest{
		UserID:    userID,
		PageSize:  queryInt(r, "page_size"),
		PageToken: r.URL.Query().Get("page_token"),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lookupProjectsResponse{
		Projects:      resp.ProjectSlugs,
		NextPageToken: resp.NextPageToken,
	})
}

type lookupComponentsResponse struct {
	Components    []string `json:"components"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}

// LookupComponents handles GET /v1/access/components.
func (h *AccessHandler) LookupComponents(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	project := r.URL.Query().Get("project")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if project == "" {
		respondError(w, http.StatusBadRequest, "project is required")
		return
	}

	resp, err := h.lookup.LookupComponents(r.Context(), &accesscontrol.LookupComponentsRequest{
		UserID:    userID,
		Project:   project,
		PageSize:  queryInt(r, "page_size"),
		PageToken: r.URL.Query().Get("page_token"),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lookupComponentsResponse{
		Components:    resp.ComponentSlugs,
		NextPageToken: resp.NextPageToken,
	})
}

type lookupUsersRequest struct {
	Permission string `json:"permission"`
	PageSize   int    `json:"page_size,omitempty"`
	PageToken  string `json:"page_token,omitempty"`
	targetPayload
}

type lookupUsersResponse struct {
	UserIDs       []string `json:"user_ids"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}

// LookupUsers handles POST /v1/access/users.
func (h *AccessHandler) LookupUsers(w http.ResponseWriter, r *http.Request) {
	var req lookupUsersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	target := req.target()
	if err := target.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !entities.KnownPermission(entities.Permission(req.Permission)) {
		respondError(w, http.StatusBadRequest, "unknown permission "+strconv.Quote(req.Permission))
		return
	}

	resp, err := h.lookup.LookupUsers(r.Context(), &accesscontrol.LookupUsersRequest{
		Target:     target,
		Permission: entities.Permission(req.Permission),
		PageSize:   req.PageSize,
		PageToken:  req.PageToken,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lookupUsersResponse{
		UserIDs:       resp.UserIDs,
		NextPageToken: resp.NextPageToken,
	})
}

func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
