package handlers

import (
	"net/http"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/services"
	"github.com/go-chi/chi/v5"
)

// DirectoryHandler serves user, role and group management.
type DirectoryHandler struct {
	directory services.DirectoryServiceInterface
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory services.DirectoryServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type userPayload struct {
	ID        string    `json:"id,omitempty"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func userToPayload(u *entities.User) userPayload {
	return userPayload{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

// CreateUser handles POST /v1/users.
func (h *DirectoryHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	user, err := h.directory.CreateUser(r.Context(), &entities.User{ID: req.ID, Username: req.Username})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, userToPayload(user))
}

// GetUser handles GET /v1/users/{id}.
func (h *DirectoryHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.directory.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userToPayload(user))
}

// ListUsers handles GET /v1/users.
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, userToPayload(u))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteUser handles DELETE /v1/users/{id}.
func (h *DirectoryHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type rolePayload struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func roleToPayload(role *entities.Role) rolePayload {
	permissions := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		permissions = append(permissions, string(p))
	}
	return rolePayload{Name: role.Name, Permissions: permissions}
}

func (p rolePayload) toEntity() *entities.Role {
	permissions := make([]entities.Permission, 0, len(p.Permissions))
	for _, s := range p.Permissions {
		permissions = append(permissions, entities.Permission(s))
	}
	return &entities.Role{Name: p.Name, Permissions: permissions}
}

// CreateRole handles POST /v1/roles.
func (h *DirectoryHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req rolePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	role := req.toEntity()
	if err := role.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.directory.CreateRole(r.Context(), role); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, roleToPayload(role))
}

// UpdateRole handles PUT /v1/roles/{name}.
func (h *DirectoryHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req rolePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Name = chi.URLParam(r, "name")

	role := req.toEntity()
	if err := role.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.directory.UpdateRole(r.Context(), role); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, roleToPayload(role))
}

// GetRole handles GET /v1/roles/{name}.
func (h *DirectoryHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.directory.GetRole(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, roleToPayload(role))
}

// ListRoles handles GET /v1/roles.
func (h *DirectoryHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.directory.ListRoles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]rolePayload, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleToPayload(role))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteRole handles DELETE /v1/roles/{name}.
func (h *DirectoryHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteRole(r.Context(), chi.URLParam(r, "name")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type componentRefPayload struct {
	Project   string `json:"project"`
	Component string `json:"component"`
}

type groupPayload struct {
	ID               string                `json:"id,omitempty"`
	Name             string                `json:"name"`
	Roles            []string              `json:"roles,omitempty"`
	ComponentLists   []string              `json:"component_lists,omitempty"`
	Components       []componentRefPayload `json:"components,omitempty"`
	Projects         []string              `json:"projects,omitempty"`
	ProjectSelection string                `json:"project_selection,omitempty"`
	Languages        []string              `json:"languages,omitempty"`
	Members          []string              `json:"members,omitempty"`
	CreatedAt        time.Time             `json:"created_at,omitempty"`
}

func groupToPayload(g *entities.Group) groupPayload {
	components := make([]componentRefPayload, 0, len(g.Components))
	for _, ref := range g.Components {
		components = append(components, componentRefPayload{Project: ref.Project, Component: ref.Component})
	}
	return groupPayload{
		ID:               g.ID,
		Name:             g.Name,
		Roles:            g.Roles,
		ComponentLists:   g.ComponentLists,
		Components:       components,
		Projects:         g.Projects,
		ProjectSelection: g.ProjectSelection,
		Languages:        g.Languages,
		Members:          g.Members,
		CreatedAt:        g.CreatedAt,
	}
}

func (p groupPayload) toEntity() *entities.Group {
	components := make([]entities.ComponentRef, 0, len(p.Components))
	for _, ref := range p.Components {
		components = append(components, entities.ComponentRef{Project: ref.Project, Component: ref.Component})
	}
	return &entities.Group{
		ID:               p.ID,
		Name:             p.Name,
		Roles:            p.Roles,
		ComponentLists:   p.ComponentLists,
		Components:       components,
		Projects:         p.Projects,
		ProjectSelection: p.ProjectSelection,
		Languages:        p.Languages,
		Members:          p.Members,
	}
}

// CreateGroup handles POST /v1/groups.
func (h *DirectoryHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	group := req.toEntity()
	if err := group.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.directory.CreateGroup(r.Context(), group)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, groupToPayload(created))
}

// UpdateGroup handles PUT /v1/groups/{id}.
func (h *DirectoryHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.ID = chi.URLParam(r, "id")

	group := req.toEntity()
	if err := group.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.directory.UpdateGroup(r.Context(), group); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, groupToPayload(group))
}

// GetGroup handles GET /v1/groups/{id}.
func (h *DirectoryHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.directory.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupToPayload(group))
}

// ListGroups handles GET /v1/groups.
func (h *DirectoryHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.directory.ListGroups(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]groupPayload, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupToPayload(g))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteGroup handles DELETE /v1/groups/{id}.
func (h *DirectoryHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles PUT /v1/groups/{id}/members/{userID}.
func (h *DirectoryHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.AddMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /v1/groups/{id}/members/{userID}.
func (h *DirectoryHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
