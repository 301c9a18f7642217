package handlers

import (
	"net/http"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/services"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves project, component, component list and language
// management.
type CatalogHandler struct {
	catalog services.CatalogServiceInterface
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog services.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type projectPayload struct {
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Visibility string    `json:"visibility,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func projectToPayload(p *entities.Project) projectPayload {
	return projectPayload{Slug: p.Slug, Name: p.Name, Visibility: p.Visibility, CreatedAt: p.CreatedAt}
}

// CreateProject handles POST /v1/projects.
func (h *CatalogHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	project := &entities.Project{Slug: req.Slug, Name: req.Name, Visibility: req.Visibility}
	if project.Visibility == "" {
		project.Visibility = entities.VisibilityPublic
	}
	if err := project.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.CreateProject(r.Context(), project); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, projectToPayload(project))
}

// UpdateProject handles PUT /v1/projects/{project}.
func (h *CatalogHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Slug = chi.URLParam(r, "project")

	project := &entities.Project{Slug: req.Slug, Name: req.Name, Visibility: req.Visibility}
	if err := project.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.UpdateProject(r.Context(), project); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, projectToPayload(project))
}

// GetProject handles GET /v1/projects/{project}.
func (h *CatalogHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.catalog.GetProject(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projectToPayload(project))
}

// ListProjects handles GET /v1/projects.
func (h *CatalogHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.catalog.ListProjects(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectToPayload(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteProject handles DELETE /v1/projects/{project}.
func (h *CatalogHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProject(r.Context(), chi.URLParam(r, "project")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type componentPayload struct {
	Project    string    `json:"project,omitempty"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Restricted bool      `json:"restricted,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func componentToPayload(c *entities.Component) componentPayload {
	return componentPayload{
		Project:    c.ProjectSlug,
		Slug:       c.Slug,
		Name:       c.Name,
		Restricted: c.Restricted,
		CreatedAt:  c.CreatedAt,
	}
}

// CreateComponent handles POST /v1/projects/{project}/components.
func (h *CatalogHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	component := &entities.Component{
		ProjectSlug: chi.URLParam(r, "project"),
		Slug:        req.Slug,
		Name:        req.Name,
		Restricted:  req.Restricted,
	}
	if err := component.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.CreateComponent(r.Context(), component); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, componentToPayload(component))
}

// UpdateComponent handles PUT /v1/projects/{project}/components/{component}.
func (h *CatalogHandler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	var req componentPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	component := &entities.Component{
		ProjectSlug: chi.URLParam(r, "project"),
		Slug:        chi.URLParam(r, "component"),
		Name:        req.Name,
		Restricted:  req.Restricted,
	}
	if err := component.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.UpdateComponent(r.Context(), component); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, componentToPayload(component))
}

// GetComponent handles GET /v1/projects/{project}/components/{component}.
func (h *CatalogHandler) GetComponent(w http.ResponseWriter, r *http.Request) {
	ref := entities.ComponentRef{
		Project:   chi.URLParam(r, "project"),
		Component: chi.URLParam(r, "component"),
	}
	component, err := h.catalog.GetComponent(r.Context(), ref)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, componentToPayload(component))
}

// ListComponents handles GET /v1/projects/{project}/components.
func (h *CatalogHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.catalog.ListComponents(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]componentPayload, 0, len(components))
	for _, c := range components {
		out = append(out, componentToPayload(c))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteComponent handles DELETE /v1/projects/{project}/components/{component}.
func (h *CatalogHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	ref := entities.ComponentRef{
		Project:   chi.URLParam(r, "project"),
		Component: chi.URLParam(r, "component"),
	}
	if err := h.catalog.DeleteComponent(r.Context(), ref); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type componentListPayload struct {
	Slug       string                `json:"slug"`
	Name       string                `json:"name"`
	Components []componentRefPayload `json:"components,omitempty"`
}

func componentListToPayload(l *entities.ComponentList) componentListPayload {
	components := make([]componentRefPayload, 0, len(l.Components))
	for _, ref := range l.Components {
		components = append(components, componentRefPayload{Project: ref.Project, Component: ref.Component})
	}
	return componentListPayload{Slug: l.Slug, Name: l.Name, Components: components}
}

func (p componentListPayload) toEntity() *entities.ComponentList {
	components := make([]entities.ComponentRef, 0, len(p.Components))
	for _, ref := range p.Components {
		components = append(components, entities.ComponentRef{Project: ref.Project, Component: ref.Component})
	}
	return &entities.ComponentList{Slug: p.Slug, Name: p.Name, Components: components}
}

// CreateComponentList handles POST /v1/component-lists.
func (h *CatalogHandler) CreateComponentList(w http.ResponseWriter, r *http.Request) {
	var req componentListPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	list := req.toEntity()
	if err := list.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.CreateComponentList(r.Context(), list); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, componentListToPayload(list))
}

// UpdateComponentList handles PUT /v1/component-lists/{list}.
func (h *CatalogHandler) UpdateComponentList(w http.ResponseWriter, r *http.Request) {
	var req componentListPayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Slug = chi.URLParam(r, "list")

	list := req.toEntity()
	if err := list.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.UpdateComponentList(r.Context(), list); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, componentListToPayload(list))
}

// GetComponentList handles GET /v1/component-lists/{list}.
func (h *CatalogHandler) GetComponentList(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.GetComponentList(r.Context(), chi.URLParam(r, "list"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, componentListToPayload(list))
}

// ListComponentLists handles GET /v1/component-lists.
func (h *CatalogHandler) ListComponentLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.catalog.ListComponentLists(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]componentListPayload, 0, len(lists))
	for _, l := range lists {
		out = append(out, componentListToPayload(l))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteComponentList handles DELETE /v1/component-lists/{list}.
func (h *CatalogHandler) DeleteComponentList(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteComponentList(r.Context(), chi.URLParam(r, "list")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type languagePayload struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Direction string `json:"direction,omitempty"`
}

func languageToPayload(l *entities.Language) languagePayload {
	return languagePayload{Code: l.Code, Name: l.Name, Direction: l.Direction}
}

// CreateLanguage handles POST /v1/languages.
func (h *CatalogHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languagePayload
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	language := &entities.Language{Code: req.Code, Name: req.Name, Direction: req.Direction}
	if err := language.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.CreateLanguage(r.Context(), language); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, languageToPayload(language))
}

// GetLanguage handles GET /v1/languages/{code}.
func (h *CatalogHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	language, err := h.catalog.GetLanguage(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, languageToPayload(language))
}

// ListLanguages handles GET /v1/languages.
func (h *CatalogHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.catalog.ListLanguages(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	out := make([]languagePayload, 0, len(languages))
	for _, l := range languages {
		out = append(out, languageToPayload(l))
	}
	respondJSON(w, http.StatusOK, out)
}

// DeleteLanguage handles DELETE /v1/languages/{code}.
func (h *CatalogHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteLanguage(r.Context(), chi.URLParam(r, "code")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
