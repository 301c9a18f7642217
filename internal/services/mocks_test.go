package services

import (
	"context"
	"fmt"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
)

// mockUserRepo is an in-memory UserRepository.
type mockUserRepo struct {
	users map[string]*entities.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*entities.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	if _, ok := m.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, repositories.ErrAlreadyExists)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Get(ctx context.Context, id string) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}
	return user, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

// mockRoleRepo is an in-memory RoleRepository.
type mockRoleRepo struct {
	roles map[string]*entities.Role
}

func newMockRoleRepo(roles ...*entities.Role) *mockRoleRepo {
	m := &mockRoleRepo{roles: make(map[string]*entities.Role)}
	for _, r := range roles {
		m.roles[r.Name] = r
	}
	return m
}

func (m *mockRoleRepo) Create(ctx context.Context, role *entities.Role) error {
	if _, ok := m.roles[role.Name]; ok {
		return fmt.Errorf("role %s: %w", role.Name, repositories.ErrAlreadyExists)
	}
	m.roles[role.Name] = role
	return nil
}

func (m *mockRoleRepo) Update(ctx context.Context, role *entities.Role) error {
	if _, ok := m.roles[role.Name]; !ok {
		return fmt.Errorf("role %s: %w", role.Name, repositories.ErrNotFound)
	}
	m.roles[role.Name] = role
	return nil
}

func (m *mockRoleRepo) Get(ctx context.Context, name string) (*entities.Role, error) {
	role, ok := m.roles[name]
	if !ok {
		return nil, fmt.Errorf("role %s: %w", name, repositories.ErrNotFound)
	}
	return role, nil
}

func (m *mockRoleRepo) GetMany(ctx context.Context, names []string) ([]*entities.Role, error) {
	out := make([]*entities.Role, 0, len(names))
	for _, name := range names {
		if r, ok := m.roles[name]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*entities.Role, error) {
	out := make([]*entities.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRoleRepo) Delete(ctx context.Context, name string) error {
	if _, ok := m.roles[name]; !ok {
		return fmt.Errorf("role %s: %w", name, repositories.ErrNotFound)
	}
	delete(m.roles, name)
	return nil
}

// mockGroupRepo is an in-memory GroupRepository.
type mockGroupRepo struct {
	groups map[string]*entities.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*entities.Group)}
}

func (m *mockGroupRepo) Create(ctx context.Context, group *entities.Group) error {
	if _, ok := m.groups[group.ID]; ok {
		return fmt.Errorf("group %s: %w", group.ID, repositories.ErrAlreadyExists)
	}
	m.groups[group.ID] = group
	return nil
}

func (m *mockGroupRepo) Update(ctx context.Context, group *entities.Group) error {
	if _, ok := m.groups[group.ID]; !ok {
		return fmt.Errorf("group %s: %w", group.ID, repositories.ErrNotFound)
	}
	m.groups[group.ID] = group
	return nil
}

func (m *mockGroupRepo) Get(ctx context.Context, id string) (*entities.Group, error) {
	group, ok := m.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, repositories.ErrNotFound)
	}
	return group, nil
}

func (m *mockGroupRepo) List(ctx context.Context) ([]*entities.Group, error) {
	out := make([]*entities.Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out, nil
}

func (m *mockGroupRepo) ListForUser(ctx context.Context, userID string) ([]*entities.Group, error) {
	out := make([]*entities.Group, 0)
	for _, g := range m.groups {
		for _, member := range g.Members {
			if member == userID {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.groups[id]; !ok {
		return fmt.Errorf("group %s: %w", id, repositories.ErrNotFound)
	}
	delete(m.groups, id)
	return nil
}

func (m *mockGroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	group, ok := m.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, repositories.ErrNotFound)
	}
	for _, member := range group.Members {
		if member == userID {
			return nil
		}
	}
	group.Members = append(group.Members, userID)
	return nil
}

func (m *mockGroupRepo) RemoveMember(ctx context.Context, groupID, userID string) error {
	group, ok := m.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, repositories.ErrNotFound)
	}
	members := group.Members[:0]
	for _, member := range group.Members {
		if member != userID {
			members = append(members, member)
		}
	}
	group.Members = members
	return nil
}

// mockCatalogRepo is an in-memory CatalogRepository.
type mockCatalogRepo struct {
	projects   map[string]*entities.Project
	components map[string]*entities.Component
	lists      map[string]*entities.ComponentList
	languages  map[string]*entities.Language
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		projects:   make(map[string]*entities.Project),
		components: make(map[string]*entities.Component),
		lists:      make(map[string]*entities.ComponentList),
		languages:  make(map[string]*entities.Language),
	}
}

func (m *mockCatalogRepo) CreateProject(ctx context.Context, project *entities.Project) error {
	if _, ok := m.projects[project.Slug]; ok {
		return fmt.Errorf("project %s: %w", project.Slug, repositories.ErrAlreadyExists)
	}
	m.projects[project.Slug] = project
	return nil
}

func (m *mockCatalogRepo) UpdateProject(ctx context.Context, project *entities.Project) error {
	if _, ok := m.projects[project.Slug]; !ok {
		return fmt.Errorf("project %s: %w", project.Slug, repositories.ErrNotFound)
	}
	m.projects[project.Slug] = project
	return nil
}

func (m *mockCatalogRepo) GetProject(ctx context.Context, slug string) (*entities.Project, error) {
	project, ok := m.projects[slug]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", slug, repositories.ErrNotFound)
	}
	return project, nil
}

func (m *mockCatalogRepo) ListProjects(ctx context.Context, visibility string) ([]*entities.Project, error) {
	out := make([]*entities.Project, 0, len(m.projects))
	for _, p := range m.projects {
		if visibility == "" || p.Visibility == visibility {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) DeleteProject(ctx context.Context, slug string) error {
	if _, ok := m.projects[slug]; !ok {
		return fmt.Errorf("project %s: %w", slug, repositories.ErrNotFound)
	}
	delete(m.projects, slug)
	return nil
}

func (m *mockCatalogRepo) CreateComponent(ctx context.Context, component *entities.Component) error {
	key := component.Ref().String()
	if _, ok := m.components[key]; ok {
		return fmt.Errorf("component %s: %w", key, repositories.ErrAlreadyExists)
	}
	m.components[key] = component
	return nil
}

func (m *mockCatalogRepo) UpdateComponent(ctx context.Context, component *entities.Component) error {
	key := component.Ref().String()
	if _, ok := m.components[key]; !ok {
		return fmt.Errorf("component %s: %w", key, repositories.ErrNotFound)
	}
	m.components[key] = component
	return nil
}

func (m *mockCatalogRepo) GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error) {
	component, ok := m.components[ref.String()]
	if !ok {
		return nil, fmt.Errorf("component %s: %w", ref, repositories.ErrNotFound)
	}
	return component, nil
}

func (m *mockCatalogRepo) ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error) {
	out := make([]*entities.Component, 0)
	for _, c := range m.components {
		if c.ProjectSlug == projectSlug {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) DeleteComponent(ctx context.Context, ref entities.ComponentRef) error {
	if _, ok := m.components[ref.String()]; !ok {
		return fmt.Errorf("component %s: %w", ref, repositories.ErrNotFound)
	}
	delete(m.components, ref.String())
	return nil
}

func (m *mockCatalogRepo) CreateComponentList(ctx context.Context, list *entities.ComponentList) error {
	if _, ok := m.lists[list.Slug]; ok {
		return fmt.Errorf("component list %s: %w", list.Slug, repositories.ErrAlreadyExists)
	}
	m.lists[list.Slug] = list
	return nil
}

func (m *mockCatalogRepo) UpdateComponentList(ctx context.Context, list *entities.ComponentList) error {
	if _, ok := m.lists[list.Slug]; !ok {
		return fmt.Errorf("component list %s: %w", list.Slug, repositories.ErrNotFound)
	}
	m.lists[list.Slug] = list
	return nil
}

func (m *mockCatalogRepo) GetComponentList(ctx context.Context, slug string) (*entities.ComponentList, error) {
	list, ok := m.lists[slug]
	if !ok {
		return nil, fmt.Errorf("component list %s: %w", slug, repositories.ErrNotFound)
	}
	return list, nil
}

func (m *mockCatalogRepo) GetComponentLists(ctx context.Context, slugs []string) ([]*entities.ComponentList, error) {
	out := make([]*entities.ComponentList, 0, len(slugs))
	for _, slug := range slugs {
		if l, ok := m.lists[slug]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) ListComponentLists(ctx context.Context) ([]*entities.ComponentList, error) {
	out := make([]*entities.ComponentList, 0, len(m.lists))
	for _, l := range m.lists {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockCatalogRepo) DeleteComponentList(ctx context.Context, slug string) error {
	if _, ok := m.lists[slug]; !ok {
		return fmt.Errorf("component list %s: %w", slug, repositories.ErrNotFound)
	}
	delete(m.lists, slug)
	return nil
}

func (m *mockCatalogRepo) CreateLanguage(ctx context.Context, language *entities.Language) error {
	if _, ok := m.languages[language.Code]; ok {
		return fmt.Errorf("language %s: %w", language.Code, repositories.ErrAlreadyExists)
	}
	m.languages[language.Code] = language
	return nil
}

func (m *mockCatalogRepo) GetLanguage(ctx context.Context, code string) (*entities.Language, error) {
	language, ok := m.languages[code]
	if !ok {
		return nil, fmt.Errorf("language %s: %w", code, repositories.ErrNotFound)
	}
	return language, nil
}

func (m *mockCatalogRepo) ListLanguages(ctx context.Context) ([]*entities.Language, error) {
	out := make([]*entities.Language, 0, len(m.languages))
	for _, l := range m.languages {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockCatalogRepo) DeleteLanguage(ctx context.Context, code string) error {
	if _, ok := m.languages[code]; !ok {
		return fmt.Errorf("language %s: %w", code, repositories.ErrNotFound)
	}
	delete(m.languages, code)
	return nil
}
