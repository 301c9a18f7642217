package accesscontrol

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/pkg/cache"
)

// fakeCatalog is an in-memory CatalogView for tests.
type fakeCatalog struct {
	projects   map[string]*entities.Project
	components map[string]*entities.Component
	lists      map[string]*entities.ComponentList
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		projects:   make(map[string]*entities.Project),
		components: make(map[string]*entities.Component),
		lists:      make(map[string]*entities.ComponentList),
	}
}

func (f *fakeCatalog) addProject(slug, visibility string) *fakeCatalog {
	f.projects[slug] = &entities.Project{Slug: slug, Name: slug, Visibility: visibility}
	return f
}

func (f *fakeCatalog) addComponent(project, slug string, restricted bool) *fakeCatalog {
	c := &entities.Component{ProjectSlug: project, Slug: slug, Name: slug, Restricted: restricted}
	f.components[c.Ref().String()] = c
	return f
}

func (f *fakeCatalog) addList(slug string, refs ...entities.ComponentRef) *fakeCatalog {
	f.lists[slug] = &entities.ComponentList{Slug: slug, Name: slug, Components: refs}
	return f
}

func (f *fakeCatalog) GetProject(ctx context.Context, slug string) (*entities.Project, error) {
	p, ok := f.projects[slug]
	if !ok {
		return nil, fmt.Errorf("project %s not found", slug)
	}
	return p, nil
}

func (f *fakeCatalog) GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error) {
	c, ok := f.components[ref.String()]
	if !ok {
		return nil, fmt.Errorf("component %s not found", ref)
	}
	return c, nil
}

func (f *fakeCatalog) GetComponentLists(ctx context.Context, slugs []string) ([]*entities.ComponentList, error) {
	out := make([]*entities.ComponentList, 0, len(slugs))
	for _, slug := range slugs {
		if l, ok := f.lists[slug]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListProjects(ctx context.Context, visibility string) ([]*entities.Project, error) {
	out := make([]*entities.Project, 0, len(f.projects))
	for _, p := range f.projects {
		if visibility == "" || p.Visibility == visibility {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error) {
	out := make([]*entities.Component, 0)
	for _, c := range f.components {
		if c.ProjectSlug == projectSlug {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeDirectory serves fixed profiles keyed by user ID.
type fakeDirectory struct {
	profiles map[string]*Profile
}

func (f *fakeDirectory) Profile(ctx context.Context, userID string) (*Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	// Users outside every group still resolve, with no grants.
	return &Profile{UserID: userID}, nil
}

// fakeUserSource lists fixed users.
type fakeUserSource struct {
	users []*entities.User
}

func (f *fakeUserSource) List(ctx context.Context) ([]*entities.User, error) {
	return f.users, nil
}

// fakeRevisions serves a settable revision.
type fakeRevisions struct {
	mu       sync.Mutex
	revision string
	err      error
}

func (f *fakeRevisions) CurrentRevision(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revision, f.err
}

func (f *fakeRevisions) set(revision string) {
	f.mu.Lock()
	f.revision = revision
	f.mu.Unlock()
}

// countingCache wraps a map and counts gets and sets.
type countingCache struct {
	mu   sync.Mutex
	data map[string]interface{}
	gets int
	hits int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{data: make(map[string]interface{})}
}

func (c *countingCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *countingCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]interface{})
	return nil
}

func (c *countingCache) Close() error { return nil }

func (c *countingCache) Metrics() *cache.Metrics { return nil }

// grantOf builds a grant with the union of the given permissions.
func grantOf(group *entities.Group, perms ...entities.Permission) *Grant {
	return &Grant{Group: group, Permissions: entities.NewPermissionSet(perms...)}
}
