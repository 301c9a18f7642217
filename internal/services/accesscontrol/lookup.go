package accesscontrol

import (
	"context"
	"fmt"
	"sort"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// UserSource enumerates users for subject lookups. This interface is
// defined here to avoid a dependency on the repositories package.
type UserSource interface {
	List(ctx context.Context) ([]*entities.User, error)
}

// LookupInterface defines the interface for access lookups.
type LookupInterface interface {
	LookupProjects(ctx context.Context, req *LookupProjectsRequest) (*LookupProjectsResponse, error)
	LookupComponents(ctx context.Context, req *LookupComponentsRequest) (*LookupComponentsResponse, error)
	LookupUsers(ctx context.Context, req *LookupUsersRequest) (*LookupUsersResponse, error)
}

// Lookup enumerates browsable targets and permitted users. This is a
// brute-force implementation: every candidate is resolved individually,
// relying on the checker's cache for repeated membership snapshots.
type Lookup struct {
	checker CheckerInterface
	catalog CatalogView
	users   UserSource
}

// LookupProjectsRequest asks which projects a user may browse.
type LookupProjectsRequest struct {
	UserID    string
	PageSize  int    // maximum number of results (0 = unlimited)
	PageToken string // last slug of the previous page
}

// LookupProjectsResponse lists browsable project slugs.
type LookupProjectsResponse struct {
	ProjectSlugs  []string
	NextPageToken string
}

// LookupComponentsRequest asks which components of a project a user may
// browse.
type LookupComponentsRequest struct {
	UserID    string
	Project   string
	PageSize  int
	PageToken string
}

// LookupComponentsResponse lists browsable component slugs.
type LookupComponentsResponse struct {
	ComponentSlugs []string
	NextPageToken  string
}

// LookupUsersRequest asks which users hold a permission on a target.
type LookupUsersRequest struct {
	Target     entities.Target
	Permission entities.Permission
	PageSize   int
	PageToken  string
}

// LookupUsersResponse lists permitted user IDs.
type LookupUsersResponse struct {
	UserIDs       []string
	NextPageToken string
}

// NewLookup creates a new Lookup.
func NewLookup(checker CheckerInterface, catalog CatalogView, users UserSource) *Lookup {
	return &Lookup{
		checker: checker,
		catalog: catalog,
		users:   users,
	}
}

// LookupProjects finds all projects the user may browse.
func (l *Lookup) LookupProjects(ctx context.Context, req *LookupProjectsRequest) (*LookupProjectsResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("invalid lookup projects request: user ID is required")
	}

	projects, err := l.catalog.ListProjects(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	candidates := make([]string, 0, len(projects))
	for _, p := range projects {
		candidates = append(candidates, p.Slug)
	}

	slugs, next, err := l.filterCandidates(ctx, candidates, req.PageSize, req.PageToken, func(slug string) (bool, error) {
		access, err := l.checker.Effective(ctx, &AccessRequest{
			UserID: req.UserID,
			Target: entities.ProjectTarget(slug),
		})
		if err != nil {
			return false, err
		}
		return access.CanBrowse, nil
	})
	if err != nil {
		return nil, err
	}

	return &LookupProjectsResponse{ProjectSlugs: slugs, NextPageToken: next}, nil
}

// LookupComponents finds all components of a project the user may
// browse, taking restricted components into account.
func (l *Lookup) LookupComponents(ctx context.Context, req *LookupComponentsRequest) (*LookupComponentsResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("invalid lookup components request: user ID is required")
	}
	if req.Project == "" {
		return nil, fmt.Errorf("invalid lookup components request: project is required")
	}

	components, err := l.catalog.ListComponents(ctx, req.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}

	candidates := make([]string, 0, len(components))
	for _, c := range components {
		candidates = append(candidates, c.Slug)
	}

	slugs, next, err := l.filterCandidates(ctx, candidates, req.PageSize, req.PageToken, func(slug string) (bool, error) {
		access, err := l.checker.Effective(ctx, &AccessRequest{
			UserID: req.UserID,
			Target: entities.ComponentTarget(req.Project, slug),
		})
		if err != nil {
			return false, err
		}
		return access.CanBrowse, nil
	})
	if err != nil {
		return nil, err
	}

	return &LookupComponentsResponse{ComponentSlugs: slugs, NextPageToken: next}, nil
}

// LookupUsers finds all users holding the permission on the target.
func (l *Lookup) LookupUsers(ctx context.Context, req *LookupUsersRequest) (*LookupUsersResponse, error) {
	if err := req.Target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lookup users request: %w", err)
	}
	if !entities.KnownPermission(req.Permission) {
		return nil, fmt.Errorf("unknown permission %q", req.Permission)
	}

	users, err := l.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	candidates := make([]string, 0, len(users))
	for _, u := range users {
		candidates = append(candidates, u.ID)
	}

	ids, next, err := l.filterCandidates(ctx, candidates, req.PageSize, req.PageToken, func(userID string) (bool, error) {
		resp, err := l.checker.Check(ctx, &CheckRequest{
			UserID:     userID,
			Target:     req.Target,
			Permission: req.Permission,
		})
		if err != nil {
			return false, err
		}
		return resp.Allowed, nil
	})
	if err != nil {
		return nil, err
	}

	return &LookupUsersResponse{UserIDs: ids, NextPageToken: next}, nil
}

// filterCandidates runs the allow predicate over sorted candidates,
// applying page-token and page-size windowing. The next page token is
// the last candidate examined when a full page was produced.
func (l *Lookup) filterCandidates(
	ctx context.Context,
	candidates []string,
	pageSize int,
	pageToken string,
	allowed func(string) (bool, error),
) ([]string, string, error) {
	sort.Strings(candidates)

	start := 0
	if pageToken != "" {
		for i, c := range candidates {
			if c == pageToken {
				start = i + 1
				break
			}
		}
	}

	results := make([]string, 0)
	lastExamined := ""
	for _, candidate := range candidates[start:] {
		lastExamined = candidate

		ok, err := allowed(candidate)
		if err != nil {
			// Skip candidates that fail to resolve; lookup is best
			// effort over a changing directory.
			continue
		}
		if ok {
			results = append(results, candidate)
			if pageSize > 0 && len(results) >= pageSize {
				break
			}
		}
	}

	nextPageToken := ""
	if pageSize > 0 && len(results) == pageSize && lastExamined != "" && lastExamined != candidates[len(candidates)-1] {
		nextPageToken = lastExamined
	}

	return results, nextPageToken, nil
}
