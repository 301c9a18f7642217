package accesscontrol

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories/postgres"
	"github.com/WeblateOrg/weblate-sub003/pkg/cache"
)

// DirectoryInterface provides the membership snapshot for a user.
// This interface is defined here to avoid a dependency on the services
// package.
type DirectoryInterface interface {
	Profile(ctx context.Context, userID string) (*Profile, error)
}

// CheckerInterface defines the interface for access checks.
type CheckerInterface interface {
	Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error)
	CheckMultiple(ctx context.Context, req *AccessRequest, permissions []entities.Permission) (map[entities.Permission]bool, error)
	Effective(ctx context.Context, req *AccessRequest) (*entities.Access, error)
}

// Checker answers access checks by resolving the user's membership
// snapshot against the target, with optional result caching.
type Checker struct {
	directory DirectoryInterface
	resolver  *Resolver
	cache     cache.Cache               // optional cache for resolved access
	revisions postgres.RevisionProvider // optional revision source for cache consistency
	cacheTTL  time.Duration
}

// CheckRequest contains the parameters for a single permission check.
type CheckRequest struct {
	UserID     string
	Target     entities.Target
	Permission entities.Permission
}

// CheckResponse contains the result of a permission check.
type CheckResponse struct {
	Allowed bool
}

// AccessRequest identifies a (user, target) pair.
type AccessRequest struct {
	UserID string
	Target entities.Target
}

// NewChecker creates a new Checker without caching.
func NewChecker(directory DirectoryInterface, resolver *Resolver) *Checker {
	return &Checker{
		directory: directory,
		resolver:  resolver,
	}
}

// NewCheckerWithCache creates a new Checker with caching enabled.
// Resolved access is memoized per (user, target, directory revision);
// any directory write bumps the revision and invalidates prior entries.
func NewCheckerWithCache(
	directory DirectoryInterface,
	resolver *Resolver,
	c cache.Cache,
	revisions postgres.RevisionProvider,
	cacheTTL time.Duration,
) *Checker {
	return &Checker{
		directory: directory,
		resolver:  resolver,
		cache:     c,
		revisions: revisions,
		cacheTTL:  cacheTTL,
	}
}

// Check performs a single permission check. A permission is allowed
// only when the target is browsable by the user and some group grants
// the permission for the target's scope.
func (c *Checker) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Permission == "" {
		return nil, fmt.Errorf("invalid check request: permission is required")
	}
	if !entities.KnownPermission(req.Permission) {
		return nil, fmt.Errorf("unknown permission %q", req.Permission)
	}

	access, err := c.Effective(ctx, &AccessRequest{UserID: req.UserID, Target: req.Target})
	if err != nil {
		return nil, err
	}

	return &CheckResponse{Allowed: access.Allows(req.Permission)}, nil
}

// CheckMultiple checks several permissions on the same target with a
// single resolution pass.
func (c *Checker) CheckMultiple(ctx context.Context, req *AccessRequest, permissions []entities.Permission) (map[entities.Permission]bool, error) {
	access, err := c.Effective(ctx, req)
	if err != nil {
		return nil, err
	}

	results := make(map[entities.Permission]bool, len(permissions))
	for _, p := range permissions {
		results[p] = access.Allows(p)
	}
	return results, nil
}

// Effective computes the full effective access of a user on a target.
func (c *Checker) Effective(ctx context.Context, req *AccessRequest) (*entities.Access, error) {
	if err := c.validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid access request: %w", err)
	}

	useCache := c.cache != nil && c.revisions != nil

	var cacheKey string
	if useCache {
		revision, err := c.revisions.CurrentRevision(ctx)
		if err != nil {
			// Continue without cache; the check itself can still run.
			useCache = false
		} else {
			cacheKey = c.generateCacheKey(req, revision)
			if cached, found := c.cache.Get(ctx, cacheKey); found {
				if access, ok := cached.(*entities.Access); ok {
					return access, nil
				}
			}
		}
	}

	profile, err := c.directory.Profile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership profile: %w", err)
	}

	access, err := c.resolver.Resolve(ctx, profile, req.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access: %w", err)
	}

	if useCache && cacheKey != "" {
		_ = c.cache.Set(ctx, cacheKey, access, c.cacheTTL)
	}

	return access, nil
}

func (c *Checker) validateRequest(req *AccessRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	return req.Target.Validate()
}

// generateCacheKey builds the cache key for an access request at a
// given directory revision.
func (c *Checker) generateCacheKey(req *AccessRequest, revision string) string {
	keyData := fmt.Sprintf("%s:%s:%s", req.UserID, req.Target.String(), revision)
	hash := sha256.Sum256([]byte(keyData))
	return hex.EncodeToString(hash[:])
}
