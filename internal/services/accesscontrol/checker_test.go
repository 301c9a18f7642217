package accesscontrol

import (
	"context"
	"testing"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

func testSetup() (*fakeCatalog, *fakeDirectory) {
	catalog := newFakeCatalog().
		addProject("foo", entities.VisibilityPublic).
		addComponent("foo", "bar", false)

	group := &entities.Group{
		ID:         "g1",
		Name:       "Editors",
		Components: []entities.ComponentRef{{Project: "foo", Component: "bar"}},
	}
	directory := &fakeDirectory{profiles: map[string]*Profile{
		"u1": {UserID: "u1", Grants: []*Grant{grantOf(group, entities.PermUnitEdit)}},
	}}
	return catalog, directory
}

func TestChecker_Check(t *testing.T) {
	catalog, directory := testSetup()
	checker := NewChecker(directory, NewResolver(catalog))
	ctx := context.Background()

	tests := []struct {
		name        string
		req         *CheckRequest
		wantAllowed bool
		wantError   bool
	}{
		{
			name: "granted permission",
			req: &CheckRequest{
				UserID:     "u1",
				Target:     entities.ComponentTarget("foo", "bar"),
				Permission: entities.PermUnitEdit,
			},
			wantAllowed: true,
		},
		{
			name: "ungranted permission",
			req: &CheckRequest{
				UserID:     "u1",
				Target:     entities.ComponentTarget("foo", "bar"),
				Permission: entities.PermVCSPush,
			},
			wantAllowed: false,
		},
		{
			name: "user outside all groups",
			req: &CheckRequest{
				UserID:     "stranger",
				Target:     entities.ComponentTarget("foo", "bar"),
				Permission: entities.PermUnitEdit,
			},
			wantAllowed: false,
		},
		{
			name: "unknown permission",
			req: &CheckRequest{
				UserID:     "u1",
				Target:     entities.ComponentTarget("foo", "bar"),
				Permission: "not.real",
			},
			wantError: true,
		},
		{
			name: "missing permission",
			req: &CheckRequest{
				UserID: "u1",
				Target: entities.ComponentTarget("foo", "bar"),
			},
			wantError: true,
		},
		{
			name: "missing user",
			req: &CheckRequest{
				Target:     entities.ComponentTarget("foo", "bar"),
				Permission: entities.PermUnitEdit,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := checker.Check(ctx, tt.req)
			if (err != nil) != tt.wantError {
				t.Fatalf("Check() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			if resp.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", resp.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestChecker_CheckMultiple(t *testing.T) {
	catalog, directory := testSetup()
	checker := NewChecker(directory, NewResolver(catalog))

	results, err := checker.CheckMultiple(context.Background(), &AccessRequest{
		UserID: "u1",
		Target: entities.ComponentTarget("foo", "bar"),
	}, []entities.Permission{entities.PermUnitEdit, entities.PermVCSPush})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !results[entities.PermUnitEdit] {
		t.Error("expected unit.edit allowed")
	}
	if results[entities.PermVCSPush] {
		t.Error("expected vcs.push denied")
	}
}

func TestChecker_EffectiveCaching(t *testing.T) {
	catalog, directory := testSetup()
	c := newCountingCache()
	revisions := &fakeRevisions{revision: "1"}
	checker := NewCheckerWithCache(directory, NewResolver(catalog), c, revisions, time.Minute)
	ctx := context.Background()

	req := &AccessRequest{UserID: "u1", Target: entities.ComponentTarget("foo", "bar")}

	// First call resolves and stores
	first, err := checker.Effective(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.sets != 1 {
		t.Errorf("expected 1 cache set, got %d", c.sets)
	}

	// Second call at the same revision hits the cache
	second, err := checker.Effective(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", c.hits)
	}
	if first != second {
		t.Error("expected cached access to be returned as-is")
	}

	// A revision bump invalidates the key
	revisions.set("2")
	if _, err := checker.Effective(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.sets != 2 {
		t.Errorf("expected re-resolution after revision bump, sets = %d", c.sets)
	}
}

func TestChecker_EffectiveRevisionErrorSkipsCache(t *testing.T) {
	catalog, directory := testSetup()
	c := newCountingCache()
	revisions := &fakeRevisions{err: context.DeadlineExceeded}
	checker := NewCheckerWithCache(directory, NewResolver(catalog), c, revisions, time.Minute)

	access, err := checker.Effective(context.Background(), &AccessRequest{
		UserID: "u1",
		Target: entities.ComponentTarget("foo", "bar"),
	})
	if err != nil {
		t.Fatalf("expected check to proceed without cache, got %v", err)
	}
	if !access.Allows(entities.PermUnitEdit) {
		t.Error("expected resolved access despite revision failure")
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("expected cache untouched, gets=%d sets=%d", c.gets, c.sets)
	}
}
