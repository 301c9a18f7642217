package entities

import "testing"

func TestTranslationScoped(t *testing.T) {
	tests := []struct {
		name string
		perm Permission
		want bool
	}{
		{"editing strings is translation-scoped", PermUnitEdit, true},
		{"reviewing is translation-scoped", PermUnitReview, true},
		{"suggesting is translation-scoped", PermSuggestionAdd, true},
		{"committing is repository-level", PermVCSCommit, false},
		{"project management is not scoped", PermProjectEdit, false},
		{"adding translations is component-level", PermTranslationAdd, false},
		{"unknown permission", Permission("bogus.perm"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslationScoped(tt.perm); got != tt.want {
				t.Errorf("TranslationScoped(%q) = %v, want %v", tt.perm, got, tt.want)
			}
		})
	}
}

func TestKnownPermission(t *testing.T) {
	if !KnownPermission(PermUnitEdit) {
		t.Errorf("KnownPermission(%q) = false, want true", PermUnitEdit)
	}
	if KnownPermission(Permission("nope")) {
		t.Error("KnownPermission(\"nope\") = true, want false")
	}
}

func TestPermissionSet(t *testing.T) {
	set := NewPermissionSet(PermUnitEdit, PermSuggestionAdd)

	if !set.Has(PermUnitEdit) {
		t.Error("set should contain unit.edit")
	}
	if set.Has(PermVCSCommit) {
		t.Error("set should not contain vcs.commit")
	}

	set.Union(NewPermissionSet(PermVCSCommit))
	if !set.Has(PermVCSCommit) {
		t.Error("set should contain vcs.commit after union")
	}

	if len(set.List()) != 3 {
		t.Errorf("set size = %d, want 3", len(set.List()))
	}
}

func TestBuiltinRoles(t *testing.T) {
	roles := BuiltinRoles()
	if len(roles) == 0 {
		t.Fatal("no builtin roles")
	}

	for _, role := range roles {
		if err := role.Validate(); err != nil {
			t.Errorf("builtin role %q failed validation: %v", role.Name, err)
		}
	}
}
