package entities

import "testing"

func TestGroup_Scope(t *testing.T) {
	tests := []struct {
		name  string
		group *Group
		want  ScopeKind
	}{
		{
			name:  "no attachments",
			group: &Group{Name: "viewers"},
			want:  ScopeNone,
		},
		{
			name: "component lists only",
			group: &Group{
				Name:           "list-scoped",
				ComponentLists: []string{"backend"},
			},
			want: ScopeComponentLists,
		},
		{
			name: "components only",
			group: &Group{
				Name:       "component-scoped",
				Components: []ComponentRef{{Project: "foo", Component: "bar"}},
			},
			want: ScopeComponents,
		},
		{
			name: "projects only",
			group: &Group{
				Name:     "project-scoped",
				Projects: []string{"foo"},
			},
			want: ScopeProjects,
		},
		{
			name: "all projects selection without explicit list",
			group: &Group{
				Name:             "platform-admins",
				ProjectSelection: SelectionAll,
			},
			want: ScopeProjects,
		},
		{
			name: "all public projects selection",
			group: &Group{
				Name:             "public-translators",
				ProjectSelection: SelectionAllPublic,
			},
			want: ScopeProjects,
		},
		{
			name: "component lists win over components and projects",
			group: &Group{
				Name:           "ambiguous",
				ComponentLists: []string{"backend"},
				Components:     []ComponentRef{{Project: "foo", Component: "bar"}},
				Projects:       []string{"foo"},
			},
			want: ScopeComponentLists,
		},
		{
			name: "components win over projects",
			group: &Group{
				Name:       "ambiguous",
				Components: []ComponentRef{{Project: "foo", Component: "bar"}},
				Projects:   []string{"foo"},
			},
			want: ScopeComponents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.group.Scope(); got != tt.want {
				t.Errorf("Group.Scope() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroup_AllowsLanguage(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		code      string
		want      bool
	}{
		{
			name:      "no attachment matches all",
			languages: nil,
			code:      "cs",
			want:      true,
		},
		{
			name:      "matching language",
			languages: []string{"cs", "sk"},
			code:      "cs",
			want:      true,
		},
		{
			name:      "non-matching language",
			languages: []string{"cs"},
			code:      "de",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Group{Name: "g", Languages: tt.languages}
			if got := g.AllowsLanguage(tt.code); got != tt.want {
				t.Errorf("Group.AllowsLanguage(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestGroup_Validate(t *testing.T) {
	tests := []struct {
		name      string
		group     *Group
		wantError bool
	}{
		{
			name:      "valid",
			group:     &Group{Name: "translators", ProjectSelection: SelectionManual},
			wantError: false,
		},
		{
			name:      "missing name",
			group:     &Group{},
			wantError: true,
		},
		{
			name:      "invalid selection",
			group:     &Group{Name: "g", ProjectSelection: "everything"},
			wantError: true,
		},
		{
			name: "incomplete component ref",
			group: &Group{
				Name:       "g",
				Components: []ComponentRef{{Project: "foo"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.group.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Group.Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
