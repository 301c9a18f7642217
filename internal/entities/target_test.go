package entities

import "testing"

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name      string
		target    Target
		wantError bool
	}{
		{"project target", ProjectTarget("foo"), false},
		{"component target", ComponentTarget("foo", "bar"), false},
		{"translation target", TranslationTarget("foo", "bar", "cs"), false},
		{"missing project", Target{}, true},
		{"language without component", Target{Project: "foo", Language: "cs"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Target.Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestTarget_IsTranslation(t *testing.T) {
	if ProjectTarget("foo").IsTranslation() {
		t.Error("project target should not be a translation")
	}
	if ComponentTarget("foo", "bar").IsTranslation() {
		t.Error("component target should not be a translation")
	}
	if !TranslationTarget("foo", "bar", "cs").IsTranslation() {
		t.Error("component x language target should be a translation")
	}
}

func TestTarget_String(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{ProjectTarget("foo"), "foo"},
		{ComponentTarget("foo", "bar"), "foo/bar"},
		{TranslationTarget("foo", "bar", "cs"), "foo/bar:cs"},
	}

	for _, tt := range tests {
		if got := tt.target.String(); got != tt.want {
			t.Errorf("Target.String() = %q, want %q", got, tt.want)
		}
	}
}
