package main

import "testing"

func TestSplitSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slug    string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "valid", slug: "golang/go", owner: "golang", repo: "go"},
		{name: "missing repo", slug: "golang", wantErr: true},
		{name: "empty owner", slug: "/go", wantErr: true},
		{name: "empty repo", slug: "golang/", wantErr: true},
		{name: "extra segment", slug: "golang/go/src", wantErr: true},
		{name: "empty", slug: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			owner, repo, err := splitSlug(tt.slug)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("splitSlug(%q) = %q, %q, want error", tt.slug, owner, repo)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitSlug(%q) returned error: %v", tt.slug, err)
			}
			if owner != tt.owner || repo != tt.repo {
				t.Errorf("splitSlug(%q) = %q, %q, want %q, %q", tt.slug, owner, repo, tt.owner, tt.repo)
			}
		})
	}
}
