package repository_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nc-news/internal/pkg/query"
	"nc-news/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func TestArticlePatchBuild(t *testing.T) {
	tests := []struct {
		name  string
		patch repository.ArticlePatch
		want  query.Patch
	}{
		{
			name:  "empty",
			patch: repository.ArticlePatch{},
			want:  query.Patch{},
		},
		{
			name:  "votes only",
			patch: repository.ArticlePatch{IncVotes: ptr(int64(-4))},
			want: query.Patch{Assignments: []query.Assignment{
				query.Increment("votes", int64(-4)),
			}},
		},
		{
			name: "all fields in column order with topic check",
			patch: repository.ArticlePatch{
				Topic:    ptr("cats"),
				Title:    ptr("new title"),
				Body:     ptr("new body"),
				IncVotes: ptr(int64(6)),
			},
			want: query.Patch{
				Assignments: []query.Assignment{
					query.Increment("votes", int64(6)),
					query.Set("body", "new body"),
					query.Set("title", "new title"),
					query.Set("topic", "cats"),
				},
				Checks: []query.ExistenceCheck{
					{Table: query.TableTopics, Column: "slug", Value: "cats"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Build()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommentPatchBuild(t *testing.T) {
	got := repository.CommentPatch{IncVotes: ptr(int64(1)), Body: ptr("edited")}.Build()
	want := query.Patch{Assignments: []query.Assignment{
		query.Increment("votes", int64(1)),
		query.Set("body", "edited"),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}

	if !(repository.CommentPatch{}).Build().Empty() {
		t.Error("empty comment patch should build an empty patch")
	}
}
