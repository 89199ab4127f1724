package handler

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/aus-site/aus-server/internal/model"
)

func TestBadgeListUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"array", `["a", "b"]`, []string{"a", "b"}},
		{"array with whitespace", `[" a ", "", "b"]`, []string{"a", "b"}},
		{"comma string", `"x, y ,z"`, []string{"x", "y", "z"}},
		{"comma string with empties", `"x,, ,y"`, []string{"x", "y"}},
		{"empty string", `""`, []string{}},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b badgeList
			if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if !reflect.DeepEqual([]string(b), tt.want) {
				t.Errorf("got %v, want %v", []string(b), tt.want)
			}
		})
	}
}

func TestBadgeListUnmarshalRejectsOtherTypes(t *testing.T) {
	for _, input := range []string{`42`, `{"a":1}`, `true`} {
		var b badgeList
		if err := json.Unmarshal([]byte(input), &b); err == nil {
			t.Errorf("expected %s to be rejected", input)
		}
	}
}

func TestFounderPayloadMerge(t *testing.T) {
	name := "  New Name  "
	title := "New Title"
	payload := founderPayload{Name: &name, Title: &title}

	f := model.Founder{
		Name:  "Old Name",
		Title: "Old Title",
		Bio:   "Old Bio",
		Image: "old.jpg",
	}
	if err := payload.merge(&f); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if f.Name != "New Name" {
		t.Errorf("expected trimmed name, got %q", f.Name)
	}
	if f.Title != "New Title" {
		t.Errorf("expected updated title, got %q", f.Title)
	}
	// Absent fields stay untouched.
	if f.Bio != "Old Bio" || f.Image != "old.jpg" {
		t.Errorf("expected absent fields to be preserved, got %+v", f)
	}
}

func TestFounderPayloadMergeRejectsBlankFields(t *testing.T) {
	blank := "   "
	payload := founderPayload{Bio: &blank}

	f := model.Founder{Bio: "keep"}
	if err := payload.merge(&f); err == nil {
		t.Error("expected blank bio to be rejected")
	}
	if f.Bio != "keep" {
		t.Errorf("expected bio to be untouched after failed merge, got %q", f.Bio)
	}
}

func TestFounderPayloadMergeBadges(t *testing.T) {
	badges := badgeList{"one", "two"}
	payload := founderPayload{Badges: &badges}

	f := model.Founder{Badges: []string{"old"}}
	if err := payload.merge(&f); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !reflect.DeepEqual(f.Badges, []string{"one", "two"}) {
		t.Errorf("expected badges replaced, got %v", f.Badges)
	}
}
