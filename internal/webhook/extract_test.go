package webhook

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yz4230/repowatch/internal/entity"
)

var testNow = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func TestExtractPush(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    entity.Record
	}{
		{
			name:    "full payload",
			payload: `{"ref":"refs/heads/main","repository":{"name":"r"},"pusher":{"name":"u"},"head_commit":{"message":"m","timestamp":"2024-01-01T00:00:00Z","author":{"name":"a"}}}`,
			want:    entity.Record{Author: "u", PushedTo: "r:main", On: "2024-01-01T00:00:00Z", Sample: "m"},
		},
		{
			name:    "pusher missing falls back to commit author",
			payload: `{"ref":"refs/heads/dev","repository":{"name":"r"},"head_commit":{"message":"m","timestamp":"t","author":{"name":"a"}}}`,
			want:    entity.Record{Author: "a", PushedTo: "r:dev", On: "t", Sample: "m"},
		},
		{
			name:    "pusher unknown falls back to commit author",
			payload: `{"ref":"refs/heads/dev","repository":{"name":"r"},"pusher":{"name":"unknown"},"head_commit":{"message":"m","timestamp":"t","author":{"name":"a"}}}`,
			want:    entity.Record{Author: "a", PushedTo: "r:dev", On: "t", Sample: "m"},
		},
		{
			name:    "no author anywhere",
			payload: `{"ref":"refs/heads/dev","repository":{"name":"r"},"head_commit":{"message":"m","timestamp":"t"}}`,
			want:    entity.Record{Author: "unknown", PushedTo: "r:dev", On: "t", Sample: "m"},
		},
		{
			name:    "tag ref kept verbatim",
			payload: `{"ref":"refs/tags/v1.0.0","repository":{"name":"r"},"pusher":{"name":"u"},"head_commit":{"message":"m","timestamp":"t"}}`,
			want:    entity.Record{Author: "u", PushedTo: "r:refs/tags/v1.0.0", On: "t", Sample: "m"},
		},
		{
			name:    "nested branch name",
			payload: `{"ref":"refs/heads/feature/login","repository":{"name":"r"},"pusher":{"name":"u"},"head_commit":{"message":"m","timestamp":"t"}}`,
			want:    entity.Record{Author: "u", PushedTo: "r:feature/login", On: "t", Sample: "m"},
		},
		{
			name:    "empty object uses defaults",
			payload: `{}`,
			want:    entity.Record{Author: "unknown", PushedTo: "unknown:main", On: "2024-03-01T12:30:00Z", Sample: "No commit message"},
		},
		{
			name:    "null head commit",
			payload: `{"ref":"refs/heads/gone","repository":{"name":"r"},"pusher":{"name":"u"},"head_commit":null}`,
			want:    entity.Record{Author: "u", PushedTo: "r:gone", On: "2024-03-01T12:30:00Z", Sample: "No commit message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPush([]byte(tt.payload), testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertRecord(t, got, tt.want)
		})
	}
}

func TestExtractPullRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    entity.Record
	}{
		{
			name:    "opened",
			payload: `{"action":"opened","repository":{"name":"r"},"pull_request":{"number":42,"title":"T","user":{"login":"u"},"base":{"ref":"main"},"head":{"ref":"feature"},"created_at":"2024-01-02T00:00:00Z","updated_at":"2024-01-03T00:00:00Z"}}`,
			want:    entity.Record{Author: "u", PushedTo: "r:main", On: "2024-01-02T00:00:00Z", Sample: "PR #42: T (opened)"},
		},
		{
			name:    "updated_at fallback",
			payload: `{"action":"closed","repository":{"name":"r"},"pull_request":{"number":7,"title":"T","user":{"login":"u"},"base":{"ref":"release"},"updated_at":"2024-01-03T00:00:00Z"}}`,
			want:    entity.Record{Author: "u", PushedTo: "r:release", On: "2024-01-03T00:00:00Z", Sample: "PR #7: T (closed)"},
		},
		{
			name:    "empty object uses defaults",
			payload: `{}`,
			want:    entity.Record{Author: "unknown", PushedTo: "unknown:main", On: "2024-03-01T12:30:00Z", Sample: "PR #unknown: No title (unknown)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPullRequest([]byte(tt.payload), testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertRecord(t, got, tt.want)
		})
	}
}

func TestExtractFailures(t *testing.T) {
	payloads := []string{
		`not json`,
		`{"pusher":"u"}`,
		`{"head_commit":{"timestamp":1704067200}}`,
		`{"repository":{"name":123}}`,
		`{"pusher":{"name":true}}`,
	}
	for _, payload := range payloads {
		if _, err := ExtractPush([]byte(payload), testNow); !errors.Is(err, entity.ErrExtractionFailed) {
			t.Errorf("ExtractPush(%s) error = %v; want ErrExtractionFailed", payload, err)
		}
	}
	for _, payload := range []string{
		`{"pull_request":[]}`,
		`{"pull_request":{"number":"abc"}}`,
		`{"repository":{"name":123}}`,
		`{"pull_request":{"user":{"login":7}}}`,
	} {
		if _, err := ExtractPullRequest([]byte(payload), testNow); !errors.Is(err, entity.ErrExtractionFailed) {
			t.Errorf("ExtractPullRequest(%s) error = %v; want ErrExtractionFailed", payload, err)
		}
	}
}

func TestExtractPullRequestAcceptsQuotedNumber(t *testing.T) {
	got, err := ExtractPullRequest([]byte(`{"action":"closed","pull_request":{"number":"42","title":"T"}}`), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sample != "PR #42: T (closed)" {
		t.Fatalf("Sample = %q", got.Sample)
	}
}

func TestBranchFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"refs/heads/main", "main"},
		{"refs/heads/feature/x", "feature/x"},
		{"refs/tags/v1", "refs/tags/v1"},
		{"main", "main"},
	}
	for _, tt := range tests {
		if got := BranchFromRef(tt.ref); got != tt.want {
			t.Errorf("BranchFromRef(%q) = %q; want %q", tt.ref, got, tt.want)
		}
	}
}

func TestPushedToHasSingleSeparator(t *testing.T) {
	for _, branch := range []string{"main", "dev", "release-1.2"} {
		got := PushedTo("repo", BranchFromRef("refs/heads/"+branch))
		if strings.Count(got, ":") != 1 {
			t.Errorf("PushedTo() = %q; want exactly one separator", got)
		}
	}
}

func TestExtractorFor(t *testing.T) {
	if _, ok := ExtractorFor(EventPush); !ok {
		t.Error("expected push extractor")
	}
	if _, ok := ExtractorFor(EventPullRequest); !ok {
		t.Error("expected pull_request extractor")
	}
	if _, ok := ExtractorFor("issues"); ok {
		t.Error("expected no extractor for issues")
	}
}

func assertRecord(t *testing.T, got *entity.Record, want entity.Record) {
	t.Helper()
	if got.Author != want.Author || got.PushedTo != want.PushedTo || got.On != want.On || got.Sample != want.Sample {
		t.Fatalf("unexpected record:\n got: %+v\nwant: %+v", *got, want)
	}
	if !got.Timestamp.Equal(testNow) {
		t.Fatalf("expected server timestamp %s, got %s", testNow, got.Timestamp)
	}
	if err := ValidateRecord(got); err != nil {
		t.Fatalf("extracted record failed validation: %v", err)
	}
}
