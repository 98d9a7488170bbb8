package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/yz4230/repowatch/internal/entity"
)

const (
	branchRefPrefix = "refs/heads/"

	defaultRef        = "refs/heads/main"
	defaultBaseBranch = "main"
	defaultMessage    = "No commit message"
	defaultTitle      = "No title"
)

// Extractor turns a raw event payload into a record. now is the server
// receipt time.
type Extractor func(body []byte, now time.Time) (*entity.Record, error)

var extractors = map[Event]Extractor{
	EventPush:        ExtractPush,
	EventPullRequest: ExtractPullRequest,
}

// ExtractorFor returns the extractor for event, or false when the event type
// is not recorded.
func ExtractorFor(event Event) (Extractor, bool) {
	extract, ok := extractors[event]
	return extract, ok
}

// ExtractPush decodes a push delivery into a record.
func ExtractPush(body []byte, now time.Time) (*entity.Record, error) {
	var payload PushPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode push payload: %v", entity.ErrExtractionFailed, err)
	}
	return payload.Record(now), nil
}

// ExtractPullRequest decodes a pull_request delivery into a record.
func ExtractPullRequest(body []byte, now time.Time) (*entity.Record, error) {
	var payload PullRequestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode pull_request payload: %v", entity.ErrExtractionFailed, err)
	}
	return payload.Record(now), nil
}

// Record normalizes the push payload. Absent fields fall back to defaults.
func (p *PushPayload) Record(now time.Time) *entity.Record {
	pusher := p.GetPusher().GetName()
	if pusher == entity.Unknown {
		pusher = ""
	}
	author := lo.CoalesceOrEmpty(pusher, p.GetHeadCommit().GetAuthor().GetName(), entity.Unknown)

	repository := lo.CoalesceOrEmpty(p.GetRepository().GetName(), entity.Unknown)
	ref := lo.CoalesceOrEmpty(p.GetRef(), defaultRef)

	return &entity.Record{
		Author:    author,
		PushedTo:  PushedTo(repository, BranchFromRef(ref)),
		On:        lo.CoalesceOrEmpty(p.GetHeadCommit().GetTimestamp(), isoTimestamp(now)),
		Sample:    lo.CoalesceOrEmpty(p.GetHeadCommit().GetMessage(), defaultMessage),
		Timestamp: now.UTC(),
	}
}

// Record normalizes the pull request payload. The record targets the base
// branch; the head branch is not persisted.
func (p *PullRequestPayload) Record(now time.Time) *entity.Record {
	pr := p.GetPullRequest()
	action := lo.CoalesceOrEmpty(p.GetAction(), entity.Unknown)
	repository := lo.CoalesceOrEmpty(p.GetRepository().GetName(), entity.Unknown)
	base := lo.CoalesceOrEmpty(pr.GetBase().GetRef(), defaultBaseBranch)

	return &entity.Record{
		Author:   lo.CoalesceOrEmpty(pr.GetUser().GetLogin(), entity.Unknown),
		PushedTo: PushedTo(repository, base),
		On:       lo.CoalesceOrEmpty(pr.GetCreatedAt(), pr.GetUpdatedAt(), isoTimestamp(now)),
		Sample: fmt.Sprintf("PR #%s: %s (%s)",
			lo.CoalesceOrEmpty(pr.GetNumber(), entity.Unknown),
			lo.CoalesceOrEmpty(pr.GetTitle(), defaultTitle),
			action,
		),
		Timestamp: now.UTC(),
	}
}

// BranchFromRef strips the refs/heads/ prefix. Other refs are returned as-is.
func BranchFromRef(ref string) string {
	if strings.HasPrefix(ref, branchRefPrefix) {
		return strings.TrimPrefix(ref, branchRefPrefix)
	}
	return ref
}

func PushedTo(repository, branch string) string {
	return repository + ":" + branch
}

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
