package webhook

import "encoding/json"

// Event is the value of the X-GitHub-Event header.
type Event string

const (
	EventPush        Event = "push"
	EventPullRequest Event = "pull_request"
)

// PushPayload holds the subset of a push delivery used for records. Every
// field is optional; getters are nil-safe.
type PushPayload struct {
	Ref        *string     `json:"ref,omitempty"`
	Repository *Repository `json:"repository,omitempty"`
	Pusher     *Actor      `json:"pusher,omitempty"`
	HeadCommit *HeadCommit `json:"head_commit,omitempty"`
}

// PullRequestPayload holds the subset of a pull_request delivery used for
// records.
type PullRequestPayload struct {
	Action      *string      `json:"action,omitempty"`
	Repository  *Repository  `json:"repository,omitempty"`
	PullRequest *PullRequest `json:"pull_request,omitempty"`
}

type Repository struct {
	Name *string `json:"name,omitempty"`
}

// Actor is a pusher or commit author, identified by name.
type Actor struct {
	Name *string `json:"name,omitempty"`
}

type HeadCommit struct {
	Message   *string `json:"message,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
	Author    *Actor  `json:"author,omitempty"`
}

type PullRequest struct {
	Number    *json.Number `json:"number,omitempty"`
	Title     *string      `json:"title,omitempty"`
	User      *User        `json:"user,omitempty"`
	Base      *Branch      `json:"base,omitempty"`
	Head      *Branch      `json:"head,omitempty"`
	CreatedAt *string      `json:"created_at,omitempty"`
	UpdatedAt *string      `json:"updated_at,omitempty"`
}

type User struct {
	Login *string `json:"login,omitempty"`
}

type Branch struct {
	Ref *string `json:"ref,omitempty"`
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (p *PushPayload) GetRef() string {
	if p == nil {
		return ""
	}
	return str(p.Ref)
}

func (p *PushPayload) GetRepository() *Repository {
	if p == nil {
		return nil
	}
	return p.Repository
}

func (p *PushPayload) GetPusher() *Actor {
	if p == nil {
		return nil
	}
	return p.Pusher
}

func (p *PushPayload) GetHeadCommit() *HeadCommit {
	if p == nil {
		return nil
	}
	return p.HeadCommit
}

func (p *PullRequestPayload) GetAction() string {
	if p == nil {
		return ""
	}
	return str(p.Action)
}

func (p *PullRequestPayload) GetRepository() *Repository {
	if p == nil {
		return nil
	}
	return p.Repository
}

func (p *PullRequestPayload) GetPullRequest() *PullRequest {
	if p == nil {
		return nil
	}
	return p.PullRequest
}

func (r *Repository) GetName() string {
	if r == nil {
		return ""
	}
	return str(r.Name)
}

func (a *Actor) GetName() string {
	if a == nil {
		return ""
	}
	return str(a.Name)
}

func (c *HeadCommit) GetMessage() string {
	if c == nil {
		return ""
	}
	return str(c.Message)
}

func (c *HeadCommit) GetTimestamp() string {
	if c == nil {
		return ""
	}
	return str(c.Timestamp)
}

func (c *HeadCommit) GetAuthor() *Actor {
	if c == nil {
		return nil
	}
	return c.Author
}

func (pr *PullRequest) GetNumber() string {
	if pr == nil || pr.Number == nil {
		return ""
	}
	return pr.Number.String()
}

func (pr *PullRequest) GetTitle() string {
	if pr == nil {
		return ""
	}
	return str(pr.Title)
}

func (pr *PullRequest) GetUser() *User {
	if pr == nil {
		return nil
	}
	return pr.User
}

func (pr *PullRequest) GetBase() *Branch {
	if pr == nil {
		return nil
	}
	return pr.Base
}

func (pr *PullRequest) GetHead() *Branch {
	if pr == nil {
		return nil
	}
	return pr.Head
}

func (pr *PullRequest) GetCreatedAt() string {
	if pr == nil {
		return ""
	}
	return str(pr.CreatedAt)
}

func (pr *PullRequest) GetUpdatedAt() string {
	if pr == nil {
		return ""
	}
	return str(pr.UpdatedAt)
}

func (u *User) GetLogin() string {
	if u == nil {
		return ""
	}
	return str(u.Login)
}

func (b *Branch) GetRef() string {
	if b == nil {
		return ""
	}
	return str(b.Ref)
}
