package send

import (
	"time"

	gh "github.com/google/go-github/v81/github"
	"github.com/spf13/cobra"
	"github.com/yz4230/repowatch/internal/webhook"
)

var pullRequestFlags struct {
	title  string
	number int
	action string
	head   string
}

var pullRequestCmd = &cobra.Command{
	Use:   "pull-request",
	Short: "Send a pull_request event",
	RunE: func(cmd *cobra.Command, args []string) error {
		event := newPullRequestEvent(
			sendFlags.repo, sendFlags.branch, sendFlags.author,
			pullRequestFlags.title, pullRequestFlags.action, pullRequestFlags.head,
			pullRequestFlags.number, time.Now(),
		)
		return deliver(cmd.Context(), cmd.OutOrStdout(), webhook.EventPullRequest, event)
	},
}

func newPullRequestEvent(repo, base, author, title, action, head string, number int, now time.Time) *gh.PullRequestEvent {
	created := &gh.Timestamp{Time: now.UTC().Truncate(time.Second)}
	return &gh.PullRequestEvent{
		Action: gh.Ptr(action),
		Number: gh.Ptr(number),
		Repo:   &gh.Repository{Name: gh.Ptr(repo)},
		PullRequest: &gh.PullRequest{
			Number:    gh.Ptr(number),
			Title:     gh.Ptr(title),
			User:      &gh.User{Login: gh.Ptr(author)},
			Base:      &gh.PullRequestBranch{Ref: gh.Ptr(base)},
			Head:      &gh.PullRequestBranch{Ref: gh.Ptr(head)},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func init() {
	flags := pullRequestCmd.Flags()
	flags.StringVar(&pullRequestFlags.title, "title", "Add new feature", "Pull request title")
	flags.IntVar(&pullRequestFlags.number, "number", 1, "Pull request number")
	flags.StringVar(&pullRequestFlags.action, "action", "opened", "Pull request action")
	flags.StringVar(&pullRequestFlags.head, "head", "feature-branch", "Head branch")
}
