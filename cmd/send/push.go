package send

import (
	"time"

	gh "github.com/google/go-github/v81/github"
	"github.com/spf13/cobra"
	"github.com/yz4230/repowatch/internal/webhook"
)

var pushFlags struct {
	message string
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send a push event",
	RunE: func(cmd *cobra.Command, args []string) error {
		event := newPushEvent(sendFlags.repo, sendFlags.branch, sendFlags.author, pushFlags.message, time.Now())
		return deliver(cmd.Context(), cmd.OutOrStdout(), webhook.EventPush, event)
	},
}

func newPushEvent(repo, branch, author, message string, now time.Time) *gh.PushEvent {
	return &gh.PushEvent{
		Ref:    gh.Ptr("refs/heads/" + branch),
		Repo:   &gh.PushEventRepository{Name: gh.Ptr(repo)},
		Pusher: &gh.CommitAuthor{Name: gh.Ptr(author)},
		HeadCommit: &gh.HeadCommit{
			Message:   gh.Ptr(message),
			Timestamp: &gh.Timestamp{Time: now.UTC().Truncate(time.Second)},
			Author:    &gh.CommitAuthor{Name: gh.Ptr(author)},
		},
	}
}

func init() {
	pushCmd.Flags().StringVar(&pushFlags.message, "message", "Add new feature", "Head commit message")
}
