package send

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var sendFlags struct {
	url    string
	secret string
	repo   string
	branch string
	author string
}

// SendCmd posts sample deliveries to a running receiver.
var SendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post a signed sample webhook to a receiver",
}

// signingSecret is read at run time so a .env file loaded by the root
// command applies.
func signingSecret() string {
	return lo.CoalesceOrEmpty(sendFlags.secret, os.Getenv("GITHUB_WEBHOOK_SECRET"))
}

func init() {
	flags := SendCmd.PersistentFlags()
	flags.StringVar(&sendFlags.url, "url", "http://localhost:8080/webhook", "Webhook endpoint")
	flags.StringVar(&sendFlags.secret, "secret", "", "Shared secret used to sign the body (default $GITHUB_WEBHOOK_SECRET)")
	flags.StringVar(&sendFlags.repo, "repo", "test-repo", "Repository name")
	flags.StringVar(&sendFlags.branch, "branch", "main", "Target branch")
	flags.StringVar(&sendFlags.author, "author", "test-user", "Pusher or pull request author")

	SendCmd.AddCommand(pushCmd)
	SendCmd.AddCommand(pullRequestCmd)
}
