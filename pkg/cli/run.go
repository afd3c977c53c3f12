package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/cli/config"
	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	"github.com/m-mizutani/signoff/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		githubCfg config.GitHub
		slackCfg  config.Slack
		policyCfg config.Policy
		repo      string
		issue     int64
	)

	flags := append(githubCfg.Flags(), slackCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository as <owner>/<name>",
			Destination: &repo,
			Sources:     cli.EnvVars("SIGNOFF_REPO"),
		},
		&cli.Int64Flag{
			Name:        "issue",
			Usage:       "Number of the closed release issue",
			Destination: &issue,
			Sources:     cli.EnvVars("SIGNOFF_ISSUE_NUMBER"),
		},
	)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Process one closed release issue and exit",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			owner, name, err := splitRepo(repo)
			if err != nil {
				return err
			}
			if issue <= 0 {
				return goerr.New("issue number is required",
					goerr.T(types.ErrTagMissingConfig),
					goerr.V("flag", "issue"),
				)
			}

			githubClient, err := githubCfg.NewClient()
			if err != nil {
				return err
			}
			notifier, err := slackCfg.NewNotifier()
			if err != nil {
				return err
			}

			logger.Info("Starting sign-off run",
				slog.String("repo", repo),
				slog.Int64("issue", issue),
				slog.Any("policy", policyCfg),
			)

			uc := usecase.NewSignoff(githubClient, notifier,
				usecase.WithPolicy(policyCfg.Policy()),
			)

			req := &model.SignoffRequest{
				Owner:       owner,
				Repo:        name,
				IssueNumber: int(issue),
			}
			if err := uc.ProcessSignoff(ctx, req); err != nil {
				return err
			}

			logger.Info("Sign-off run completed",
				slog.String("repo", repo),
				slog.Int64("issue", issue),
			)
			return nil
		},
	}
}

func splitRepo(s string) (string, string, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return "", "", goerr.New("repository must be <owner>/<name>",
			goerr.T(types.ErrTagMissingConfig),
			goerr.V("repo", s),
		)
	}
	return owner, name, nil
}
