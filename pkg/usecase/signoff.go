package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/domain/interfaces"
	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/m-mizutani/signoff/pkg/domain/types"
)

// metadataAssetName is the release asset describing the originating issue.
const metadataAssetName = "sign-off-metadata.json"

type signoffUseCase struct {
	githubClient interfaces.GitHubClient
	notifier     interfaces.Notifier
	policy       model.SignoffPolicy
	now          func() time.Time
}

// SignoffOption is a functional option for the sign-off use case
type SignoffOption func(*signoffUseCase)

// WithPolicy overrides the default label contract and rejection behavior
func WithPolicy(policy model.SignoffPolicy) SignoffOption {
	return func(uc *signoffUseCase) {
		uc.policy = policy
	}
}

// WithClock overrides the timestamp source for the metadata asset
func WithClock(now func() time.Time) SignoffOption {
	return func(uc *signoffUseCase) {
		uc.now = now
	}
}

// NewSignoff creates a new instance of SignoffUseCase
func NewSignoff(githubClient interfaces.GitHubClient, notifier interfaces.Notifier, opts ...SignoffOption) interfaces.SignoffUseCase {
	uc := &signoffUseCase{
		githubClient: githubClient,
		notifier:     notifier,
		policy:       model.DefaultPolicy(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ProcessSignoff runs the full pipeline for one closed release issue: fetch
// the issue, validate the candidate label, extract the release fields, then
// publish the release or tear the candidate down. Every step runs in order
// and any error aborts the run; partial side effects are not rolled back.
func (uc *signoffUseCase) ProcessSignoff(ctx context.Context, req *model.SignoffRequest) error {
	logger := ctxlog.From(ctx)

	ghIssue, err := uc.githubClient.GetIssue(ctx, req.Owner, req.Repo, req.IssueNumber)
	if err != nil {
		return err
	}

	issue := issueFromGitHub(req.Owner, req.Repo, ghIssue)

	// Precondition, not a branch: a non-candidate issue should never have
	// triggered this automation, so it aborts before the body is parsed and
	// before any write call is made.
	if err := uc.validateCandidate(issue); err != nil {
		return err
	}

	fields, err := model.ExtractReleaseFields(issue.Body)
	if err != nil {
		return err
	}

	approvedBy, approved := issue.LabelWithPrefix(uc.policy.ApprovalPrefix)

	logger.Info("Processing release sign-off",
		"owner", issue.Owner,
		"repo", issue.Repo,
		"issue", issue.Number,
		"tag", fields.Tag,
		"branch", fields.Branch,
		"approved", approved,
	)

	if approved {
		return uc.publishRelease(ctx, issue, fields, approvedBy)
	}

	return uc.cancelRelease(ctx, issue, fields)
}

func (uc *signoffUseCase) validateCandidate(issue *model.Issue) error {
	if !issue.HasLabel(uc.policy.CandidateLabel) {
		return goerr.New("issue is missing the release candidate label",
			goerr.T(types.ErrTagNotCandidate),
			goerr.V("issue", issue.Number),
			goerr.V("labels", issue.Labels),
			goerr.V("candidate_label", uc.policy.CandidateLabel),
		)
	}

	return nil
}

// publishRelease creates the published release, attaches the sign-off
// metadata asset, and announces the result. The steps are not transactional:
// if the asset upload or the notification fails, the release stays created.
func (uc *signoffUseCase) publishRelease(ctx context.Context, issue *model.Issue, fields *model.ReleaseFields, approvedBy string) error {
	logger := ctxlog.From(ctx)

	release, err := uc.githubClient.CreateRelease(ctx, issue.Owner, issue.Repo, &github.RepositoryRelease{
		Name:            github.Ptr(fields.Tag),
		TagName:         github.Ptr(fields.Tag),
		TargetCommitish: github.Ptr(fields.Branch),
		Draft:           github.Ptr(false),
	})
	if err != nil {
		return err
	}

	logger.Info("Created release",
		"id", release.GetID(),
		"url", release.GetHTMLURL(),
		"tag", fields.Tag,
	)

	metadata := &model.SignoffMetadata{
		IssueNumber:     issue.Number,
		IssueURL:        issue.URL,
		Labels:          issue.Labels,
		Tag:             fields.Tag,
		Branch:          fields.Branch,
		ApprovedByLabel: approvedBy,
		SignedOffAt:     uc.now().UTC(),
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal sign-off metadata")
	}

	if err := uc.githubClient.UploadReleaseAsset(ctx, issue.Owner, issue.Repo, release.GetID(), metadataAssetName, raw); err != nil {
		return err
	}

	return uc.notifier.Post(ctx, model.ApprovedNotification(fields.Tag, fields.Branch, release.GetHTMLURL()))
}

// cancelRelease announces the rejection and, when the policy says so,
// deletes the now-unneeded source branch first.
func (uc *signoffUseCase) cancelRelease(ctx context.Context, issue *model.Issue, fields *model.ReleaseFields) error {
	logger := ctxlog.From(ctx)

	if uc.policy.DeleteBranchOnReject {
		ref := "heads/" + fields.Branch
		if err := uc.githubClient.DeleteRef(ctx, issue.Owner, issue.Repo, ref); err != nil {
			return err
		}
		logger.Info("Deleted rejected release branch", "ref", ref)
	}

	return uc.notifier.Post(ctx, model.CancelledNotification(fields.Tag, fields.Branch))
}

// issueFromGitHub converts the GitHub SDK issue into the domain snapshot.
func issueFromGitHub(owner, repo string, src *github.Issue) *model.Issue {
	labels := make([]string, 0, len(src.Labels))
	for _, label := range src.Labels {
		labels = append(labels, label.GetName())
	}

	return &model.Issue{
		Owner:  owner,
		Repo:   repo,
		Number: src.GetNumber(),
		Title:  src.GetTitle(),
		Body:   src.GetBody(),
		URL:    src.GetHTMLURL(),
		Labels: labels,
	}
}
