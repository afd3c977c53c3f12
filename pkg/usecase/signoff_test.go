package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	"github.com/m-mizutani/signoff/pkg/usecase"
)

// MockGitHubClient is a mock implementation of GitHubClient
type MockGitHubClient struct {
	getIssueFunc      func(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	createReleaseFunc func(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error)

	getIssueCalls []int
	createCalls   []*github.RepositoryRelease
	uploadCalls   []MockUploadCall
	deleteCalls   []string
}

type MockUploadCall struct {
	ReleaseID int64
	Name      string
	Data      []byte
}

func (m *MockGitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	m.getIssueCalls = append(m.getIssueCalls, number)
	if m.getIssueFunc != nil {
		return m.getIssueFunc(ctx, owner, repo, number)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	m.createCalls = append(m.createCalls, release)
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, owner, repo, release)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockGitHubClient) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, name string, data []byte) error {
	m.uploadCalls = append(m.uploadCalls, MockUploadCall{ReleaseID: releaseID, Name: name, Data: data})
	return nil
}

func (m *MockGitHubClient) DeleteRef(ctx context.Context, owner, repo, ref string) error {
	m.deleteCalls = append(m.deleteCalls, ref)
	return nil
}

// MockNotifier records posted notifications
type MockNotifier struct {
	postFunc func(ctx context.Context, msg *model.Notification) error
	posts    []*model.Notification
}

func (m *MockNotifier) Post(ctx context.Context, msg *model.Notification) error {
	m.posts = append(m.posts, msg)
	if m.postFunc != nil {
		return m.postFunc(ctx, msg)
	}
	return nil
}

const testBody = "- Release tag: v20240115.1\n- Branch: release/v20240115.1"

func testIssue(body string, labels ...string) *github.Issue {
	ghLabels := make([]*github.Label, 0, len(labels))
	for _, name := range labels {
		ghLabels = append(ghLabels, &github.Label{Name: github.Ptr(name)})
	}
	return &github.Issue{
		Number:  github.Ptr(42),
		Title:   github.Ptr("Release v20240115.1"),
		Body:    github.Ptr(body),
		HTMLURL: github.Ptr("https://github.com/org/repo/issues/42"),
		Labels:  ghLabels,
	}
}

func newMocks(issue *github.Issue) (*MockGitHubClient, *MockNotifier) {
	ghClient := &MockGitHubClient{
		getIssueFunc: func(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
			return issue, nil
		},
		createReleaseFunc: func(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
			created := *release
			created.ID = github.Ptr(int64(777))
			created.HTMLURL = github.Ptr("https://github.com/org/repo/releases/tag/" + release.GetTagName())
			return &created, nil
		},
	}
	return ghClient, &MockNotifier{}
}

func TestSignoffUseCase_ApprovedPath(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "RC", "QA Approved"))

	signedOffAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	uc := usecase.NewSignoff(ghClient, notifier, usecase.WithClock(func() time.Time { return signedOffAt }))

	err := uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42})
	gt.NoError(t, err)

	// Release is created once, published, pointing at the branch
	gt.Number(t, len(ghClient.createCalls)).Equal(1)
	release := ghClient.createCalls[0]
	gt.Value(t, release.GetTagName()).Equal("v20240115.1")
	gt.Value(t, release.GetTargetCommitish()).Equal("release/v20240115.1")
	gt.Value(t, release.GetDraft()).Equal(false)

	// Metadata asset describes the originating issue
	gt.Number(t, len(ghClient.uploadCalls)).Equal(1)
	upload := ghClient.uploadCalls[0]
	gt.Value(t, upload.Name).Equal("sign-off-metadata.json")
	gt.Number(t, upload.ReleaseID).Equal(int64(777))

	var metadata model.SignoffMetadata
	gt.NoError(t, json.Unmarshal(upload.Data, &metadata))
	gt.Value(t, metadata.IssueNumber).Equal(42)
	gt.Value(t, metadata.Tag).Equal("v20240115.1")
	gt.Value(t, metadata.Branch).Equal("release/v20240115.1")
	gt.Value(t, metadata.ApprovedByLabel).Equal("QA Approved")
	gt.Value(t, metadata.SignedOffAt).Equal(signedOffAt)

	// Approved notification with a link to the release
	gt.Number(t, len(notifier.posts)).Equal(1)
	msg := notifier.posts[0]
	gt.Value(t, msg.Header).Equal("[v20240115.1] Release/Hotfix approved ✅")
	gt.True(t, strings.Contains(msg.Body, "release/v20240115.1"))
	gt.Value(t, msg.ButtonURL).Equal("https://github.com/org/repo/releases/tag/v20240115.1")

	// No branch deletion on the approved path
	gt.Number(t, len(ghClient.deleteCalls)).Equal(0)
}

func TestSignoffUseCase_ApprovedWithReviewerSuffix(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "RC", "QA Approved (alice)"))

	uc := usecase.NewSignoff(ghClient, notifier)
	gt.NoError(t, uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42}))

	gt.Number(t, len(ghClient.createCalls)).Equal(1)

	var metadata model.SignoffMetadata
	gt.NoError(t, json.Unmarshal(ghClient.uploadCalls[0].Data, &metadata))
	gt.Value(t, metadata.ApprovedByLabel).Equal("QA Approved (alice)")
}

func TestSignoffUseCase_RejectedPath(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "RC"))

	uc := usecase.NewSignoff(ghClient, notifier)
	gt.NoError(t, uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42}))

	// No release, no asset, no branch deletion by default
	gt.Number(t, len(ghClient.createCalls)).Equal(0)
	gt.Number(t, len(ghClient.uploadCalls)).Equal(0)
	gt.Number(t, len(ghClient.deleteCalls)).Equal(0)

	gt.Number(t, len(notifier.posts)).Equal(1)
	gt.Value(t, notifier.posts[0].Header).Equal("[v20240115.1] Release/Hotfix cancelled ❌")
}

func TestSignoffUseCase_RejectedPathDeletesBranch(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "RC"))

	policy := model.DefaultPolicy()
	policy.DeleteBranchOnReject = true
	uc := usecase.NewSignoff(ghClient, notifier, usecase.WithPolicy(policy))

	gt.NoError(t, uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42}))

	gt.Number(t, len(ghClient.createCalls)).Equal(0)
	gt.Number(t, len(ghClient.deleteCalls)).Equal(1)
	gt.Value(t, ghClient.deleteCalls[0]).Equal("heads/release/v20240115.1")
	gt.Number(t, len(notifier.posts)).Equal(1)
	gt.Value(t, notifier.posts[0].Header).Equal("[v20240115.1] Release/Hotfix cancelled ❌")
}

func TestSignoffUseCase_NotReleaseCandidate(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "QA Approved"))

	uc := usecase.NewSignoff(ghClient, notifier)
	err := uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42})

	gt.True(t, err != nil)
	gt.True(t, goerr.HasTag(err, types.ErrTagNotCandidate))

	// The precondition aborts before any side effect
	gt.Number(t, len(ghClient.createCalls)).Equal(0)
	gt.Number(t, len(ghClient.uploadCalls)).Equal(0)
	gt.Number(t, len(ghClient.deleteCalls)).Equal(0)
	gt.Number(t, len(notifier.posts)).Equal(0)
}

func TestSignoffUseCase_MissingField(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue("- Release tag: v20240115.1\nno branch line here", "RC", "QA Approved"))

	uc := usecase.NewSignoff(ghClient, notifier)
	err := uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42})

	gt.True(t, err != nil)
	gt.True(t, goerr.HasTag(err, types.ErrTagMissingField))
	gt.Number(t, len(ghClient.createCalls)).Equal(0)
	gt.Number(t, len(notifier.posts)).Equal(0)
}

func TestSignoffUseCase_ReleaseCreationFailure(t *testing.T) {
	ctx := context.Background()
	ghClient, notifier := newMocks(testIssue(testBody, "RC", "QA Approved"))
	ghClient.createReleaseFunc = func(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
		return nil, goerr.New("boom", goerr.T(types.ErrTagUpstreamCall))
	}

	uc := usecase.NewSignoff(ghClient, notifier)
	err := uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42})

	gt.True(t, err != nil)
	gt.True(t, goerr.HasTag(err, types.ErrTagUpstreamCall))

	// No compensating rollback, but nothing after the failed step runs either
	gt.Number(t, len(ghClient.uploadCalls)).Equal(0)
	gt.Number(t, len(notifier.posts)).Equal(0)
}

func TestSignoffUseCase_FetchFailure(t *testing.T) {
	ctx := context.Background()
	ghClient := &MockGitHubClient{
		getIssueFunc: func(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
			return nil, goerr.New("not found", goerr.T(types.ErrTagUpstreamCall))
		},
	}
	notifier := &MockNotifier{}

	uc := usecase.NewSignoff(ghClient, notifier)
	err := uc.ProcessSignoff(ctx, &model.SignoffRequest{Owner: "org", Repo: "repo", IssueNumber: 42})

	gt.True(t, err != nil)
	gt.True(t, goerr.HasTag(err, types.ErrTagUpstreamCall))
	gt.Number(t, len(notifier.posts)).Equal(0)
}
