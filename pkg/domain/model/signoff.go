package model

import "time"

// SignoffRequest identifies one closed issue to process. Owner and repo are
// explicit parameters so the pipeline carries no ambient repository context.
type SignoffRequest struct {
	Owner       string
	Repo        string
	IssueNumber int
}

// SignoffPolicy controls the label contract and the rejected-path behavior.
type SignoffPolicy struct {
	// CandidateLabel must be present on the issue, exact match.
	CandidateLabel string

	// ApprovalPrefix gates the approve/reject branch, prefix match.
	ApprovalPrefix string

	// DeleteBranchOnReject deletes the source branch on the rejected path.
	// Off by default; historical variants of this workflow disagree on it.
	DeleteBranchOnReject bool
}

// DefaultPolicy returns the label contract used by the release workflow.
func DefaultPolicy() SignoffPolicy {
	return SignoffPolicy{
		CandidateLabel: "RC",
		ApprovalPrefix: "QA Approved",
	}
}

// SignoffMetadata is the sign-off-metadata.json asset attached to a created
// release, describing the originating issue.
type SignoffMetadata struct {
	IssueNumber     int       `json:"issue_number"`
	IssueURL        string    `json:"issue_url"`
	Labels          []string  `json:"labels"`
	Tag             string    `json:"tag"`
	Branch          string    `json:"branch"`
	ApprovedByLabel string    `json:"approved_by_label"`
	SignedOffAt     time.Time `json:"signed_off_at"`
}
