package config

import (
	"github.com/m-mizutani/signoff/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Policy holds the sign-off label contract and rejection behavior
type Policy struct {
	CandidateLabel       string
	ApprovalPrefix       string
	DeleteBranchOnReject bool
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "candidate-label",
			Usage:       "Label marking an issue as a release candidate",
			Value:       "RC",
			Destination: &c.CandidateLabel,
			Sources:     cli.EnvVars("SIGNOFF_CANDIDATE_LABEL"),
		},
		&cli.StringFlag{
			Name:        "approval-label-prefix",
			Usage:       "Label prefix marking QA approval",
			Value:       "QA Approved",
			Destination: &c.ApprovalPrefix,
			Sources:     cli.EnvVars("SIGNOFF_APPROVAL_LABEL_PREFIX"),
		},
		&cli.BoolFlag{
			Name:        "delete-branch-on-reject",
			Usage:       "Delete the source branch when the release is rejected",
			Value:       false,
			Destination: &c.DeleteBranchOnReject,
			Sources:     cli.EnvVars("SIGNOFF_DELETE_BRANCH_ON_REJECT"),
		},
	}
}

// Policy converts the configuration into the domain policy.
func (c *Policy) Policy() model.SignoffPolicy {
	return model.SignoffPolicy{
		CandidateLabel:       c.CandidateLabel,
		ApprovalPrefix:       c.ApprovalPrefix,
		DeleteBranchOnReject: c.DeleteBranchOnReject,
	}
}
