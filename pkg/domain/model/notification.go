package model

import "fmt"

// Notification is an ephemeral message payload constructed per outbound
// webhook call. It has no persistence.
type Notification struct {
	Header     string
	Body       string
	ButtonText string
	ButtonURL  string
}

// ApprovedNotification builds the message announcing a published release,
// with a button linking to the release page.
func ApprovedNotification(tag, branch, releaseURL string) *Notification {
	return &Notification{
		Header:     fmt.Sprintf("[%s] Release/Hotfix approved ✅", tag),
		Body:       fmt.Sprintf("Branch `%s` has been published as release *%s*.", branch, tag),
		ButtonText: "View release",
		ButtonURL:  releaseURL,
	}
}

// CancelledNotification builds the message announcing a rejected release
// candidate.
func CancelledNotification(tag, branch string) *Notification {
	return &Notification{
		Header: fmt.Sprintf("[%s] Release/Hotfix cancelled ❌", tag),
		Body:   fmt.Sprintf("Release candidate on branch `%s` was rejected during QA sign-off.", branch),
	}
}
