package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVideoAndTitleRequired = errors.New("Video and title are required")
	ErrInvalidPrivacyStatus  = errors.New("privacyStatus must be one of private, unlisted, public")
)

// PrivacyStatus is the visibility of an uploaded video.
type PrivacyStatus string

const (
	PrivacyPrivate  PrivacyStatus = "private"
	PrivacyUnlisted PrivacyStatus = "unlisted"
	PrivacyPublic   PrivacyStatus = "public"
)

// PrivacyStatuses lists the accepted values in form order.
var PrivacyStatuses = []PrivacyStatus{PrivacyPrivate, PrivacyUnlisted, PrivacyPublic}

// ParsePrivacyStatus maps form input to a PrivacyStatus; empty means private.
func ParsePrivacyStatus(raw string) (PrivacyStatus, error) {
	s := PrivacyStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return PrivacyPrivate, nil
	}
	for _, known := range PrivacyStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidPrivacyStatus, raw)
}

// Next cycles private -> unlisted -> public -> private.
func (p PrivacyStatus) Next() PrivacyStatus {
	for i, known := range PrivacyStatuses {
		if p == known {
			return PrivacyStatuses[(i+1)%len(PrivacyStatuses)]
		}
	}
	return PrivacyPrivate
}

// UploadConfig is the metadata attached to an upload.
type UploadConfig struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Tags          string        `json:"tags"`
	PrivacyStatus PrivacyStatus `json:"privacyStatus"`
}

// UploadResult is the /api/upload success payload.
type UploadResult struct {
	Success  bool   `json:"success"`
	VideoID  string `json:"videoId"`
	VideoURL string `json:"videoUrl,omitempty"`
	Message  string `json:"message,omitempty"`
	Note     string `json:"note,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(tag); clean != "" {
			tags = append(tags, clean)
		}
	}
	return tags
}
