// Package video validates and normalizes links to completion videos.
//
// Only a fixed set of hosts is accepted. Every accepted link is rewritten to
// a single canonical https form so equal videos compare equal.
package video

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/example/demonlist/internal/ports/secondary"
)

var (
	ErrMalformed       = errors.New("not a valid URL")
	ErrUnsupportedHost = errors.New("unsupported video host")
	ErrMissingVideoID  = errors.New("no video id in URL")
)

var (
	youtubeID  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	numericID  = regexp.MustCompile(`^[0-9]+$`)
	bilibiliID = regexp.MustCompile(`^(BV[A-Za-z0-9]{10}|av[0-9]+)$`)
)

// Validator implements secondary.VideoValidator.
type Validator struct{}

var _ secondary.VideoValidator = (*Validator)(nil)

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the canonical form of raw or an error naming what was wrong.
func (v *Validator) Validate(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", ErrMalformed
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrMalformed, u.Scheme)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := pathSegments(u.Path)

	switch host {
	case "youtube.com":
		id := u.Query().Get("v")
		if id == "" && len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts") {
			id = segments[1]
		}
		return youtube(id)
	case "youtu.be":
		if len(segments) != 1 {
			return "", ErrMissingVideoID
		}
		return youtube(segments[0])
	case "twitch.tv":
		if len(segments) != 2 || segments[0] != "videos" || !numericID.MatchString(segments[1]) {
			return "", ErrMissingVideoID
		}
		return "https://www.twitch.tv/videos/" + segments[1], nil
	case "vimeo.com":
		if len(segments) != 1 || !numericID.MatchString(segments[0]) {
			return "", ErrMissingVideoID
		}
		return "https://vimeo.com/" + segments[0], nil
	case "bilibili.com":
		if len(segments) != 2 || segments[0] != "video" || !bilibiliID.MatchString(segments[1]) {
			return "", ErrMissingVideoID
		}
		return "https://www.bilibili.com/video/" + segments[1], nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedHost, u.Hostname())
}

func youtube(id string) (string, error) {
	if !youtubeID.MatchString(id) {
		return "", ErrMissingVideoID
	}
	return "https://www.youtube.com/watch?v=" + id, nil
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
