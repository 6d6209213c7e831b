package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ContributionType enumerates contribution categories accepted by the Stars API
type ContributionType string

const (
	ContributionSpeaking           ContributionType = "SPEAKING"
	ContributionBlogpost           ContributionType = "BLOGPOST"
	ContributionArticlePublication ContributionType = "ARTICLE_PUBLICATION"
	ContributionEventOrganization  ContributionType = "EVENT_ORGANIZATION"
	ContributionHackathon          ContributionType = "HACKATHON"
	ContributionOpenSourceProject  ContributionType = "OPEN_SOURCE_PROJECT"
	ContributionVideoPodcast       ContributionType = "VIDEO_PODCAST"
	ContributionForum              ContributionType = "FORUM"
	ContributionOther              ContributionType = "OTHER"
)

// ContributionTypes lists all valid contribution types
func ContributionTypes() []ContributionType {
	return []ContributionType{
		ContributionSpeaking,
		ContributionBlogpost,
		ContributionArticlePublication,
		ContributionEventOrganization,
		ContributionHackathon,
		ContributionOpenSourceProject,
		ContributionVideoPodcast,
		ContributionForum,
		ContributionOther,
	}
}

// ParseContributionType validates a raw contribution type value
func ParseContributionType(raw string) (ContributionType, error) {
	candidate := ContributionType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, t := range ContributionTypes() {
		if candidate == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid contribution type: %s", raw)
}

// PlatformType enumerates link platforms accepted by the Stars API.
// GITHUB and WEBSITE were removed from the live API enum and are not valid.
type PlatformType string

const (
	PlatformTwitter       PlatformType = "TWITTER"
	PlatformMedium        PlatformType = "MEDIUM"
	PlatformLinkedIn      PlatformType = "LINKEDIN"
	PlatformReadme        PlatformType = "README"
	PlatformStackOverflow PlatformType = "STACK_OVERFLOW"
	PlatformDevTo         PlatformType = "DEV_TO"
	PlatformMastodon      PlatformType = "MASTODON"
	PlatformOther         PlatformType = "OTHER"
)

// PlatformTypes lists all valid platform types
func PlatformTypes() []PlatformType {
	return []PlatformType{
		PlatformTwitter,
		PlatformMedium,
		PlatformLinkedIn,
		PlatformReadme,
		PlatformStackOverflow,
		PlatformDevTo,
		PlatformMastodon,
		PlatformOther,
	}
}

// ParsePlatformType validates a raw platform value
func ParsePlatformType(raw string) (PlatformType, error) {
	candidate := PlatformType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, p := range PlatformTypes() {
		if candidate == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid platform type: %s", raw)
}

// ContributionInput is the payload for contribution create/update mutations
type ContributionInput struct {
	Type        ContributionType `json:"type"`
	Date        string           `json:"date"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Description string           `json:"description"`
}

// Validate checks required fields for creation
func (c *ContributionInput) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := ParseContributionType(string(c.Type)); err != nil {
		return err
	}
	if _, err := ParseDate(c.Date); err != nil {
		return err
	}
	return nil
}

// ToVariables renders the input as GraphQL variables
func (c *ContributionInput) ToVariables() map[string]interface{} {
	return map[string]interface{}{
		"type":        string(c.Type),
		"date":        c.Date,
		"title":       c.Title,
		"url":         c.URL,
		"description": c.Description,
	}
}

// LinkInput is the payload for link create/update mutations
type LinkInput struct {
	Link     string       `json:"link"`
	Platform PlatformType `json:"platform"`
}

// Validate checks required fields
func (l *LinkInput) Validate() error {
	if l.Link == "" {
		return fmt.Errorf("link is required")
	}
	if _, err := ParsePlatformType(string(l.Platform)); err != nil {
		return err
	}
	return nil
}

// ProfileInput carries optional profile fields for updateProfile.
// Only non-nil fields are sent upstream.
type ProfileInput struct {
	Avatar      *string `json:"avatar,omitempty"`
	Name        *string `json:"name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Country     *string `json:"country,omitempty"`
	Birthdate   *string `json:"birthdate,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Company     *string `json:"company,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Address     *string `json:"address,omitempty"`
	State       *string `json:"state,omitempty"`
	City        *string `json:"city,omitempty"`
	Zipcode     *string `json:"zipcode,omitempty"`
}

// ProfileInputFromParams filters raw tool parameters through the known
// profile fields. Unknown keys are dropped; non-string values error.
func ProfileInputFromParams(params map[string]interface{}) (*ProfileInput, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("invalid profile fields: %w", err)
	}
	var input ProfileInput
	if err := json.Unmarshal(encoded, &input); err != nil {
		return nil, fmt.Errorf("invalid profile fields: %w", err)
	}
	return &input, nil
}

// Variables renders the provided fields as GraphQL variables. Fields
// never set stay absent; an explicit empty string is sent through.
func (p *ProfileInput) Variables() map[string]interface{} {
	encoded, err := json.Marshal(p)
	if err != nil {
		return map[string]interface{}{}
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

// ParseDate accepts full ISO 8601 timestamps or YYYY-MM-DD dates.
// Date-only values are treated as midnight UTC so comparisons stay tz-aware.
func ParseDate(s string) (time.Time, error) {
	if len(s) == 10 {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format, use ISO 8601 or YYYY-MM-DD")
		}
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use ISO 8601 or YYYY-MM-DD")
	}
	return t.UTC(), nil
}
