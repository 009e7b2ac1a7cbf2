package site

import (
	"fmt"
	"net/url"
	"strings"
)

// Metadata is the SEO/OpenGraph data for one page.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Image       string   `json:"image,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	SiteName    string   `json:"siteName"`
}

// Metadata builds page metadata. An empty title yields the site's default
// title; otherwise the title is rendered as "<title> | <name>". An empty
// description falls back to the site description.
func (c Config) Metadata(title, description, path string) Metadata {
	m := Metadata{
		Title:       c.Title,
		Description: description,
		URL:         strings.TrimSuffix(c.URL, "/") + path,
		Keywords:    c.Keywords,
		SiteName:    c.Name,
	}
	if title != "" {
		m.Title = fmt.Sprintf("%s | %s", title, c.Name)
	}
	if m.Description == "" {
		m.Description = c.Description
	}
	return m
}

const defaultCampaign = "hire_me"

// BookingURL returns the scheduling link tagged with UTM parameters.
// It returns "" when no booking URL is configured.
func (c Config) BookingURL(medium, campaign string) (string, error) {
	base := c.Integrations.BookingURL
	if base == "" {
		return "", nil
	}
	if campaign == "" {
		campaign = defaultCampaign
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse booking url: %w", err)
	}
	q := u.Query()
	q.Set("utm_source", "portfolio")
	q.Set("utm_medium", medium)
	q.Set("utm_campaign", campaign)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
