package faq

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog   = errors.New("catalog has no topics")
	ErrEmptyTitle     = errors.New("topic title is required")
	ErrDuplicateTitle = errors.New("duplicate topic title")
	ErrDuplicateID    = errors.New("duplicate topic id")
)

// Store exposes catalog lookups for the dispatcher and HTTP handlers.
type Store interface {
	List() []Topic
	FindByTitle(title string) (Topic, bool)
	Resolve(title string) string
}

// Catalog implements Store over an ordered, read-only topic table.
type Catalog struct {
	items       []Topic
	byTitle     map[string]int
	welcome     string
	fallback    string
	placeholder string
	links       []Link
}

// Options customizes the panel copy around the topic table. Empty fields keep the defaults.
type Options struct {
	Welcome     string
	Fallback    string
	Placeholder string
	Links       []Link
}

// NewCatalog validates the topics and indexes them by title.
func NewCatalog(items []Topic, opts Options) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		items:       append([]Topic(nil), items...),
		byTitle:     make(map[string]int, len(items)),
		welcome:     orDefault(opts.Welcome, DefaultWelcome),
		fallback:    orDefault(opts.Fallback, DefaultFallback),
		placeholder: orDefault(opts.Placeholder, DefaultPlaceholder),
		links:       append([]Link(nil), opts.Links...),
	}
	if opts.Links == nil {
		c.links = DefaultLinks()
	}

	ids := make(map[int]struct{}, len(items))
	for i, item := range c.items {
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("topic #%d: %w", i+1, ErrEmptyTitle)
		}
		if _, ok := c.byTitle[item.Title]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, item.Title)
		}
		if _, ok := ids[item.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		c.byTitle[item.Title] = i
		ids[item.ID] = struct{}{}
	}
	return c, nil
}

// MustSeedCatalog returns the built-in catalog.
func MustSeedCatalog() *Catalog {
	c, err := NewCatalog(Seed(), Options{})
	if err != nil {
		panic(err)
	}
	return c
}

// List returns the topics in catalog order.
func (c *Catalog) List() []Topic {
	return append([]Topic(nil), c.items...)
}

// Titles returns the topic titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.items))
	for i, item := range c.items {
		titles[i] = item.Title
	}
	return titles
}

// FindByTitle looks up a topic by its exact title.
func (c *Catalog) FindByTitle(title string) (Topic, bool) {
	idx, ok := c.byTitle[title]
	if !ok {
		return Topic{}, false
	}
	return c.items[idx], true
}

// Resolve returns the canned response for title, or the fallback.
// Matching is exact; there is no trimming or case folding.
func (c *Catalog) Resolve(title string) string {
	if topic, ok := c.FindByTitle(title); ok {
		return topic.Response
	}
	return c.fallback
}

func (c *Catalog) Welcome() string     { return c.welcome }
func (c *Catalog) Fallback() string    { return c.fallback }
func (c *Catalog) Placeholder() string { return c.placeholder }

func (c *Catalog) Links() []Link {
	return append([]Link(nil), c.links...)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
