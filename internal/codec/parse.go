// Package codec converts between item and config documents and their
// in-memory models.
package codec

import (
	"strings"
	"time"

	"codeplan/internal/domain"
	"codeplan/internal/frontmatter"
)

// Parser turns item documents into validated items
type Parser struct {
	statuses []string
	now      func() time.Time
}

// Option configures a Parser
type Option func(*Parser)

// WithStatuses sets the allowed statuses, usually from the project config
func WithStatuses(statuses []string) Option {
	return func(p *Parser) {
		p.statuses = statuses
	}
}

// WithClock sets the clock used to default a missing created date
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a parser that accepts the default statuses
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		statuses: domain.DefaultStatuses,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseItem parses doc with the default statuses and the system clock
func ParseItem(doc, source string) (domain.Item, error) {
	return NewParser().Parse(doc, source)
}

// Parse builds an item from doc. source names the document in errors.
//
// A missing id or title, or any schema violation, yields a *domain.ParseError.
// A missing created date defaults to today and a missing updated date to created.
func (p *Parser) Parse(doc, source string) (domain.Item, error) {
	fields, body, ok := frontmatter.Split(doc)
	if !ok && strings.HasPrefix(strings.TrimPrefix(doc, "\ufeff"), frontmatter.Delimiter) {
		return domain.Item{}, &domain.ParseError{Message: "malformed frontmatter block", Source: source}
	}

	for _, key := range []string{"id", "title"} {
		if val, found := fields[key]; !found || val == nil {
			return domain.Item{}, &domain.ParseError{Message: "missing required field: " + key, Source: source}
		}
	}

	if val, found := fields["created"]; !found || val == nil {
		fields["created"] = domain.Today(p.now())
	}
	if val, found := fields["updated"]; !found || val == nil {
		fields["updated"] = fields["created"]
	}

	item, err := ValidateItem(fields, p.statuses)
	if err != nil {
		return domain.Item{}, &domain.ParseError{Message: "invalid item", Source: source, Err: err}
	}

	item.Description = ExtractDescription(body)
	item.Tasks = ExtractTasks(body)
	return item, nil
}
