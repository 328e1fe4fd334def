// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package catalog

// Publisher is a publishing house. Name is unique across all publishers.
type Publisher struct {
	ID          int64
	Name        string
	FoundedYear int
	Location    string
	Website     *string
}

func (p *Publisher) Kind() Kind      { return KindPublisher }
func (p *Publisher) RecordID() int64 { return p.ID }

// Validate checks the publisher's required fields and founding year.
func (p *Publisher) Validate() error {
	v := &Validator{}
	v.Required(FieldName, p.Name).
		NonNegative(FieldFoundedYear, p.FoundedYear).
		Required(FieldLocation, p.Location)
	return v.Err()
}

// WebsiteOrEmpty returns the website, or "" when none is recorded.
func (p *Publisher) WebsiteOrEmpty() string {
	if p.Website == nil {
		return ""
	}
	return *p.Website
}
