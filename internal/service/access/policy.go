// Package access is the single authorization chokepoint of the portal.
// Every read funnels through FilterVisible and every mutation through
// Authorize or ResolveOwner; no other package compares caller identity to
// record ownership.
package access

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/pkg/errors"
	"github.com/vidamais/portal-api/pkg/metrics"
)

// Owned is any record carrying an owning patient identity.
type Owned interface {
	Owner() uuid.UUID
}

type Policy struct {
	metrics *metrics.Metrics
}

// NewPolicy creates the policy. Metrics may be nil, e.g. in tests.
func NewPolicy(m *metrics.Metrics) *Policy {
	return &Policy{metrics: m}
}

// FilterVisible returns the records the caller may see, preserving input
// order. Admins see everything unchanged; clients see only their own
// records.
func FilterVisible[T Owned](p *Policy, kind string, caller model.Caller, records []T) []T {
	if caller.IsAdmin() {
		return records
	}

	visible := make([]T, 0, len(records))
	hidden := 0
	for _, rec := range records {
		if rec.Owner() == caller.PatientID {
			visible = append(visible, rec)
		} else {
			hidden++
		}
	}

	if p.metrics != nil && hidden > 0 {
		p.metrics.RecordsFiltered.WithLabelValues(kind).Add(float64(hidden))
	}
	return visible
}

// ResolveOwner decides the owner of a record being created. A client always
// creates records for itself, regardless of the requested owner; an admin
// must name the target patient explicitly.
func (p *Policy) ResolveOwner(caller model.Caller, kind string, requested uuid.UUID) (uuid.UUID, error) {
	if caller.IsAdmin() {
		if requested == uuid.Nil {
			return uuid.Nil, errors.NewValidation(
				fmt.Sprintf("target patient is required to create a %s", kind), nil)
		}
		return requested, nil
	}
	return caller.PatientID, nil
}

// Authorize decides whether the caller may mutate an existing record.
func (p *Policy) Authorize(caller model.Caller, kind string, rec Owned) error {
	if caller.IsAdmin() {
		return nil
	}
	if rec.Owner() == caller.PatientID {
		return nil
	}

	if p.metrics != nil {
		p.metrics.AccessDenied.WithLabelValues(kind, string(caller.Role)).Inc()
	}
	return errors.NewForbidden(
		fmt.Sprintf("caller does not own this %s", kind), nil)
}
