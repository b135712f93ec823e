package imaging

import (
	"fmt"
	"sync"
)

// PendingState is the lifecycle state of one image field during authoring.
type PendingState int

// Pending image states: empty → selected → cropping → uploading →
// resolved | failed.
const (
	StateEmpty PendingState = iota
	StateSelected
	StateCropping
	StateUploading
	StateResolved
	StateFailed
)

func (s PendingState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSelected:
		return "selected"
	case StateCropping:
		return "cropping"
	case StateUploading:
		return "uploading"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PendingImage tracks one image field through selection, crop, and upload.
type PendingImage struct {
	State  PendingState
	URL    string // set when State == StateResolved
	Reason string // set when State == StateFailed
}

// PendingSet tracks the pending image of every field in one authoring
// session, keyed by field name so independent fields (before/after pairs)
// never cross-contaminate. At most one field may be in the cropping or
// uploading state at a time; selecting or cropping a different field resets
// the previously active one.
type PendingSet struct {
	mu     sync.Mutex
	fields map[string]*PendingImage
	active string // field currently cropping or uploading, "" if none
}

// NewPendingSet creates an empty set.
func NewPendingSet() *PendingSet {
	return &PendingSet{fields: make(map[string]*PendingImage)}
}

// Get returns a copy of the field's pending image. Unknown fields are empty.
func (ps *PendingSet) Get(field string) PendingImage {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.fields[field]; ok {
		return *p
	}
	return PendingImage{State: StateEmpty}
}

// Select stages a file for the field. Any in-flight crop on another field
// is discarded first.
func (ps *PendingSet) Select(field string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.switchTo(field)
	ps.fields[field] = &PendingImage{State: StateSelected}
}

// BeginCrop moves the field into the cropping state. The field must have a
// staged file.
func (ps *PendingSet) BeginCrop(field string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.switchTo(field)
	p, ok := ps.fields[field]
	if !ok || p.State != StateSelected {
		return fmt.Errorf("no staged file for field %q", field)
	}
	p.State = StateCropping
	ps.active = field
	return nil
}

// CancelCrop discards the staged file and crop state without uploading.
func (ps *PendingSet) CancelCrop(field string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.reset(field)
}

// BeginUpload moves the field into the uploading state.
func (ps *PendingSet) BeginUpload(field string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.fields[field]
	if !ok || (p.State != StateSelected && p.State != StateCropping) {
		return fmt.Errorf("no staged file for field %q", field)
	}
	if ps.active != "" && ps.active != field {
		return fmt.Errorf("field %q is still in flight", ps.active)
	}
	p.State = StateUploading
	ps.active = field
	return nil
}

// Resolve records the public URL for an uploaded field.
func (ps *PendingSet) Resolve(field, url string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.fields[field] = &PendingImage{State: StateResolved, URL: url}
	if ps.active == field {
		ps.active = ""
	}
}

// Fail records an upload failure. The field stays failed until the user
// re-selects a file; there is no automatic retry.
func (ps *PendingSet) Fail(field, reason string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.fields[field] = &PendingImage{State: StateFailed, Reason: reason}
	if ps.active == field {
		ps.active = ""
	}
}

// Reset returns the field to the empty state.
func (ps *PendingSet) Reset(field string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.reset(field)
}

// switchTo discards transient crop state on the previously active field
// when a different field becomes active. Resolved and failed states are
// durable and survive the switch.
func (ps *PendingSet) switchTo(field string) {
	if ps.active == "" || ps.active == field {
		return
	}
	if p, ok := ps.fields[ps.active]; ok && (p.State == StateCropping || p.State == StateSelected) {
		p.State = StateEmpty
	}
	ps.active = ""
}

func (ps *PendingSet) reset(field string) {
	ps.fields[field] = &PendingImage{State: StateEmpty}
	if ps.active == field {
		ps.active = ""
	}
}
