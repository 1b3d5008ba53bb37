package scene

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNonPositiveDuration = errors.New("non-positive scene duration")
	ErrDuplicateEntity     = errors.New("duplicate entity id")
	ErrUnknownReference    = errors.New("reference to unknown entity")
	ErrSelfLoop            = errors.New("connection from an entity to itself")
)

// ValidationError is a fatal problem with one scene of the input.
type ValidationError struct {
	SceneID string
	Field   string
	Err     error
	Detail  string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("scene %q: %s: %v", e.SceneID, e.Field, e.Err)
	}
	return fmt.Sprintf("scene %q: %s: %v (%s)", e.SceneID, e.Field, e.Err, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every fatal problem found in a scene sequence.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Validate checks the fatal rejection rules: positive duration, unique
// entity ids, no self-loop connections and connection/interaction endpoints
// that exist in the scene.
func Validate(s Scene) ValidationErrors {
	var errs ValidationErrors
	add := func(field string, err error, detail string) {
		errs = append(errs, &ValidationError{SceneID: s.ID, Field: field, Err: err, Detail: detail})
	}

	if s.Duration() <= 0 {
		add("end", ErrNonPositiveDuration, fmt.Sprintf("start=%.3f end=%.3f", s.Start, s.End))
	}

	ids := make(map[string]bool, len(s.Entities))
	for _, e := range s.Entities {
		if ids[e.ID] {
			add("entities", ErrDuplicateEntity, e.ID)
			continue
		}
		ids[e.ID] = true
	}

	for _, c := range s.Connections {
		if c.From == c.To {
			add("connections", ErrSelfLoop, fmt.Sprintf("%s: %s -> %s", c.ID, c.From, c.To))
		}
		for _, ref := range []string{c.From, c.To} {
			if !ids[ref] {
				add("connections", ErrUnknownReference, fmt.Sprintf("%s -> %s", c.ID, ref))
			}
		}
	}
	for _, in := range s.Interactions {
		for _, ref := range []string{in.From, in.To} {
			if !ids[ref] {
				add("interactions", ErrUnknownReference, fmt.Sprintf("%s -> %s", in.ID, ref))
			}
		}
	}
	return errs
}

// ValidateAll validates every scene and returns nil when all are valid.
func ValidateAll(scenes []Scene) error {
	var all ValidationErrors
	for _, s := range scenes {
		all = append(all, Validate(s)...)
	}
	if len(all) == 0 {
		return nil
	}
	return all
}
