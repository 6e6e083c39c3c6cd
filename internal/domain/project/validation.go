package project

import (
	"fmt"
	"strings"
)

// ValidateRequired checks the fields every stored project must carry.
func ValidateRequired(p Project) error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Description) == "" {
		missing = append(missing, "description")
	}
	if p.Type == "" {
		missing = append(missing, "type")
	}
	if p.Status == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks required fields and enum membership.
func Validate(p Project) error {
	if err := ValidateRequired(p); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, p.Type)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}
	if p.Stage != "" && !p.Stage.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, p.Stage)
	}
	return nil
}

// ClampUsefulness maps anything outside 1..5 to the default rating.
func ClampUsefulness(n int) int {
	if n < MinUsefulness || n > MaxUsefulness {
		return DefaultUsefulness
	}
	return n
}

// ClampProgress forces n into 0..100.
func ClampProgress(n int) int {
	return min(MaxProgress, max(MinProgress, n))
}

// DedupeTags trims tags, drops blanks, and keeps the first of each duplicate.
// A nil input stays nil.
func DedupeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Normalize returns a copy of p with every range and set invariant enforced.
func Normalize(p Project) Project {
	out := p.Clone()
	out.ID = strings.TrimSpace(out.ID)
	out.Name = strings.TrimSpace(out.Name)
	out.Description = strings.TrimSpace(out.Description)
	out.Usefulness = ClampUsefulness(out.Usefulness)
	if out.Progress != nil {
		v := ClampProgress(*out.Progress)
		out.Progress = &v
	}
	out.Tags = DedupeTags(out.Tags)
	return out
}

// ParseType validates a user-supplied project type.
func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseStatus validates a user-supplied status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
	return st, nil
}

// ParseStage validates a user-supplied stage. Blank means unset.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.TrimSpace(s))
	if st != "" && !st.Valid() {
		return "", fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, s)
	}
	return st, nil
}
