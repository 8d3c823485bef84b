package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// fields renders a patch struct (pointer fields, omitempty) as the partial
// document sent to a backend.
func fields(patch any) (map[string]any, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, errors.Wrap(err, "encode patch")
	}

	out := make(map[string]any)
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "decode patch fields")
	}

	return out, nil
}

// MergeFields overlays top-level fields on a JSON document. Backends use it
// for partial updates, so in-memory patches and stored documents merge the
// same way.
func MergeFields(doc []byte, set map[string]any) ([]byte, error) {
	base := make(map[string]json.RawMessage)

	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &base); err != nil {
			return nil, errors.Wrap(err, "decode document")
		}
	}

	for k, v := range set {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encode field %s", k)
		}

		base[k] = raw
	}

	out, err := json.Marshal(base)

	return out, errors.Wrap(err, "encode document")
}

// merge applies patch to dst with MergeFields semantics: set fields replace
// the stored value as a whole, slices included.
func merge[T any](dst *T, patch any) error {
	set, err := fields(patch)
	if err != nil {
		return err
	}

	doc, err := json.Marshal(dst)
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	if doc, err = MergeFields(doc, set); err != nil {
		return err
	}

	var out T
	if err = json.Unmarshal(doc, &out); err != nil {
		return errors.Wrap(err, "apply patch")
	}

	*dst = out

	return nil
}

// Ptr returns a pointer to v, handy when building patches.
func Ptr[T any](v T) *T {
	return &v
}
