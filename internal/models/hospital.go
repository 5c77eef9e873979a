package models

import (
	"bytes"
)

// HospitalList accepts both `{"hospitals": [...]}` and a bare array, since the
// backend has served both shapes.
type HospitalList []Document

func (h *HospitalList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*h = HospitalList{}
		return nil
	}

	if trimmed[0] == '[' {
		var docs []Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return err
		}
		*h = docs
		return nil
	}

	var wrapped struct {
		Hospitals []Document `json:"hospitals"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	if wrapped.Hospitals == nil {
		wrapped.Hospitals = []Document{}
	}
	*h = wrapped.Hospitals
	return nil
}
