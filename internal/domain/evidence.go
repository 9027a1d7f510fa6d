// Package domain – evidence tagged union.
//
// Evidence is modelled as a closed set of method-specific variants rather
// than a loose map keyed by a string enum: every place that reads or writes
// evidence switches exhaustively on the variant, so an invalid
// method/evidence combination cannot be represented. The union is persisted
// as a single JSON column on the verification row and travels with the
// aggregate.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Evidence is the sealed interface implemented by exactly one variant per
// verification method.
type Evidence interface {
	// EvidenceMethod returns the verification method this variant belongs to.
	EvidenceMethod() string
}

// TagEvidence carries the identifier printed on a collar tag.
type TagEvidence struct {
	UniqueIdentifier string `json:"unique_identifier"`
}

// EvidenceMethod implements Evidence.
func (TagEvidence) EvidenceMethod() string { return MethodTag }

// MicrochipEvidence carries a registered microchip number.
type MicrochipEvidence struct {
	UniqueIdentifier string `json:"unique_identifier"`
}

// EvidenceMethod implements Evidence.
func (MicrochipEvidence) EvidenceMethod() string { return MethodMicrochip }

// PhotoEvidence carries photo URL sets from both sides. OwnerPhotos are
// submitted by the claimant; FinderPhotos may be attached by the finder at
// the respond step for comparison.
type PhotoEvidence struct {
	OwnerPhotos  []string `json:"owner_photos"`
	FinderPhotos []string `json:"finder_photos,omitempty"`
}

// EvidenceMethod implements Evidence.
func (PhotoEvidence) EvidenceMethod() string { return MethodPhoto }

// SecurityQuestion is one prompt/answer pair in a QUESTIONS claim. The finder
// supplies Question and ExpectedAnswer when filing the report side channel;
// the claimant supplies ProvidedAnswer. IsCorrect is graded at submission.
type SecurityQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	ProvidedAnswer string `json:"provided_answer,omitempty"`
	IsCorrect      *bool  `json:"is_correct,omitempty"`
}

// QuestionsEvidence carries an ordered list of graded security questions.
type QuestionsEvidence struct {
	Questions []SecurityQuestion `json:"questions"`
}

// EvidenceMethod implements Evidence.
func (QuestionsEvidence) EvidenceMethod() string { return MethodQuestions }

// ManualEvidence marks a claim escalated directly to human review. No
// structured proof is required; Note is free text for the reviewer.
type ManualEvidence struct {
	Note string `json:"note,omitempty"`
}

// EvidenceMethod implements Evidence.
func (ManualEvidence) EvidenceMethod() string { return MethodManual }

// EvidenceRecord is the persisted form of the union: the method tag plus the
// raw variant payload. It implements sql/driver Valuer and Scanner so GORM
// stores it as one JSON text column.
type EvidenceRecord struct {
	Method  string          `json:"method"`
	Payload json.RawMessage `json:"payload"`
}

// WrapEvidence encodes a variant into its persisted record form.
func WrapEvidence(ev Evidence) (*EvidenceRecord, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &EvidenceRecord{Method: ev.EvidenceMethod(), Payload: raw}, nil
}

// Unwrap decodes the record back into its typed variant. The switch is
// exhaustive over the supported methods; an unknown tag is a data error.
func (r *EvidenceRecord) Unwrap() (Evidence, error) {
	if r == nil {
		return nil, errors.New("no evidence recorded")
	}
	switch r.Method {
	case MethodTag:
		var ev TagEvidence
		if err := json.Unmarshal(r.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case MethodMicrochip:
		var ev MicrochipEvidence
		if err := json.Unmarshal(r.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case MethodPhoto:
		var ev PhotoEvidence
		if err := json.Unmarshal(r.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case MethodQuestions:
		var ev QuestionsEvidence
		if err := json.Unmarshal(r.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case MethodManual:
		var ev ManualEvidence
		if err := json.Unmarshal(r.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, fmt.Errorf("unknown evidence method %q", r.Method)
}

// Value implements driver.Valuer (JSON text).
func (r *EvidenceRecord) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *EvidenceRecord) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	}
	return fmt.Errorf("cannot scan %T into EvidenceRecord", src)
}

// StringList stores a slice of strings as a JSON text column. Used for photo
// URL sets on pets.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}
