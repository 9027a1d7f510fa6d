// Package services – evidence collector.
//
// This file implements the pure validation and normalization layer invoked
// by Submit-Evidence. Each verification method has its own required shape:
// tag and microchip claims need a non-empty identifier, photo claims need at
// least one stored image URL, question claims need at least one fully formed
// prompt/answer pair, and manual claims carry no structured proof at all.
// The collector returns a typed evidence variant or an error naming the
// missing field; it never touches storage.
package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

// EvidenceSubmission is the transport-agnostic union of all fields a
// claimant may submit. Which fields are consulted depends on the
// verification method of the record.
type EvidenceSubmission struct {
	// Method optionally echoes the verification method the claimant thinks
	// they are submitting for; when present it must match the record.
	Method string `json:"verification_method,omitempty"`

	UniqueIdentifier string                    `json:"unique_identifier,omitempty"`
	OwnerPhotos      []string                  `json:"owner_photos,omitempty"`
	Questions        []domain.SecurityQuestion `json:"questions,omitempty"`
	Note             string                    `json:"note,omitempty"`
}

// CollectEvidence validates sub against method and returns the normalized
// typed variant. Question answers are graded here when provided, using
// Unicode case folding so "Rex" and "rex" compare equal.
func CollectEvidence(method string, sub EvidenceSubmission) (domain.Evidence, error) {
	switch method {
	case domain.MethodTag:
		id := strings.TrimSpace(sub.UniqueIdentifier)
		if id == "" {
			return nil, fmt.Errorf("%w: unique_identifier is required for TAG", ErrInvalidEvidence)
		}
		return domain.TagEvidence{UniqueIdentifier: id}, nil

	case domain.MethodMicrochip:
		id := strings.TrimSpace(sub.UniqueIdentifier)
		if id == "" {
			return nil, fmt.Errorf("%w: unique_identifier is required for MICROCHIP", ErrInvalidEvidence)
		}
		return domain.MicrochipEvidence{UniqueIdentifier: id}, nil

	case domain.MethodPhoto:
		photos := trimmedNonEmpty(sub.OwnerPhotos)
		if len(photos) == 0 {
			return nil, fmt.Errorf("%w: owner_photos must contain at least one image reference", ErrInvalidEvidence)
		}
		return domain.PhotoEvidence{OwnerPhotos: photos}, nil

	case domain.MethodQuestions:
		if len(sub.Questions) == 0 {
			return nil, fmt.Errorf("%w: questions must contain at least one entry", ErrInvalidEvidence)
		}
		out := make([]domain.SecurityQuestion, 0, len(sub.Questions))
		for i, q := range sub.Questions {
			prompt := strings.TrimSpace(q.Question)
			expected := strings.TrimSpace(q.ExpectedAnswer)
			if prompt == "" {
				return nil, fmt.Errorf("%w: questions[%d].question is required", ErrInvalidEvidence, i)
			}
			if expected == "" {
				return nil, fmt.Errorf("%w: questions[%d].expected_answer is required", ErrInvalidEvidence, i)
			}
			graded := domain.SecurityQuestion{
				Question:       prompt,
				ExpectedAnswer: expected,
				ProvidedAnswer: strings.TrimSpace(q.ProvidedAnswer),
			}
			if graded.ProvidedAnswer != "" {
				ok := answersMatch(expected, graded.ProvidedAnswer)
				graded.IsCorrect = &ok
			}
			out = append(out, graded)
		}
		return domain.QuestionsEvidence{Questions: out}, nil

	case domain.MethodManual:
		// Manual claims escalate straight to human review.
		return domain.ManualEvidence{Note: strings.TrimSpace(sub.Note)}, nil
	}
	return nil, ErrInvalidMethod
}

// answersMatch compares a provided answer against the expected one using
// Unicode case folding.
func answersMatch(expected, provided string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(expected)) == fold.String(strings.TrimSpace(provided))
}

// trimmedNonEmpty trims each entry and drops blanks, preserving order.
func trimmedNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
