package services

import (
	"errors"
	"testing"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

func TestCollectEvidence_Tag(t *testing.T) {
	ev, err := CollectEvidence(domain.MethodTag, EvidenceSubmission{UniqueIdentifier: "  TAG-7 "})
	if err != nil {
		t.Fatalf("CollectEvidence: %v", err)
	}
	tag, ok := ev.(domain.TagEvidence)
	if !ok || tag.UniqueIdentifier != "TAG-7" {
		t.Fatalf("unexpected evidence: %#v", ev)
	}

	if _, err := CollectEvidence(domain.MethodTag, EvidenceSubmission{}); !errors.Is(err, ErrInvalidEvidence) {
		t.Fatalf("want ErrInvalidEvidence, got %v", err)
	}
}

func TestCollectEvidence_Microchip(t *testing.T) {
	ev, err := CollectEvidence(domain.MethodMicrochip, EvidenceSubmission{UniqueIdentifier: "981098100000001"})
	if err != nil {
		t.Fatalf("CollectEvidence: %v", err)
	}
	if ev.EvidenceMethod() != domain.MethodMicrochip {
		t.Fatalf("method = %s", ev.EvidenceMethod())
	}

	if _, err := CollectEvidence(domain.MethodMicrochip, EvidenceSubmission{UniqueIdentifier: "   "}); !errors.Is(err, ErrInvalidEvidence) {
		t.Fatalf("want ErrInvalidEvidence, got %v", err)
	}
}

func TestCollectEvidence_Photo(t *testing.T) {
	ev, err := CollectEvidence(domain.MethodPhoto, EvidenceSubmission{
		OwnerPhotos: []string{" s3://owner/1.jpg ", "", "s3://owner/2.jpg"},
	})
	if err != nil {
		t.Fatalf("CollectEvidence: %v", err)
	}
	pe := ev.(domain.PhotoEvidence)
	if len(pe.OwnerPhotos) != 2 || pe.OwnerPhotos[0] != "s3://owner/1.jpg" {
		t.Fatalf("photos not normalized: %+v", pe)
	}

	if _, err := CollectEvidence(domain.MethodPhoto, EvidenceSubmission{OwnerPhotos: []string{" ", ""}}); !errors.Is(err, ErrInvalidEvidence) {
		t.Fatalf("want ErrInvalidEvidence, got %v", err)
	}
}

func TestCollectEvidence_Questions_GradesAnswers(t *testing.T) {
	ev, err := CollectEvidence(domain.MethodQuestions, EvidenceSubmission{
		Questions: []domain.SecurityQuestion{
			{Question: "What is her name?", ExpectedAnswer: "Luna", ProvidedAnswer: "luna"},
			{Question: "Collar color?", ExpectedAnswer: "red", ProvidedAnswer: "blue"},
			{Question: "Favorite toy?", ExpectedAnswer: "rope"},
		},
	})
	if err != nil {
		t.Fatalf("CollectEvidence: %v", err)
	}
	qe := ev.(domain.QuestionsEvidence)
	if len(qe.Questions) != 3 {
		t.Fatalf("questions = %d", len(qe.Questions))
	}
	if qe.Questions[0].IsCorrect == nil || !*qe.Questions[0].IsCorrect {
		t.Fatalf("case-insensitive match not graded correct: %+v", qe.Questions[0])
	}
	if qe.Questions[1].IsCorrect == nil || *qe.Questions[1].IsCorrect {
		t.Fatalf("wrong answer graded correct: %+v", qe.Questions[1])
	}
	if qe.Questions[2].IsCorrect != nil {
		t.Fatalf("unanswered question must stay ungraded: %+v", qe.Questions[2])
	}
}

func TestCollectEvidence_Questions_RequiresCompletePairs(t *testing.T) {
	cases := []EvidenceSubmission{
		{}, // none at all
		{Questions: []domain.SecurityQuestion{{Question: "", ExpectedAnswer: "x"}}},
		{Questions: []domain.SecurityQuestion{{Question: "q", ExpectedAnswer: " "}}},
	}
	for i, sub := range cases {
		if _, err := CollectEvidence(domain.MethodQuestions, sub); !errors.Is(err, ErrInvalidEvidence) {
			t.Fatalf("case %d: want ErrInvalidEvidence, got %v", i, err)
		}
	}
}

func TestCollectEvidence_Manual(t *testing.T) {
	ev, err := CollectEvidence(domain.MethodManual, EvidenceSubmission{Note: "met at the shelter, matched on sight"})
	if err != nil {
		t.Fatalf("CollectEvidence: %v", err)
	}
	me := ev.(domain.ManualEvidence)
	if me.Note == "" {
		t.Fatalf("note dropped")
	}

	// MANUAL needs no structured proof at all.
	if _, err := CollectEvidence(domain.MethodManual, EvidenceSubmission{}); err != nil {
		t.Fatalf("empty manual submission: %v", err)
	}
}

func TestCollectEvidence_UnknownMethod(t *testing.T) {
	if _, err := CollectEvidence("CARRIER-PIGEON", EvidenceSubmission{}); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("want ErrInvalidMethod, got %v", err)
	}
}
