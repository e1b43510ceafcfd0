package implementation

import (
	"testing"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
)

// Un-numbered certifications must be stored as NULL: under the unique index
// two empty strings collide, so a second pending certification anywhere in
// the system would read as a duplicate.
func TestCertNumberOrNull(t *testing.T) {
	if got := certNumberOrNull(""); got != nil {
		t.Errorf("empty number stored as %q, want NULL", *got)
	}

	got := certNumberOrNull("CERT-20250615-abcd1234")
	if got == nil || *got != "CERT-20250615-abcd1234" {
		t.Errorf("stamped number lost in mapping: %v", got)
	}
}

func TestCertificationMapToEntityNumber(t *testing.T) {
	repo := &certificationRepositoryImpl{}

	e := repo.mapToEntity(&model.Certification{Status: "pending"})
	if e.CertificationNumber != "" {
		t.Errorf("NULL number mapped to %q, want empty string", e.CertificationNumber)
	}
	if e.Status != entity.CertificationStatusPending {
		t.Errorf("status mapped to %q", e.Status)
	}

	number := "CERT-20250615-abcd1234"
	e = repo.mapToEntity(&model.Certification{Status: "approved", CertificationNumber: &number})
	if e.CertificationNumber != number {
		t.Errorf("number mapped to %q, want %q", e.CertificationNumber, number)
	}
}
