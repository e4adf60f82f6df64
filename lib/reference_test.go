package lib

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPaymentReferenceRoundTrip(t *testing.T) {
	orderId := uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000")

	ref := GeneratePaymentReference(orderId)
	if ref != "BAGELS-A1B2C3D4" {
		t.Fatalf("GeneratePaymentReference = %q", ref)
	}

	fragment, ok := ParsePaymentReference(ref)
	if !ok {
		t.Fatal("ParsePaymentReference failed on its own output")
	}
	if !MatchesOrder(fragment, orderId) {
		t.Errorf("fragment %q should match order %s", fragment, orderId)
	}
	if got := FormatPaymentReference(fragment); got != ref {
		t.Errorf("FormatPaymentReference(%q) = %q, want %q", fragment, got, ref)
	}
}

func TestParsePaymentReferenceFromNoteText(t *testing.T) {
	orderId := uuid.New()
	ref := GeneratePaymentReference(orderId)

	notes := []string{
		"Thanks! " + ref,
		ref + " for saturday pickup",
		strings.ToLower(ref),
		"payment for bagels: " + ref + ".",
	}
	for _, note := range notes {
		fragment, ok := ParsePaymentReference(note)
		if !ok {
			t.Errorf("ParsePaymentReference(%q) failed", note)
			continue
		}
		if !MatchesOrder(fragment, orderId) {
			t.Errorf("ParsePaymentReference(%q) = %q, does not match %s", note, fragment, orderId)
		}
	}
}

func TestParsePaymentReferenceRejects(t *testing.T) {
	notes := []string{
		"",
		"just a venmo note",
		"BAGELS-",
		"BAGELS-XYZ",      // non-hex fragment
		"BAGELS-A1B2C3",   // too short
		"BAGEL-A1B2C3D4",  // wrong prefix
	}
	for _, note := range notes {
		if _, ok := ParsePaymentReference(note); ok {
			t.Errorf("ParsePaymentReference(%q) should fail", note)
		}
	}
}

func TestMatchesOrderWrongOrder(t *testing.T) {
	a := uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000000")
	b := uuid.MustParse("deadbeef-0000-4000-8000-000000000000")

	fragment, ok := ParsePaymentReference(GeneratePaymentReference(a))
	if !ok {
		t.Fatal("parse failed")
	}
	if MatchesOrder(fragment, b) {
		t.Error("fragment from order a must not match order b")
	}
}
