package postfilter

import (
	"testing"

	"phi-redactor/internal/span"
)

func nameDetection(text string, confidence float64) span.Detection {
	return span.Detection{
		FilterType: span.Name,
		Text:       text,
		Confidence: confidence,
	}
}

func TestShouldKeep_SectionHeading(t *testing.T) {
	d := ShouldKeep(nameDetection("IMPRESSION", 0.8))
	if d.Keep {
		t.Fatal("expected IMPRESSION to be rejected")
	}
	if d.RemovedBy != "SectionHeading" {
		t.Errorf("got RemovedBy=%s, want SectionHeading", d.RemovedBy)
	}
}

func TestShouldKeep_MultiWordSectionHeading(t *testing.T) {
	d := ShouldKeep(nameDetection("CHIEF COMPLAINT", 0.8))
	if d.Keep || d.RemovedBy != "SectionHeading" {
		t.Errorf("got %+v, want rejected as SectionHeading", d)
	}
}

func TestShouldKeep_StructureWord(t *testing.T) {
	d := ShouldKeep(nameDetection("Patient RECORD Smith", 0.8))
	if d.Keep || d.RemovedBy != "StructureWord" {
		t.Errorf("got %+v, want rejected as StructureWord", d)
	}
}

func TestShouldKeep_ShortNameLowConfidence(t *testing.T) {
	d := ShouldKeep(nameDetection("Li", 0.5))
	if d.Keep || d.RemovedBy != "ShortName" {
		t.Errorf("got %+v, want rejected as ShortName", d)
	}
}

func TestShouldKeep_ShortNameHighConfidenceSurvives(t *testing.T) {
	d := ShouldKeep(nameDetection("Li", 0.95))
	if !d.Keep {
		t.Errorf("got %+v, want kept (confidence above threshold)", d)
	}
}

func TestShouldKeep_ShortNameWithCommaSurvives(t *testing.T) {
	d := ShouldKeep(nameDetection("Li,", 0.5))
	if !d.Keep {
		t.Errorf("got %+v, want kept (contains comma)", d)
	}
}

func TestShouldKeep_InvalidPrefix(t *testing.T) {
	d := ShouldKeep(nameDetection("The Smith family", 0.8))
	if d.Keep || d.RemovedBy != "InvalidPrefix" {
		t.Errorf("got %+v, want rejected as InvalidPrefix", d)
	}
}

func TestShouldKeep_InvalidSuffix(t *testing.T) {
	d := ShouldKeep(nameDetection("Dr. Smith reviewed", 0.8))
	if d.Keep || d.RemovedBy != "InvalidSuffix" {
		t.Errorf("got %+v, want rejected as InvalidSuffix", d)
	}
}

func TestShouldKeep_MedicalPhrase(t *testing.T) {
	d := ShouldKeep(nameDetection("The Patient", 0.8))
	// "The " prefix fires first in precedence order.
	if d.Keep || d.RemovedBy != "InvalidPrefix" {
		t.Errorf("got %+v, want rejected as InvalidPrefix", d)
	}

	d2 := ShouldKeep(nameDetection("software engineer", 0.8))
	if d2.Keep || d2.RemovedBy != "MedicalPhrase" {
		t.Errorf("got %+v, want rejected as MedicalPhrase", d2)
	}
}

func TestShouldKeep_MedicalSuffix(t *testing.T) {
	d := ShouldKeep(nameDetection("Lyme Disease", 0.8))
	if d.Keep || d.RemovedBy != "MedicalSuffix" {
		t.Errorf("got %+v, want rejected as MedicalSuffix", d)
	}
}

func TestShouldKeep_GeographicTerm(t *testing.T) {
	d := ShouldKeep(nameDetection("boulder", 0.8))
	if d.Keep || d.RemovedBy != "GeographicTerm" {
		t.Errorf("got %+v, want rejected as GeographicTerm", d)
	}
}

func TestShouldKeep_FieldLabel(t *testing.T) {
	d := ShouldKeep(nameDetection("last visit", 0.8))
	if d.Keep || d.RemovedBy != "FieldLabel" {
		t.Errorf("got %+v, want rejected as FieldLabel", d)
	}
}

func TestShouldKeep_NameLineBreakLabel(t *testing.T) {
	d := ShouldKeep(nameDetection("Jane Doe\nDOB: 01/01/1980", 0.8))
	if d.Keep || d.RemovedBy != "NameLineBreak" {
		t.Errorf("got %+v, want rejected as NameLineBreak", d)
	}
}

func TestShouldKeep_NameLineBreakColonShort(t *testing.T) {
	d := ShouldKeep(nameDetection("Jane Doe\nWard: East 4", 0.8))
	if d.Keep || d.RemovedBy != "NameLineBreak" {
		t.Errorf("got %+v, want rejected as NameLineBreak", d)
	}
}

func TestShouldKeep_OrdinaryNameSurvives(t *testing.T) {
	d := ShouldKeep(nameDetection("Jonathan Alvarez", 0.8))
	if !d.Keep {
		t.Errorf("got %+v, want kept", d)
	}
	if d.RemovedBy != "" {
		t.Errorf("RemovedBy should be empty on keep, got %s", d.RemovedBy)
	}
}

func TestShouldKeep_NonNameTypeAlwaysKept(t *testing.T) {
	d := span.Detection{FilterType: span.SSN, Text: "IMPRESSION", Confidence: 0.8}
	got := ShouldKeep(d)
	if !got.Keep {
		t.Errorf("non-NAME types should always be kept, got %+v", got)
	}
}

func TestShouldKeep_DevicePhoneFalsePositive(t *testing.T) {
	d := span.Detection{FilterType: span.Device, Text: "press call button for assistance", Confidence: 0.6}
	got := ShouldKeep(d)
	if got.Keep || got.RemovedBy != "DevicePhoneFalsePositive" {
		t.Errorf("got %+v, want rejected as DevicePhoneFalsePositive", got)
	}
}

func TestShouldKeep_DevicePhoneFalsePositive_RoomLabel(t *testing.T) {
	d := span.Detection{FilterType: span.Phone, Text: "room: 204", Confidence: 0.6}
	got := ShouldKeep(d)
	if got.Keep || got.RemovedBy != "DevicePhoneFalsePositive" {
		t.Errorf("got %+v, want rejected as DevicePhoneFalsePositive", got)
	}
}
