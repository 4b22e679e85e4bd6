package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsError_DomainError(t *testing.T) {
	domainErr := New(CodeNotFound, "test")

	got, ok := AsError(domainErr)
	if !ok {
		t.Error("AsError should return true for domain error")
	}
	if got != domainErr {
		t.Error("AsError should return the same domain error")
	}
}

func TestAsError_ReturnsOutermost(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	outer := Wrap(inner, CodeDependencyValidation, "Invalid input, contact support.")

	got, ok := AsError(outer)
	if !ok {
		t.Fatal("AsError should return true for wrapped domain error")
	}
	if got.Code != CodeDependencyValidation {
		t.Errorf("AsError should return outer error, got code %v", got.Code)
	}
}

func TestAsError_StandardError(t *testing.T) {
	got, ok := AsError(errors.New("standard error"))
	if ok || got != nil {
		t.Error("AsError should return nil, false for standard error")
	}
}

func TestAsError_Nil(t *testing.T) {
	got, ok := AsError(nil)
	if ok || got != nil {
		t.Error("AsError should return nil, false for nil")
	}
}

func TestGetCode_HasCode(t *testing.T) {
	err := Wrap(New(CodeLocked, "locked"), CodeDependency, "dep")
	if GetCode(err) != CodeDependency {
		t.Errorf("GetCode = %v, want %v", GetCode(err), CodeDependency)
	}
	if !HasCode(err, CodeDependency) {
		t.Error("HasCode should match the outer code")
	}
	if HasCode(err, CodeLocked) {
		t.Error("HasCode should not match an inner code")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode should be empty for a plain error")
	}
}

func TestContainsCode(t *testing.T) {
	raw := errors.New("deadlock")
	err := fmt.Errorf("context: %w", Wrap(Locked(raw, "locked"), CodeDependency, "dep"))

	if !ContainsCode(err, CodeLocked) {
		t.Error("ContainsCode should find inner code through fmt wrapping")
	}
	if !ContainsCode(err, CodeDependency) {
		t.Error("ContainsCode should find outer code")
	}
	if ContainsCode(err, CodeFailedStorage) {
		t.Error("ContainsCode should not find an absent code")
	}
	if ContainsCode(nil, CodeLocked) {
		t.Error("ContainsCode(nil) should be false")
	}
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		validation   bool
		depVal       bool
		dependency   bool
		service      bool
		callerFixErr bool
	}{
		{"validation", New(CodeValidation, "v"), true, false, false, false, true},
		{"dependency validation", New(CodeDependencyValidation, "dv"), false, true, false, false, true},
		{"dependency", New(CodeDependency, "d"), false, false, true, false, false},
		{"service", New(CodeService, "s"), false, false, false, true, false},
		{"inner cause only", New(CodeNotFound, "nf"), false, false, false, false, false},
		{"plain error", errors.New("plain"), false, false, false, false, false},
		{"nil", nil, false, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsDependencyValidation(tt.err); got != tt.depVal {
				t.Errorf("IsDependencyValidation = %v, want %v", got, tt.depVal)
			}
			if got := IsDependency(tt.err); got != tt.dependency {
				t.Errorf("IsDependency = %v, want %v", got, tt.dependency)
			}
			if got := IsService(tt.err); got != tt.service {
				t.Errorf("IsService = %v, want %v", got, tt.service)
			}
			if got := IsCallerFixable(tt.err); got != tt.callerFixErr {
				t.Errorf("IsCallerFixable = %v, want %v", got, tt.callerFixErr)
			}
		})
	}
}

func TestIsCategorized(t *testing.T) {
	if !IsCategorized(New(CodeService, "s")) {
		t.Error("outer code should be categorized")
	}
	if IsCategorized(New(CodeFailedService, "f")) {
		t.Error("inner code should not be categorized")
	}
}

func TestViolationsOf(t *testing.T) {
	v := &Violations{}
	v.Add("Id", "Id is required")
	err := Wrap(Invalid("Invalid Fleet.", v), CodeValidation, "Invalid input, contact support.")

	if got := ViolationsOf(err); got != v {
		t.Errorf("ViolationsOf should return the attached report, got %v", got)
	}
	if ViolationsOf(New(CodeDependency, "d")) != nil {
		t.Error("ViolationsOf should be nil when no report is attached")
	}
}

func TestCause(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	err := Wrap(inner, CodeDependencyValidation, "Invalid input, contact support.")

	if Cause(err) != inner {
		t.Error("Cause should return the outer error's cause")
	}
	if Cause(errors.New("plain")) != nil {
		t.Error("Cause should be nil for plain errors")
	}
}
