package validation

import (
	"errors"
	"testing"
)

type notifyRequest struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     notifyRequest
		wantErr bool
	}{
		{"email present", notifyRequest{Email: "a@example.com"}, false},
		{"email is opaque", notifyRequest{Email: "not-an-email"}, false},
		{"email missing", notifyRequest{Name: "Asha"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			var verr *RequestValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected RequestValidationError, got %T", err)
			}
			if !verr.Has("email") {
				t.Errorf("expected email field error, got %v", verr.Fields)
			}
			if verr.Error() != "email is required" {
				t.Errorf("Error() = %q", verr.Error())
			}
		})
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}
