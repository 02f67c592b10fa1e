package errors

import "testing"

func TestValidateTolerance(t *testing.T) {
	tests := []struct {
		tol     int
		wantErr bool
	}{
		{0, false},
		{10, false},
		{100, false},
		{-1, true},
		{101, true},
	}

	for _, tt := range tests {
		err := ValidateTolerance(tt.tol)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTolerance(%d) error = %v, wantErr %v", tt.tol, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateTolerance(%d) code = %q, want INVALID_INPUT", tt.tol, GetCode(err))
		}
	}
}

func TestValidateDPI(t *testing.T) {
	if err := ValidateDPI(72); err != nil {
		t.Errorf("ValidateDPI(72) = %v, want nil", err)
	}
	if err := ValidateDPI(0); err == nil {
		t.Error("ValidateDPI(0) = nil, want error")
	}
	if err := ValidateDPI(-300); err == nil {
		t.Error("ValidateDPI(-300) = nil, want error")
	}
}

func TestValidateMargin(t *testing.T) {
	if err := ValidateMargin(0); err != nil {
		t.Errorf("ValidateMargin(0) = %v, want nil", err)
	}
	if err := ValidateMargin(20); err != nil {
		t.Errorf("ValidateMargin(20) = %v, want nil", err)
	}
	if err := ValidateMargin(-0.5); err == nil {
		t.Error("ValidateMargin(-0.5) = nil, want error")
	}
}
