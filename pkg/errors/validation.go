package errors

// ValidateTolerance checks that an autocrop tolerance is within 0-100 percent.
func ValidateTolerance(tol int) error {
	if tol < 0 || tol > 100 {
		return New(ErrCodeInvalidInput, "tolerance must be between 0 and 100, got %d", tol)
	}
	return nil
}

// ValidateDPI checks that a dpi value is positive.
func ValidateDPI(dpi int) error {
	if dpi <= 0 {
		return New(ErrCodeInvalidInput, "dpi must be positive, got %d", dpi)
	}
	return nil
}

// ValidateMargin checks that a page margin in millimeters is non-negative.
func ValidateMargin(mm float64) error {
	if mm < 0 {
		return New(ErrCodeInvalidInput, "margin must not be negative, got %v mm", mm)
	}
	return nil
}
