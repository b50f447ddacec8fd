package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestColumnNotFoundError(t *testing.T) {
	err := NewColumnNotFoundError("Protein")

	// Test error message
	expectedMsg := "column 'Protein' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrColumnNotFound) {
		t.Error("Expected error to match ErrColumnNotFound sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrColumnNotNumeric) {
		t.Error("Error should not match ErrColumnNotNumeric")
	}
}

func TestColumnNotNumericError(t *testing.T) {
	err := NewColumnNotNumericError("Carbs", 4, "lots")

	expectedMsg := "column 'Carbs' has non-numeric value 'lots' at row 4"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	empty := NewColumnNotNumericError("Fat", 2, "")
	expectedMsg2 := "column 'Fat' has an empty value at row 2"
	if empty.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, empty.Error())
	}

	if !errors.Is(err, ErrColumnNotNumeric) {
		t.Error("Expected error to match ErrColumnNotNumeric sentinel")
	}
}

func TestDatasetError(t *testing.T) {
	err := NewDatasetError("All_Diets.csv", "file is empty")

	expectedMsg := "invalid dataset 'All_Diets.csv': file is empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	noSource := NewDatasetError("", "file is empty")
	if noSource.Error() != "invalid dataset: file is empty" {
		t.Errorf("Unexpected error message '%s'", noSource.Error())
	}

	if !errors.Is(err, ErrInvalidDataset) {
		t.Error("Expected error to match ErrInvalidDataset sentinel")
	}
}

func TestRenderError(t *testing.T) {
	cause := errors.New("canvas too small")
	err := NewRenderError("heatmap", cause)

	expectedMsg := "failed to render heatmap: canvas too small"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrRenderFailed) {
		t.Error("Expected error to match ErrRenderFailed sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}

func TestWrappedErrors(t *testing.T) {
	// Test that wrapped errors still match sentinels
	baseErr := NewColumnNotFoundError("Diet Type")
	wrappedErr := fmt.Errorf("loading table: %w", baseErr)

	if !errors.Is(wrappedErr, ErrColumnNotFound) {
		t.Error("Wrapped error should still match ErrColumnNotFound sentinel")
	}

	var target *ColumnNotFoundError
	if !errors.As(wrappedErr, &target) {
		t.Fatal("Expected errors.As to find ColumnNotFoundError")
	}
	if target.Column != "Diet Type" {
		t.Errorf("Expected column 'Diet Type', got '%s'", target.Column)
	}
}
