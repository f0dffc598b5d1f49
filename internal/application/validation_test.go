package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "path",
			value:     "{VAULT_PATH}/out",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "path",
			value:     "",
			wantErr:   true,
			wantMsg:   "path: path is required",
		},
		{
			name:      "whitespace only",
			fieldName: "executablePath",
			value:     "   ",
			wantErr:   true,
			wantMsg:   "executablePath: executable path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if valErr.Field != tt.fieldName {
				t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}
