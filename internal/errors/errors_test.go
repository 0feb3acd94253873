package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewAppError(ErrTypeValidation, "input file is empty", nil),
			want: "[VALIDATION] input file is empty",
		},
		{
			name: "with cause",
			err:  NewAppError(ErrTypeStorage, "write report", fmt.Errorf("disk full")),
			want: "[STORAGE] write report: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewStorageError("create output directory", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewValidationError("value out of range").
		WithContext("field", "week").
		WithContext("value", 99)

	assert.Equal(t, "week", err.Context["field"])
	assert.Equal(t, 99, err.Context["value"])
}

func TestNewDataLoadError(t *testing.T) {
	err := NewDataLoadError("failed to open file", "/data/product_sales.csv", fmt.Errorf("no such file"))

	assert.Equal(t, ErrTypeDataLoad, err.Type)
	assert.Equal(t, "/data/product_sales.csv", err.Context["path"])
	assert.Contains(t, err.Error(), "no such file")
}

func TestNewSchemaMismatchError(t *testing.T) {
	err := NewSchemaMismatchError("/data/in.csv", []string{"state"}, []string{"region"})

	assert.Equal(t, ErrTypeDataLoad, err.Type)
	assert.Contains(t, err.Context["missing_columns"], "state")
	assert.Contains(t, err.Context["extra_columns"], "region")
}

func TestNewSchemaViolationError(t *testing.T) {
	err := NewSchemaViolationError("sales_method", "fax", 12)

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Contains(t, err.Error(), `"fax"`)
	assert.Equal(t, "sales_method", err.Context["field"])
	assert.Equal(t, 12, err.Context["row"])
}

func TestIsType(t *testing.T) {
	err := NewConfigError("invalid tenure policy", nil)

	assert.True(t, IsType(err, ErrTypeConfig))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(fmt.Errorf("plain error"), ErrTypeConfig))
	assert.False(t, IsType(nil, ErrTypeConfig))
}

func TestIssue_String(t *testing.T) {
	corrected := Issue{Row: 3, Field: "years_as_customer", Rule: "max_tenure", Original: "45", Corrected: "39"}
	assert.Equal(t, "row 3: years_as_customer violated max_tenure (45 -> 39)", corrected.String())

	flagged := Issue{Row: 7, Field: "week", Rule: "week_range", Original: "9"}
	assert.Equal(t, "row 7: week violated week_range (9)", flagged.String())
}
