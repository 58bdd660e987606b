package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical", input: "ABCD1234EFGH5678", want: "ABCD1234EFGH5678"},
		{name: "lowercase", input: "abcd1234efgh5678", want: "ABCD1234EFGH5678"},
		{name: "formatted with dashes", input: "ABCD-1234-EFGH-5678", want: "ABCD1234EFGH5678"},
		{name: "formatted with spaces", input: "ABCD 1234 EFGH 5678", want: "ABCD1234EFGH5678"},
		{name: "mixed separators", input: "abcd-1234 efgh-5678", want: "ABCD1234EFGH5678"},
		{name: "too short", input: "ABCD1234", wantErr: true},
		{name: "too long", input: "ABCD1234EFGH5678XX", wantErr: true},
		{name: "invalid character", input: "ABCD1234EFGH567!", wantErr: true},
		{name: "cyrillic", input: "АБВГ1234EFGH5678", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "ABCD-1234-EFGH-5678", FormatCode("ABCD1234EFGH5678"))

	// Некорректная длина возвращается как есть, без паники
	assert.Equal(t, "SHORT", FormatCode("SHORT"))
}

func TestNormalizeFormatRoundTrip(t *testing.T) {
	code := "WXYZ9876QRST4321"
	normalized, err := NormalizeCode(FormatCode(code))
	require.NoError(t, err)
	assert.Equal(t, code, normalized)
}
