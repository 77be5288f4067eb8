package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Line
	}{
		{
			name: "marked source",
			raw:  "Chicken Breast 2 [marked]",
			expected: Line{
				Name:     "Chicken Breast",
				Quantity: 2,
				Source:   SourceReserved,
			},
		},
		{
			name: "non-marked source",
			raw:  "Rice 1 [non-marked]",
			expected: Line{
				Name:     "Rice",
				Quantity: 1,
				Source:   SourceUnreserved,
			},
		},
		{
			name: "missing marker defaults to marked",
			raw:  "Eggs 3",
			expected: Line{
				Name:            "Eggs",
				Quantity:        3,
				Source:          SourceReserved,
				SourceDefaulted: true,
			},
		},
		{
			name: "quantity with unit suffix",
			raw:  "Milk 500ml [non-marked]",
			expected: Line{
				Name:     "Milk",
				Quantity: 500,
				Unit:     "ml",
				Source:   SourceUnreserved,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ParseLine(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, line)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected error
	}{
		{"empty", "", ErrEmptyLine},
		{"whitespace only", "   ", ErrEmptyLine},
		{"no quantity", "Chicken Breast [marked]", ErrMissingQuantity},
		{"name only", "Chicken", ErrMissingQuantity},
		{"zero quantity", "Rice 0 [marked]", ErrInvalidQuantity},
		{"unknown marker", "Rice 2 [frozen]", ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.raw)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseList(t *testing.T) {
	parsed := ParseList("Apple 2 [marked]\n\n   \nBanana [non-marked]\nRice 1")

	require.Len(t, parsed, 3)

	assert.Equal(t, 0, parsed[0].Index)
	require.NoError(t, parsed[0].Err)
	assert.Equal(t, "Apple", parsed[0].Line.Name)

	// Malformed lines stay in the result with their error and raw text.
	assert.Equal(t, 3, parsed[1].Index)
	assert.ErrorIs(t, parsed[1].Err, ErrMissingQuantity)
	assert.Equal(t, "Banana [non-marked]", parsed[1].Raw)

	assert.Equal(t, 4, parsed[2].Index)
	require.NoError(t, parsed[2].Err)
	assert.True(t, parsed[2].Line.SourceDefaulted)
}

func TestFormatLineRoundTrip(t *testing.T) {
	raw := "Chicken Breast 2kg [non-marked]"
	line, err := ParseLine(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, FormatLine(line))
}
