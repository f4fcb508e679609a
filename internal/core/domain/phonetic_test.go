package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneticSpelling(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "single word",
			text:        "go",
			want:        "Golf Oscar",
		},
		{
			description: "mixed case",
			text:        "Ab",
			want:        "Alfa Bravo",
		},
		{
			description: "digits",
			text:        "a1",
			want:        "Alfa One",
		},
		{
			description: "space becomes separator",
			text:        "a b",
			want:        "Alfa | Bravo",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got, err := PhoneticSpelling(testCase.text)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestPhoneticSpellingUnsupported(t *testing.T) {
	_, err := PhoneticSpelling("naïve")

	require.ErrorIs(t, err, ErrUnsupportedText)
}

func TestPhoneticSpellingEmpty(t *testing.T) {
	_, err := PhoneticSpelling("")

	require.ErrorIs(t, err, ErrEmptyInput)
}
