package domain

import (
	"strings"
	"unicode"
)

var phoneticLetters = map[rune]string{
	'a': "Alfa", 'b': "Bravo", 'c': "Charlie", 'd': "Delta", 'e': "Echo",
	'f': "Foxtrot", 'g': "Golf", 'h': "Hotel", 'i': "India", 'j': "Juliett",
	'k': "Kilo", 'l': "Lima", 'm': "Mike", 'n': "November", 'o': "Oscar",
	'p': "Papa", 'q': "Quebec", 'r': "Romeo", 's': "Sierra", 't': "Tango",
	'u': "Uniform", 'v': "Victor", 'w': "Whiskey", 'x': "Xray", 'y': "Yankee",
	'z': "Zulu",
}

var phoneticDigits = map[rune]string{
	'0': "Zero", '1': "One", '2': "Two", '3': "Three", '4': "Four",
	'5': "Five", '6': "Six", '7': "Seven", '8': "Eight", '9': "Nine",
}

// PhoneticSpelling converts text into NATO phonetic alphabet words. Words are
// separated with a pipe so multi-word input stays readable. Characters
// outside letters, digits and spaces are unsupported.
func PhoneticSpelling(text string) (string, error) {
	words := make([]string, 0, len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r):
			words = append(words, "|")
		case phoneticLetters[r] != "":
			words = append(words, phoneticLetters[r])
		case phoneticDigits[r] != "":
			words = append(words, phoneticDigits[r])
		default:
			return "", ErrUnsupportedText
		}
	}

	if len(words) == 0 {
		return "", ErrEmptyInput
	}

	return strings.Join(words, " "), nil
}
