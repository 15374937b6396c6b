package auth

// checksumLetters is the fixed table for the national-identifier check
// letter; the letter at index (number mod 23) must match the 9th character.
const checksumLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// ValidIdentifier reports whether id is a well-formed 9-character national
// identifier: 8 ASCII digits followed by the matching checksum letter
// (case-insensitive). Pure function, no I/O.
func ValidIdentifier(id string) bool {
	if len(id) != 9 {
		return false
	}
	number := 0
	for i := 0; i < 8; i++ {
		ch := id[i]
		if ch < '0' || ch > '9' {
			return false
		}
		number = number*10 + int(ch-'0')
	}
	letter := id[8]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return letter == checksumLetters[number%len(checksumLetters)]
}
