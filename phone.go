package pausa

// MinPhoneDigits is the smallest digit count accepted for a Brazilian
// number: two-digit area code plus an eight-digit line.
const MinPhoneDigits = 10

// PhoneDigits extracts the decimal digits of a free-form phone string,
// preserving their order. "(11) 91234-5678" becomes "11912345678".
func PhoneDigits(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	return string(digits)
}

// ValidPhone reports whether an already-normalized digit string is long
// enough to be dialable.
func ValidPhone(digits string) bool {
	return len(digits) >= MinPhoneDigits
}
