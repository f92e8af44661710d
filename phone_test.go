package pausa

import "testing"

func TestPhoneDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "formatted mobile number", in: "(11) 91234-5678", want: "11912345678"},
		{name: "formatted landline number", in: "(21) 3456-7890", want: "2134567890"},
		{name: "international prefix", in: "+55 11 91234-5678", want: "5511912345678"},
		{name: "digits only is preserved", in: "11912345678", want: "11912345678"},
		{name: "short input", in: "123", want: "123"},
		{name: "no digits", in: "fale comigo", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhoneDigits(tt.in); got != tt.want {
				t.Fatalf("PhoneDigits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhoneDigitsIdempotent(t *testing.T) {
	in := "(11) 91234-5678"
	once := PhoneDigits(in)
	twice := PhoneDigits(once)
	if once != twice {
		t.Fatalf("PhoneDigits is not idempotent: %q != %q", once, twice)
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   bool
	}{
		{name: "landline length", digits: "1134567890", want: true},
		{name: "mobile length", digits: "11912345678", want: true},
		{name: "one digit short", digits: "113456789", want: false},
		{name: "empty", digits: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPhone(tt.digits); got != tt.want {
				t.Fatalf("ValidPhone(%q) = %v, want %v", tt.digits, got, tt.want)
			}
		})
	}
}
