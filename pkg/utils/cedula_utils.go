package utils

// ValidateCedula validates an Ecuadorian cedula using the weighted mod-10
// checksum over the first nine digits. The input must be exactly ten
// digits; anything else fails before the checksum runs.
func ValidateCedula(cedula string) bool {
	if len(cedula) != 10 {
		return false
	}

	digits := make([]int, 10)
	for i, r := range cedula {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	sum := 0
	for i := 0; i < 9; i++ {
		product := digits[i]
		if i%2 == 0 {
			product *= 2
		}
		if product >= 10 {
			product = product/10 + product%10
		}
		sum += product
	}

	check := (10 - sum%10) % 10
	return digits[9] == check
}
