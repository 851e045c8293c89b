package domain

// ValidateInputDenoms returns nil if two denoms are valid, otherwise an error.
// This is to be used as a parameter validation for market configs.
// The base denom must not equal the quote denom.
func ValidateInputDenoms(denomA, denomB string) error {
	if denomA == denomB {
		return SameDenomError{
			DenomA: denomA,
			DenomB: denomB,
		}
	}

	return nil
}
