package agreement

import (
	"fmt"
	"strconv"
	"strings"
)

const agreementNumberPrefix = "SA"

// FormatAgreementNumber renders sequence and year as SA-{seq:05d}-{year}.
func FormatAgreementNumber(seq int64, year int) string {
	return fmt.Sprintf("%s-%05d-%d", agreementNumberPrefix, seq, year)
}

// ParseAgreementSequence extracts the sequence component of an agreement number.
func ParseAgreementSequence(number string) (int64, error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != agreementNumberPrefix {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAgreementNumber, number)
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAgreementNumber, number)
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAgreementNumber, number)
	}
	return seq, nil
}

// AgreementNumberSequence is the counter name used for agreement numbers.
const AgreementNumberSequence = "agreement_number"
