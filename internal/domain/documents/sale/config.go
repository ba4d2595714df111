package sale

import "github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"

const (
	// NumberPrefix and NumberPadWidth shape sale numbers as BR0001.
	NumberPrefix   = "BR"
	NumberPadWidth = 4

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Sales are customer-facing accounting documents, so numbers must be
	// sequential without gaps.
	NumeratorStrategy = numerator.StrategyStrict
)

// NumberConfig returns the numerator configuration for sale documents.
func NumberConfig() numerator.Config {
	return numerator.CompactConfig(NumberPrefix, NumberPadWidth)
}
