package goods_receipt

import "github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"

const (
	// NumberPrefix for goods receipt numbers (GR0001, GR0002, ...).
	NumberPrefix = "GR"

	// NumberPadWidth is the zero-padded width of the numeric part.
	NumberPadWidth = 4

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Receipts are internal documents; gaps in numbering are acceptable.
	NumeratorStrategy = numerator.StrategyCached
)

// NumberConfig returns the numerator configuration for goods receipts.
func NumberConfig() numerator.Config {
	return numerator.CompactConfig(NumberPrefix, NumberPadWidth)
}
