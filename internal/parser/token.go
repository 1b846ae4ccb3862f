package parser

// IsContentStreamOperator checks if a string is a PDF content stream operator.
// These are operators used in content streams for graphics and text operations.
//
// Reference: PDF 1.7 specification, Appendix A (Operator Summary).
func IsContentStreamOperator(s string) bool {
	switch s {
	// Text object operators (Section 9.4)
	case "BT", "ET":
		return true

	// Text state operators (Section 9.3)
	case "Tc", "Tw", "Tz", "TL", "Tf", "Tr", "Ts":
		return true

	// Text positioning operators (Section 9.4.2)
	case "Td", "TD", "Tm", "T*":
		return true

	// Text showing operators (Section 9.4.3)
	case "Tj", "TJ", "'", "\"":
		return true

	// Graphics state operators (Section 8.4.4)
	case "q", "Q", "cm", "w", "J", "j", "M", "d", "ri", "i", "gs":
		return true

	// Path construction operators (Section 8.5.2)
	case "m", "l", "c", "v", "y", "h", "re":
		return true

	// Path painting operators (Section 8.5.3)
	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
		return true

	// Clipping path operators (Section 8.5.4)
	case "W", "W*":
		return true

	// Color operators (Section 8.6)
	case "CS", "cs", "SC", "SCN", "sc", "scn", "G", "g", "RG", "rg", "K", "k":
		return true

	// Shading operators (Section 8.7.4.3)
	case "sh":
		return true

	// Inline image operators (Section 8.9.7)
	case "BI", "ID", "EI":
		return true

	// XObject operators (Section 8.8)
	case "Do":
		return true

	// Marked content operators (Section 14.6)
	case "MP", "DP", "BMC", "BDC", "EMC":
		return true

	// Compatibility operators (Section 9.9)
	case "BX", "EX":
		return true

	default:
		return false
	}
}
