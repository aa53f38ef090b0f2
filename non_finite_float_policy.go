package tmplog

// NonFiniteFloatPolicy controls how JSON entries serialize NaN, +Inf and -Inf,
// which JSON numbers cannot represent.
type NonFiniteFloatPolicy uint8

const (
	// NonFiniteFloatAsString emits non-finite floats as the JSON strings
	// "NaN", "+Inf" and "-Inf". This is the default.
	NonFiniteFloatAsString NonFiniteFloatPolicy = iota
	// NonFiniteFloatAsNull emits non-finite floats as JSON null.
	NonFiniteFloatAsNull
)

func normalizeNonFiniteFloatPolicy(policy NonFiniteFloatPolicy) NonFiniteFloatPolicy {
	switch policy {
	case NonFiniteFloatAsNull:
		return policy
	default:
		return NonFiniteFloatAsString
	}
}
