package record

import "fmt"

// ParseImpact validates a milestone impact value. Invalid values are
// rejected, never coerced.
func ParseImpact(s string) (Impact, error) {
	switch Impact(s) {
	case ImpactMinor, ImpactMajor, ImpactCritical:
		return Impact(s), nil
	}
	return "", fmt.Errorf("invalid impact %q (want minor, major or critical)", s)
}

// ParseDecisionCategory validates a decision category value.
func ParseDecisionCategory(s string) (DecisionCategory, error) {
	switch DecisionCategory(s) {
	case DecArchitecture, DecBugFix, DecOptimization, DecHandoff, DecConfig, DecGeneral:
		return DecisionCategory(s), nil
	}
	return "", fmt.Errorf("invalid decision category %q", s)
}

// ParseErrorType validates an error type value.
func ParseErrorType(s string) (ErrorType, error) {
	switch ErrorType(s) {
	case ErrDependency, ErrSyntax, ErrBuild, ErrNetwork, ErrPermission, ErrRuntime:
		return ErrorType(s), nil
	}
	return "", fmt.Errorf("invalid error type %q", s)
}
