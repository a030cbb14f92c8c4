package dispatch

import (
	"fmt"

	"github.com/jangwonpark74/spp/internal/request"
)

// parseErrorMessage renders a request.ParseError to the human-readable
// templates from SPEC_FULL.md §4.5 / §6.
func parseErrorMessage(pe *request.ParseError) string {
	switch pe.Code {
	case request.WrongFormat:
		return "Wrong message format"
	case request.UnknownCmd:
		return fmt.Sprintf("Unknown command(%s)", pe.Detail)
	case request.NoParam:
		return fmt.Sprintf("No or insufficient number of params (%s)", pe.Msg)
	case request.InvalidType:
		return fmt.Sprintf("Invalid value type (%s)", pe.Msg)
	case request.InvalidValue:
		return fmt.Sprintf("Invalid value (%s)", pe.Msg)
	default:
		return "Failed to parse with unexpected reason"
	}
}
