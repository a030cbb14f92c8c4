package respond

// ResultKind is the outcome of one command in a batch.
type ResultKind int

const (
	Success ResultKind = iota
	Failure
	Invalid
)

func (r ResultKind) String() string {
	switch r {
	case Failure:
		return "error"
	case Invalid:
		return "invalid"
	}
	return "success"
}

// Result is one entry in the top-level "results" array. Successful and
// invalid results omit error_details, per §4.4.
type Result struct {
	Kind    ResultKind
	Message string
}

// Fields renders a single result entry's JSON shape.
func (r Result) Fields() map[string]interface{} {
	out := map[string]interface{}{"result": r.Kind.String()}
	if r.Kind == Failure {
		out["error_details"] = map[string]interface{}{"message": r.Message}
	}
	return out
}

// BuildResults renders the full results array.
func BuildResults(results []Result) []map[string]interface{} {
	out := make([]map[string]interface{}, len(results))
	for i, r := range results {
		out[i] = r.Fields()
	}
	return out
}
