package synth

import (
	"errors"

	"github.com/apismoke/apismoke/internal/models"
	"github.com/apismoke/apismoke/internal/parser"
)

// OnEndpoint is invoked for each plan as it is produced, nil plans included
type OnEndpoint func(planned models.PlannedCheck)

// All synthesizes a request plan for every operation, in the order the
// operations appear in the document. Unsupported methods contribute an entry
// with a nil Endpoint so the output stays aligned with the document's
// declarations. Operations whose parameters cannot be resolved are skipped
// and their violations collected; a bad endpoint never aborts the listing.
func All(p *parser.Parser, ops []models.Operation, onEndpoint OnEndpoint) ([]models.PlannedCheck, []Violation, error) {
	planned := make([]models.PlannedCheck, 0, len(ops))
	var violations []Violation

	for _, op := range ops {
		details, err := p.GetOperationDetails(op.Path, op.Method)
		if err != nil {
			violations = append(violations, Violation{
				Path:    op.Path,
				Method:  op.Method,
				Message: err.Error(),
			})
			continue
		}

		endpoint, err := Synthesize(op.FullPath, details, op.Method)
		if err != nil {
			var synthErr *SynthesisError
			if errors.As(err, &synthErr) {
				violations = append(violations, synthErr.Violations...)
				continue
			}
			return nil, nil, err
		}

		entry := models.PlannedCheck{Operation: op, Endpoint: endpoint}
		planned = append(planned, entry)
		if onEndpoint != nil {
			onEndpoint(entry)
		}
	}

	return planned, violations, nil
}
