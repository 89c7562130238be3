// Package wizard implements the process registration flow: a four-step draft
// held in memory per session, document staging against the object store, and
// the finish sequence that turns the draft into persisted records.
package wizard

import "navix-backend/internal/models"

// Steps of the registration flow.
const (
	StepDetails   = 1 // operation details
	StepDocuments = 2 // document upload
	StepEstimate  = 3 // financial estimate, read-only
	StepSummary   = 4 // summary / confirm
)

// Draft is the not-yet-persisted state of one wizard session. Only its
// derived records (process, documents, notification) are ever written.
type Draft struct {
	Type        string // "import" | "export"
	Product     string
	Origin      string
	Destination string
	NCMCode     string
	Advisory    string // cached advisory text, empty until requested
	Files       []models.StagedDocument

	step int
}

func NewDraft(operationType string) *Draft {
	return &Draft{
		Type: operationType,
		step: StepDetails,
	}
}

func (d *Draft) Step() int {
	return d.step
}

// Next advances one step, clamped at the summary step. There is no
// validation gate between steps: the flow is deliberately unblockable.
func (d *Draft) Next() int {
	if d.step < StepSummary {
		d.step++
	}
	return d.step
}

// Back retreats one step, clamped at the details step.
func (d *Draft) Back() int {
	if d.step > StepDetails {
		d.step--
	}
	return d.step
}

// replaceFile keeps at most one staged document per slot name: any existing
// entry for the slot is filtered out and the new one appended, so the last
// attachment wins.
func (d *Draft) replaceFile(doc models.StagedDocument) {
	files := make([]models.StagedDocument, 0, len(d.Files)+1)
	for _, f := range d.Files {
		if f.Name != doc.Name {
			files = append(files, f)
		}
	}
	d.Files = append(files, doc)
}
