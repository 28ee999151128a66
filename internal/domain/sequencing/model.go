package sequencing

import "fmt"

// GermlineControl states whether a germline control was sequenced alongside
// the tumor sample.
type GermlineControl string

const (
	GermlineYes     GermlineControl = "YES"
	GermlineNo      GermlineControl = "NO"
	GermlineUnknown GermlineControl = "UNKNOWN"
)

func (g GermlineControl) Validate() error {
	switch g {
	case GermlineYes, GermlineNo, GermlineUnknown:
		return nil
	}
	return fmt.Errorf("invalid germline control %q", string(g))
}

// Record is the sequencing payload for create and update. Unset fields are
// omitted from the request. Type and Center reference the project's
// sequencing-type and sequencing-center catalogues; the Other variants carry
// free text when the catalogue entry is OTHER.
type Record struct {
	SampleUUID      *string          `json:"sampleUuid,omitempty"`
	SequencingID    *string          `json:"sequencingId,omitempty"`
	Type            *string          `json:"type,omitempty"`
	TypeOther       *string          `json:"typeOther,omitempty"`
	Center          *string          `json:"center,omitempty"`
	CenterOther     *string          `json:"centerOther,omitempty"`
	GermlineControl *GermlineControl `json:"germlineControl,omitempty"`
	Comments        *string          `json:"comments,omitempty"`
	Date            *string          `json:"date,omitempty"`
}

// Validate checks the closed vocabularies before any request is issued.
func (r *Record) Validate() error {
	if r.GermlineControl != nil {
		if err := r.GermlineControl.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Filter narrows GetAll results. Zero-valued fields are left out of the query.
type Filter struct {
	ProjectUUIDs []string
	PatientUUIDs []string
	SampleUUIDs  []string
	PatientID    string
}
