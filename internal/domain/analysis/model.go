package analysis

import (
	"errors"
	"fmt"

	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sample"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sequencing"
)

// Input validation errors. These are raised before any request is issued.
var (
	ErrNoInput           = errors.New("analysis needs input files or input text")
	ErrBothInputs        = errors.New("analysis accepts input files or input text, not both")
	ErrTextWithoutFormat = errors.New("input text requires an input format")
	ErrIncompleteSlot    = errors.New("upload slot is missing its uuid or code")
)

// ReferenceGenome is the reference genome vocabulary.
type ReferenceGenome string

const (
	HG19 ReferenceGenome = "HG19"
	HG38 ReferenceGenome = "HG38"
)

func (g ReferenceGenome) Validate() error {
	switch g {
	case HG19, HG38:
		return nil
	}
	return fmt.Errorf("invalid reference genome %q", string(g))
}

// UploadSlot is a temporal upload slot issued by the API. Both fields must be
// present before a file can be pushed to it.
type UploadSlot struct {
	UUID string `json:"uuid"`
	Code string `json:"code"`
}

// Validate checks that the slot can receive an upload.
func (s UploadSlot) Validate() error {
	if s.UUID == "" || s.Code == "" {
		return ErrIncompleteSlot
	}
	return nil
}

// CreateRequest starts an analysis on an existing sequencing. Exactly one of
// InputFiles (local paths, uploaded before the create call) or InputText must
// be provided; InputText requires InputFormat.
type CreateRequest struct {
	AnalysisID      string
	ReferenceGenome ReferenceGenome
	InputFiles      []string
	InputText       string
	InputFormat     string
}

func (r CreateRequest) validate() error {
	if err := r.ReferenceGenome.Validate(); err != nil {
		return err
	}
	return validateInput(r.InputFiles, r.InputText, r.InputFormat)
}

// DirectRequest starts an analysis and creates the patient, sample and
// sequencing it hangs off in one call. SampleSource and the germline control
// are closed vocabularies; SequencingType is free text referencing the
// project's sequencing-type catalogue.
type DirectRequest struct {
	PatientID                 string
	SampleID                  string
	SequencingID              string
	AnalysisID                string
	SampleSource              sample.Source
	TumorType                 string
	SequencingType            string
	SequencingTypeOther       string
	ReferenceGenome           ReferenceGenome
	SequencingGermlineControl sequencing.GermlineControl
	InputFiles                []string
	InputText                 string
	InputFormat               string
}

func (r DirectRequest) validate() error {
	if err := r.ReferenceGenome.Validate(); err != nil {
		return err
	}
	if err := r.SampleSource.Validate(); err != nil {
		return err
	}
	if err := r.SequencingGermlineControl.Validate(); err != nil {
		return err
	}
	return validateInput(r.InputFiles, r.InputText, r.InputFormat)
}

func validateInput(files []string, text, format string) error {
	switch {
	case len(files) == 0 && text == "":
		return ErrNoInput
	case len(files) > 0 && text != "":
		return ErrBothInputs
	case text != "" && format == "":
		return ErrTextWithoutFormat
	}
	return nil
}
