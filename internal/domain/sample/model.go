package sample

import "fmt"

// Source is the sample source vocabulary accepted by the API.
type Source string

const (
	SourceFrozenSpecimen      Source = "FROZEN_SPECIMEN"
	SourceFFPE                Source = "PARAFFIN_EMBEDDED_TISSUE_FFPE"
	SourceCirculatingTumorDNA Source = "CIRCULATING_TUMOR_DERIVED_DNA"
	SourceBlood               Source = "BLOOD"
	SourcePlasma              Source = "PLASMA"
	SourceProtein             Source = "PROTEIN"
	SourceRNA                 Source = "RNA"
	SourceDNA                 Source = "DNA"
	SourcePBMC                Source = "PERIPHERAL_BLOOD_MONONUCLEAR_CELL"
	SourceTumorCellLine       Source = "TUMOR_CELL_LINE"
	SourceUrine               Source = "URINE"
	SourceSaliva              Source = "SALIVA"
	SourceSerum               Source = "SERUM"
	SourceXenograft           Source = "XENOGRAFT"
	SourceUnknown             Source = "UNKNOWN"
)

func (s Source) Validate() error {
	switch s {
	case SourceFrozenSpecimen, SourceFFPE, SourceCirculatingTumorDNA, SourceBlood,
		SourcePlasma, SourceProtein, SourceRNA, SourceDNA, SourcePBMC,
		SourceTumorCellLine, SourceUrine, SourceSaliva, SourceSerum,
		SourceXenograft, SourceUnknown:
		return nil
	}
	return fmt.Errorf("invalid sample source %q", string(s))
}

// Type is the sample type vocabulary.
type Type string

const (
	TypeNeoplasm       Type = "NEOPLASM"
	TypeMetastatic     Type = "METASTATIC"
	TypeRecurrentTumor Type = "RECURRENT_TUMOR"
	TypePrimaryTumor   Type = "PRIMARY_TUMOR"
	TypeUnknown        Type = "UNKNOWN"
)

func (t Type) Validate() error {
	switch t {
	case TypeNeoplasm, TypeMetastatic, TypeRecurrentTumor, TypePrimaryTumor, TypeUnknown:
		return nil
	}
	return fmt.Errorf("invalid sample type %q", string(t))
}

// Biomarker records a measured biomarker on the sample.
type Biomarker struct {
	Code      *string `json:"code,omitempty"`
	CodeOther *string `json:"codeOther,omitempty"`
	Value     *string `json:"value,omitempty"`
	Unit      *string `json:"unit,omitempty"`
}

// Record is the sample payload for create and update. Unset fields are
// omitted from the request.
type Record struct {
	PatientUUID          *string     `json:"patientUuid,omitempty"`
	SampleID             *string     `json:"sampleId,omitempty"`
	Source               *Source     `json:"source,omitempty"`
	TumorType            *string     `json:"tumorType,omitempty"`
	TumorSubType         *string     `json:"tumorSubType,omitempty"`
	Purity               *float64    `json:"purity,omitempty"`
	Type                 *Type       `json:"type,omitempty"`
	MetastaticSite       *string     `json:"metastaticSite,omitempty"`
	AgeAtSampling        *int        `json:"ageAtSampling,omitempty"`
	InformedConsentNotes *string     `json:"informedConsentNotes,omitempty"`
	ShareForResearch     *bool       `json:"shareForResearch,omitempty"`
	Date                 *string     `json:"date,omitempty"`
	Biomarkers           []Biomarker `json:"biomarkers,omitempty"`
}

// Validate checks the closed vocabularies before any request is issued.
func (r *Record) Validate() error {
	if r.Source != nil {
		if err := r.Source.Validate(); err != nil {
			return err
		}
	}
	if r.Type != nil {
		if err := r.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}
