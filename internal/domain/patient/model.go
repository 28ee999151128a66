package patient

import "fmt"

// Gender is the patient gender vocabulary accepted by the API.
type Gender string

const (
	GenderMale             Gender = "MALE"
	GenderFemale           Gender = "FEMALE"
	GenderUndifferentiated Gender = "UNDIFFERENTIATED"
	GenderUnknown          Gender = "UNKNOWN"
)

func (g Gender) Validate() error {
	switch g {
	case GenderMale, GenderFemale, GenderUndifferentiated, GenderUnknown:
		return nil
	}
	return fmt.Errorf("invalid gender %q", string(g))
}

// SmokingStatus is the smoking history vocabulary.
type SmokingStatus string

const (
	SmokingCurrent SmokingStatus = "CURRENT"
	SmokingPast    SmokingStatus = "PAST"
	SmokingNever   SmokingStatus = "NEVER"
	SmokingUnknown SmokingStatus = "UNKNOWN"
)

func (s SmokingStatus) Validate() error {
	switch s {
	case SmokingCurrent, SmokingPast, SmokingNever, SmokingUnknown:
		return nil
	}
	return fmt.Errorf("invalid smoking status %q", string(s))
}

// VitalStatus is the patient vital status vocabulary.
type VitalStatus string

const (
	VitalAlive   VitalStatus = "ALIVE"
	VitalDead    VitalStatus = "DEAD"
	VitalUnknown VitalStatus = "UNKNOWN"
)

func (v VitalStatus) Validate() error {
	switch v {
	case VitalAlive, VitalDead, VitalUnknown:
		return nil
	}
	return fmt.Errorf("invalid vital status %q", string(v))
}

// PerformanceStatus is the ECOG-style performance vocabulary.
type PerformanceStatus string

const (
	PerformanceNormal     PerformanceStatus = "NORMAL"
	PerformanceRestricted PerformanceStatus = "RESTRICTED"
	PerformanceSelfCare   PerformanceStatus = "SELF_CARE"
	PerformanceAmbulatory PerformanceStatus = "AMBULATORY"
	PerformanceDisabled   PerformanceStatus = "DISABLED"
)

func (p PerformanceStatus) Validate() error {
	switch p {
	case PerformanceNormal, PerformanceRestricted, PerformanceSelfCare, PerformanceAmbulatory, PerformanceDisabled:
		return nil
	}
	return fmt.Errorf("invalid performance status %q", string(p))
}

// Comorbidity records a concurrent pathology.
type Comorbidity struct {
	PathologyCode *string `json:"pathologyCode,omitempty"`
	DiagnosisDate *string `json:"diagnosisDate,omitempty"`
	EndDate       *string `json:"endDate,omitempty"`
}

// Treatment records one line of oncological treatment.
type Treatment struct {
	TreatmentID    *string `json:"treatmentId,omitempty"`
	Name           *string `json:"name,omitempty"`
	Type           *string `json:"type,omitempty"`
	TypeOther      *string `json:"typeOther,omitempty"`
	StartDate      *string `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
	Code           *string `json:"code,omitempty"`
	LineNumber     *int    `json:"lineNumber,omitempty"`
	Comments       *string `json:"comments,omitempty"`
	ResponseStatus *string `json:"responseStatus,omitempty"`
}

// GermlineAlteration names a known germline alteration.
type GermlineAlteration struct {
	Name *string `json:"name,omitempty"`
}

// MolecularAnalysis names a non-CGI molecular analysis performed on the patient.
type MolecularAnalysis struct {
	Name      *string `json:"name,omitempty"`
	NameOther *string `json:"nameOther,omitempty"`
}

// FamilyCancer records a cancer occurrence in the patient's family.
type FamilyCancer struct {
	TopographyCode *string `json:"topographyCode,omitempty"`
	Parentage      *string `json:"parentage,omitempty"`
}

// Record is the patient payload for create and update. All fields are
// optional; unset fields are omitted from the request entirely.
type Record struct {
	PatientID              *string              `json:"patientId,omitempty"`
	BirthDate              *string              `json:"birthDate,omitempty"`
	Gender                 *Gender              `json:"gender,omitempty"`
	DiagnosisAge           *int                 `json:"diagnosisAge,omitempty"`
	DiagnosisDate          *string              `json:"diagnosisDate,omitempty"`
	Hospital               *string              `json:"hospital,omitempty"`
	SmokingStatus          *SmokingStatus       `json:"smokingStatus,omitempty"`
	Comments               *string              `json:"comments,omitempty"`
	VitalStatus            *VitalStatus         `json:"vitalStatus,omitempty"`
	PerformanceStatus      *PerformanceStatus   `json:"performanceStatus,omitempty"`
	LastFollowUpDate       *string              `json:"lastFollowUpDate,omitempty"`
	Comorbidities          []Comorbidity        `json:"comorbidities,omitempty"`
	Treatments             []Treatment          `json:"treatments,omitempty"`
	GermlineAlterations    []GermlineAlteration `json:"germlineAlterations,omitempty"`
	OtherMolecularAnalysis []MolecularAnalysis  `json:"otherMolecularAnalysis,omitempty"`
	FamilyCancers          []FamilyCancer       `json:"familyCancers,omitempty"`
}

// Validate checks the closed vocabularies before any request is issued.
func (r *Record) Validate() error {
	if r.Gender != nil {
		if err := r.Gender.Validate(); err != nil {
			return err
		}
	}
	if r.SmokingStatus != nil {
		if err := r.SmokingStatus.Validate(); err != nil {
			return err
		}
	}
	if r.VitalStatus != nil {
		if err := r.VitalStatus.Validate(); err != nil {
			return err
		}
	}
	if r.PerformanceStatus != nil {
		if err := r.PerformanceStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Filter narrows GetAll results. Zero-valued fields are left out of the query.
type Filter struct {
	ProjectUUID               string
	PatientID                 string
	Gender                    Gender
	DiagnosisDateEquals       string
	LastCGIAnalysisDateEquals string
	BirthDateBefore           string
	BirthDateAfter            string
}
