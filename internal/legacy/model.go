package legacy

import "fmt"

// SampleSource is the legacy sample source vocabulary.
type SampleSource string

const (
	SourceTissue  SampleSource = "tissue"
	SourceLiquid  SampleSource = "liquid"
	SourceUnknown SampleSource = "unknown"
)

func (s SampleSource) Validate() error {
	switch s {
	case SourceTissue, SourceLiquid, SourceUnknown:
		return nil
	}
	return fmt.Errorf("invalid sample source %q", string(s))
}

// MutCallGermline states whether mutation calling used a germline control.
type MutCallGermline string

const (
	CancerOnly      MutCallGermline = "cancer_only"
	CancerGermline  MutCallGermline = "cancer_germline"
	GermlineUnknown MutCallGermline = "unknown"
)

func (m MutCallGermline) Validate() error {
	switch m {
	case CancerOnly, CancerGermline, GermlineUnknown:
		return nil
	}
	return fmt.Errorf("invalid germline calling mode %q", string(m))
}

// GenomeReference is the legacy reference genome vocabulary.
type GenomeReference string

const (
	HG19 GenomeReference = "hg19"
	HG38 GenomeReference = "hg38"
)

func (g GenomeReference) Validate() error {
	switch g {
	case HG19, HG38:
		return nil
	}
	return fmt.Errorf("invalid genome reference %q", string(g))
}

// SequencingType is the legacy sequencing type catalogue.
type SequencingType string

const (
	Panel14Gene             SequencingType = "panel_14gene"
	Panel24Gene             SequencingType = "panel_24gene"
	Panel32GeneHematology   SequencingType = "panel_32gene_hematology"
	Panel161GenePathology   SequencingType = "panel_161gene_pathology"
	AgilentKinderonko       SequencingType = "agilent_kinderonko"
	AgilentLymphom          SequencingType = "agilent_lymphom"
	AmpliconTargetedPanel   SequencingType = "amplicon_targeted_panel"
	ArcherCTLCustom         SequencingType = "archer_ctl_custom"
	ArcherKinderonko        SequencingType = "archer_kinderonko"
	ArcherLung              SequencingType = "archer_lung"
	ArcherSarcoma           SequencingType = "archer_sarcoma"
	ArcherSalivary          SequencingType = "archer_salivary"
	Avenio                  SequencingType = "avenio"
	CustomPanel             SequencingType = "custom_panel"
	GenOncologyDx           SequencingType = "genoncologydx"
	HRD                     SequencingType = "hrd"
	Guardant360             SequencingType = "guardant360"
	NGSBRCA                 SequencingType = "ngs_brca"
	NGSKRASNRAS             SequencingType = "ngs_kras_nras"
	NGSMel                  SequencingType = "ngs_mel"
	NGSPros                 SequencingType = "ngs_pros"
	NGSProsATM              SequencingType = "ngs_pros_atm"
	NNGM2                   SequencingType = "nngm_2"
	OCA                     SequencingType = "oca"
	OFA                     SequencingType = "ofa"
	OPA                     SequencingType = "opa"
	ProfilerV5              SequencingType = "profiler_v5"
	SophiaGeneticsSTSCustom SequencingType = "sophiagenetics_sts_custom"
	SophiaGeneticsGREATv3   SequencingType = "sophiagenetics_great_v3_custom"
	TSO500                  SequencingType = "tso500"
	VHIO300                 SequencingType = "vhio300"
	WES                     SequencingType = "wes"
	WGS                     SequencingType = "wgs"
	TypeUnknown             SequencingType = "unknown"
	TypeOther               SequencingType = "other"
)

var sequencingTypes = map[SequencingType]struct{}{
	Panel14Gene: {}, Panel24Gene: {}, Panel32GeneHematology: {}, Panel161GenePathology: {},
	AgilentKinderonko: {}, AgilentLymphom: {}, AmpliconTargetedPanel: {}, ArcherCTLCustom: {},
	ArcherKinderonko: {}, ArcherLung: {}, ArcherSarcoma: {}, ArcherSalivary: {}, Avenio: {},
	CustomPanel: {}, GenOncologyDx: {}, HRD: {}, Guardant360: {}, NGSBRCA: {}, NGSKRASNRAS: {},
	NGSMel: {}, NGSPros: {}, NGSProsATM: {}, NNGM2: {}, OCA: {}, OFA: {}, OPA: {}, ProfilerV5: {},
	SophiaGeneticsSTSCustom: {}, SophiaGeneticsGREATv3: {}, TSO500: {}, VHIO300: {}, WES: {},
	WGS: {}, TypeUnknown: {}, TypeOther: {},
}

func (s SequencingType) Validate() error {
	if _, ok := sequencingTypes[s]; ok {
		return nil
	}
	return fmt.Errorf("invalid sequencing type %q", string(s))
}

// UploadTicket is a signed upload issued by the API. The URL may be relative
// to the API root and is only valid for a limited time.
type UploadTicket struct {
	FileID    string `json:"file_id"`
	UploadURL string `json:"upload_url"`
}

// ResultFile is one downloadable analysis result.
type ResultFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnalysisStatusWaiting is the status an analysis holds until it finishes.
const AnalysisStatusWaiting = "waiting"
