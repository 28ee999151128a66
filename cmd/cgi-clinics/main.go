// Command cgi-clinics is the command-line interface to the CGI-Clinics API.
// It covers the current (v2) API for projects, patients and analyses, and the
// legacy API for the scripted end-to-end analysis flow.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cgi-clinics/cgiclinics-go/internal/config"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/analysis"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/patient"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/project"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sample"
	"github.com/cgi-clinics/cgiclinics-go/internal/domain/sequencing"
	"github.com/cgi-clinics/cgiclinics-go/internal/legacy"
	"github.com/cgi-clinics/cgiclinics-go/internal/platform/rest"
	"github.com/cgi-clinics/cgiclinics-go/pkg/pagination"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cgi-clinics",
		Short: "CGI-Clinics API client",
		Long:  "Client for the CGI-Clinics cancer genome interpretation platform.",
	}

	rootCmd.AddCommand(newAnalysisCmd())
	rootCmd.AddCommand(directAnalysisCmd())
	rootCmd.AddCommand(downloadResultsCmd())
	rootCmd.AddCommand(legacyAnalysisCmd())
	rootCmd.AddCommand(projectsCmd())
	rootCmd.AddCommand(patientsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}

// apiClient loads configuration, resolves the v2 token and builds the shared
// REST client.
func apiClient() (*rest.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	token, err := cfg.ResolveAPIToken()
	if err != nil {
		return nil, nil, err
	}
	rc := rest.NewClient(cfg.BaseURL, token,
		rest.WithTimeout(cfg.Timeout()),
		rest.WithLogger(newLogger(cfg)))
	return rc, cfg, nil
}

func legacyClient() (*legacy.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	credential, err := cfg.LegacyCredential()
	if err != nil {
		return nil, nil, err
	}
	lc := legacy.New(cfg.LegacyURL, credential, rest.WithTimeout(cfg.Timeout()))
	return lc, cfg, nil
}

func printJSON(data json.RawMessage) {
	var buf any
	if err := json.Unmarshal(data, &buf); err != nil {
		fmt.Println(string(data))
		return
	}
	out, _ := json.MarshalIndent(buf, "", "  ")
	fmt.Println(string(out))
}

func newAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-analysis",
		Short: "Start an analysis on an existing sequencing",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			projectUUID, _ := cmd.Flags().GetString("project-uuid")
			analysisID, _ := cmd.Flags().GetString("analysis-id")
			genome, _ := cmd.Flags().GetString("genome-reference")
			inputs, _ := cmd.Flags().GetStringArray("input")
			inputText, _ := cmd.Flags().GetString("input-text")
			inputFormat, _ := cmd.Flags().GetString("input-format")

			data, err := analysis.New(rc).Create(cmd.Context(), projectUUID, analysis.CreateRequest{
				AnalysisID:      analysisID,
				ReferenceGenome: analysis.ReferenceGenome(genome),
				InputFiles:      inputs,
				InputText:       inputText,
				InputFormat:     inputFormat,
			})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
	cmd.Flags().String("project-uuid", "", "Project UUID")
	cmd.Flags().String("analysis-id", "", "Analysis identifier")
	cmd.Flags().String("genome-reference", string(analysis.HG38), "Reference genome (HG19 or HG38)")
	cmd.Flags().StringArray("input", nil, "Input file path (repeatable)")
	cmd.Flags().String("input-text", "", "Inline input instead of files")
	cmd.Flags().String("input-format", "", "Format of the inline input")
	cmd.MarkFlagRequired("project-uuid")
	cmd.MarkFlagRequired("analysis-id")
	return cmd
}

func directAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "direct-analysis",
		Short: "Create patient, sample and sequencing, and start an analysis in one call",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			get := func(name string) string {
				v, _ := cmd.Flags().GetString(name)
				return v
			}
			inputs, _ := cmd.Flags().GetStringArray("input")

			data, err := analysis.New(rc).CreateDirect(cmd.Context(), get("project-uuid"), analysis.DirectRequest{
				PatientID:                 get("patient-id"),
				SampleID:                  get("sample-id"),
				SequencingID:              get("sequencing-id"),
				AnalysisID:                get("analysis-id"),
				SampleSource:              sample.Source(get("sample-source")),
				TumorType:                 get("tumor-type"),
				SequencingType:            get("sequencing-type"),
				SequencingTypeOther:       get("sequencing-type-other"),
				ReferenceGenome:           analysis.ReferenceGenome(get("genome-reference")),
				SequencingGermlineControl: sequencing.GermlineControl(get("germline-control")),
				InputFiles:                inputs,
				InputText:                 get("input-text"),
				InputFormat:               get("input-format"),
			})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
	cmd.Flags().String("project-uuid", "", "Project UUID")
	cmd.Flags().String("patient-id", "", "Patient identifier")
	cmd.Flags().String("sample-id", "", "Sample identifier")
	cmd.Flags().String("sequencing-id", "", "Sequencing identifier")
	cmd.Flags().String("analysis-id", "", "Analysis identifier")
	cmd.Flags().String("sample-source", string(sample.SourceUnknown), "Sample source")
	cmd.Flags().String("tumor-type", "", "Tumor type")
	cmd.Flags().String("sequencing-type", "", "Sequencing type")
	cmd.Flags().String("sequencing-type-other", "", "Free-text sequencing type when the catalogue entry is OTHER")
	cmd.Flags().String("genome-reference", string(analysis.HG38), "Reference genome (HG19 or HG38)")
	cmd.Flags().String("germline-control", "UNKNOWN", "Whether a germline control was sequenced (YES, NO, UNKNOWN)")
	cmd.Flags().StringArray("input", nil, "Input file path (repeatable)")
	cmd.Flags().String("input-text", "", "Inline input instead of files")
	cmd.Flags().String("input-format", "", "Format of the inline input")
	cmd.MarkFlagRequired("project-uuid")
	cmd.MarkFlagRequired("analysis-id")
	return cmd
}

func downloadResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download-results",
		Short: "Download every result file of a finished analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			projectUUID, _ := cmd.Flags().GetString("project-uuid")
			analysisUUID, _ := cmd.Flags().GetString("analysis-uuid")
			outputDir, _ := cmd.Flags().GetString("output-dir")

			if err := analysis.New(rc).DownloadAllResults(cmd.Context(), projectUUID, analysisUUID, outputDir); err != nil {
				return err
			}
			fmt.Println("Results written to", outputDir)
			return nil
		},
	}
	cmd.Flags().String("project-uuid", "", "Project UUID")
	cmd.Flags().String("analysis-uuid", "", "Analysis UUID")
	cmd.Flags().String("output-dir", ".", "Directory for the result files")
	cmd.MarkFlagRequired("project-uuid")
	cmd.MarkFlagRequired("analysis-uuid")
	return cmd
}

func legacyAnalysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy-analysis",
		Short: "Run the legacy end-to-end flow: patient, sample, sequencing, upload, analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, cfg, err := legacyClient()
			if err != nil {
				return err
			}
			get := func(name string) string {
				v, _ := cmd.Flags().GetString(name)
				return v
			}
			alterations, _ := cmd.Flags().GetStringArray("alterations")
			wait, _ := cmd.Flags().GetBool("wait")

			wf := legacy.NewWorkflow(lc, newLogger(cfg))
			analysisID, err := wf.Run(cmd.Context(), legacy.RunParams{
				ProjectID:       get("project-id"),
				PatientKey:      get("patient-key"),
				SampleKey:       get("sample-key"),
				SequencingKey:   get("sequencing-key"),
				SampleSource:    legacy.SampleSource(get("sample-source")),
				SequencingType:  legacy.SequencingType(get("sequencing-type")),
				CallingGermline: legacy.MutCallGermline(get("calling-germline")),
				CancerType:      get("cancer-type"),
				GenomeReference: legacy.GenomeReference(get("genome-reference")),
				Title:           get("title"),
				AlterationFiles: alterations,
			})
			if err != nil {
				return err
			}
			fmt.Println("Analysis started:", analysisID)

			if wait {
				status, err := wf.WaitForAnalysis(cmd.Context(), get("project-id"), analysisID, 30*time.Second)
				if err != nil {
					return err
				}
				fmt.Println("Analysis finished with status:", status)
			}
			return nil
		},
	}
	cmd.Flags().String("project-id", "", "Project id")
	cmd.Flags().String("patient-key", "", "Key for the new patient")
	cmd.Flags().String("sample-key", "", "Key for the new sample")
	cmd.Flags().String("sequencing-key", "", "Key for the new sequencing")
	cmd.Flags().String("sample-source", string(legacy.SourceUnknown), "Sample source (tissue, liquid, unknown)")
	cmd.Flags().String("sequencing-type", string(legacy.TypeUnknown), "Sequencing type")
	cmd.Flags().String("calling-germline", string(legacy.GermlineUnknown), "Germline calling mode")
	cmd.Flags().String("cancer-type", "", "Cancer type")
	cmd.Flags().String("genome-reference", string(legacy.HG19), "Reference genome (hg19 or hg38)")
	cmd.Flags().String("title", "cgi-clinics analysis", "Analysis title")
	cmd.Flags().StringArray("alterations", nil, "Alteration file path (repeatable)")
	cmd.Flags().Bool("wait", false, "Poll until the analysis finishes")
	cmd.MarkFlagRequired("project-id")
	cmd.MarkFlagRequired("patient-key")
	return cmd
}

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			size, _ := cmd.Flags().GetInt("size")
			page, _ := cmd.Flags().GetInt("page")
			data, err := project.New(rc).List(cmd.Context(), pagination.Page{Size: size, Page: page})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
	listCmd.Flags().Int("size", pagination.DefaultSize, "Page size")
	listCmd.Flags().Int("page", 0, "Page number (zero-based)")

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			data, err := project.New(rc).Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd)
	return cmd
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Manage patients",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a patient under a fresh UUID",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			projectUUID, _ := cmd.Flags().GetString("project-uuid")
			patientID, _ := cmd.Flags().GetString("patient-id")
			genderFlag, _ := cmd.Flags().GetString("gender")

			rec := patient.Record{}
			if patientID != "" {
				rec.PatientID = &patientID
			}
			if genderFlag != "" {
				g := patient.Gender(genderFlag)
				rec.Gender = &g
			}

			data, err := patient.New(rc).Create(cmd.Context(), projectUUID, uuid.New().String(), rec)
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
	createCmd.Flags().String("project-uuid", "", "Project UUID")
	createCmd.Flags().String("patient-id", "", "Patient identifier")
	createCmd.Flags().String("gender", "", "Gender (MALE, FEMALE, UNDIFFERENTIATED, UNKNOWN)")
	createCmd.MarkFlagRequired("project-uuid")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, _, err := apiClient()
			if err != nil {
				return err
			}
			projectUUID, _ := cmd.Flags().GetString("project-uuid")
			size, _ := cmd.Flags().GetInt("size")
			page, _ := cmd.Flags().GetInt("page")
			data, err := patient.New(rc).List(cmd.Context(), projectUUID, pagination.Page{Size: size, Page: page})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
	listCmd.Flags().String("project-uuid", "", "Project UUID")
	listCmd.Flags().Int("size", pagination.DefaultSize, "Page size")
	listCmd.Flags().Int("page", 0, "Page number (zero-based)")
	listCmd.MarkFlagRequired("project-uuid")

	cmd.AddCommand(createCmd, listCmd)
	return cmd
}
