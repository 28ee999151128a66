package legacy

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Workflow composes the legacy client into the scripted end-to-end flow:
// create patient, sample and sequencing, upload the alteration files, start
// the analysis and collect the results.
type Workflow struct {
	client *Client
	logger zerolog.Logger
}

// NewWorkflow creates a Workflow around an existing client.
func NewWorkflow(client *Client, logger zerolog.Logger) *Workflow {
	return &Workflow{client: client, logger: logger}
}

// UploadFiles requests a signed ticket per file, uploads each one and returns
// the stored file ids in input order.
func (w *Workflow) UploadFiles(ctx context.Context, projectID, patientID, sampleID, sequencingID string, filePaths []string) ([]string, error) {
	fileIDs := make([]string, 0, len(filePaths))
	for _, path := range filePaths {
		ticket, err := w.client.RequestUpload(ctx, projectID, patientID, sampleID, sequencingID, filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("request upload for %s: %w", path, err)
		}
		w.logger.Debug().Str("file", path).Str("file_id", ticket.FileID).Msg("upload ticket issued")
		if err := w.client.UploadFile(ctx, ticket.UploadURL, path); err != nil {
			return nil, fmt.Errorf("upload %s: %w", path, err)
		}
		fileIDs = append(fileIDs, ticket.FileID)
	}
	return fileIDs, nil
}

// CreateAnalysis uploads the files and starts an analysis over them,
// returning the analysis id.
func (w *Workflow) CreateAnalysis(ctx context.Context, projectID, patientID, sampleID, sequencingID, title string, reference GenomeReference, filePaths []string) (string, error) {
	fileIDs, err := w.UploadFiles(ctx, projectID, patientID, sampleID, sequencingID, filePaths)
	if err != nil {
		return "", err
	}
	analysisID, err := w.client.StartAnalysis(ctx, projectID, patientID, sampleID, sequencingID, title, reference, fileIDs)
	if err != nil {
		return "", err
	}
	w.logger.Info().Str("analysis_id", analysisID).Msg("analysis started")
	return analysisID, nil
}

// WaitForAnalysis polls the analysis status at the given interval until it
// leaves the waiting state or the context is cancelled. It returns the final
// status.
func (w *Workflow) WaitForAnalysis(ctx context.Context, projectID, analysisID string, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, done, err := w.client.AnalysisStatus(ctx, projectID, analysisID)
		if err != nil {
			return "", err
		}
		if done {
			return status, nil
		}
		w.logger.Debug().Str("analysis_id", analysisID).Str("status", status).Msg("analysis still running")
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// Run executes the full scripted flow and returns the analysis id. Created
// resources are not rolled back when a later step fails; the error names the
// step that failed.
func (w *Workflow) Run(ctx context.Context, p RunParams) (string, error) {
	if _, err := w.client.GetProject(ctx, p.ProjectID); err != nil {
		return "", fmt.Errorf("check project %s: %w", p.ProjectID, err)
	}

	patientID, err := w.client.CreatePatient(ctx, p.ProjectID, p.PatientKey)
	if err != nil {
		return "", fmt.Errorf("create patient: %w", err)
	}
	w.logger.Info().Str("patient_id", patientID).Msg("patient created")

	sampleID, err := w.client.CreateSample(ctx, p.ProjectID, patientID, p.SampleKey, p.SampleSource, p.CancerType)
	if err != nil {
		return "", fmt.Errorf("create sample: %w", err)
	}
	w.logger.Info().Str("sample_id", sampleID).Msg("sample created")

	sequencingID, err := w.client.CreateSequencing(ctx, p.ProjectID, patientID, sampleID, p.SequencingKey, p.SequencingType, p.CallingGermline)
	if err != nil {
		return "", fmt.Errorf("create sequencing: %w", err)
	}
	w.logger.Info().Str("sequencing_id", sequencingID).Msg("sequencing created")

	return w.CreateAnalysis(ctx, p.ProjectID, patientID, sampleID, sequencingID, p.Title, p.GenomeReference, p.AlterationFiles)
}

// RunParams holds everything the scripted flow needs.
type RunParams struct {
	ProjectID       string
	PatientKey      string
	SampleKey       string
	SequencingKey   string
	SampleSource    SampleSource
	SequencingType  SequencingType
	CallingGermline MutCallGermline
	CancerType      string
	GenomeReference GenomeReference
	Title           string
	AlterationFiles []string
}
