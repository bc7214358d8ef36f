package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/lshigami/Surveyor/internal/apperror"
	"github.com/lshigami/Surveyor/internal/repository"
	"github.com/rs/zerolog/log"
)

// CSVExport is a rendered export ready to be sent as an attachment.
type CSVExport struct {
	Filename string
	Data     []byte
}

type ExportService interface {
	ExportCSV(ctx context.Context, ownerID, surveyID string) (*CSVExport, error)
}

type exportService struct {
	responseRepo repository.ResponseRepository
	access       AccessService
}

func NewExportService(responseRepo repository.ResponseRepository, access AccessService) ExportService {
	return &exportService{responseRepo: responseRepo, access: access}
}

// ExportCSV writes one row per response, oldest first, with a column per
// question in display order. Unanswered questions leave an empty cell.
func (s *exportService) ExportCSV(ctx context.Context, ownerID, surveyID string) (*CSVExport, error) {
	survey, err := s.access.OwnedSurvey(ctx, ownerID, surveyID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindBySurveyID(ctx, surveyID)
	if err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("ExportCSV: failed to load responses")
		return nil, storeError(err, "response")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(survey.Questions)+2)
	header = append(header, "Response ID", "Submitted At")
	for _, q := range survey.Questions {
		header = append(header, q.Text)
	}
	if err := w.Write(header); err != nil {
		return nil, apperror.Internal(err)
	}

	for _, r := range responses {
		values := make(map[string]string, len(r.Answers))
		for _, a := range r.Answers {
			values[a.QuestionID] = a.Value
		}
		row := make([]string, 0, len(header))
		row = append(row, r.ID, r.CreatedAt.UTC().Format(time.RFC3339))
		for _, q := range survey.Questions {
			row = append(row, values[q.ID])
		}
		if err := w.Write(row); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error().Err(err).Str("surveyID", surveyID).Msg("ExportCSV: failed to write csv")
		return nil, apperror.Internal(err)
	}

	return &CSVExport{
		Filename: "survey-" + survey.ID + "-responses.csv",
		Data:     buf.Bytes(),
	}, nil
}
