package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tributo/internal/config"
	"tributo/internal/domain"
	"tributo/internal/f29"
	"tributo/internal/port"
	"tributo/internal/service"
	"tributo/mocks"
)

const declarationText = `FOLIO 555
RUT 76.123.456-7
PERIODO 202403
538 TOTAL DEBITOS 1.000.000
511 CREDITO IVA POR DOCUMENTOS ELECTRONICOS 400.000`

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "sa-east-1",
		Bucket:        "test-bucket",
		PresignExpiry: 900,
	}
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 declaration")
}

func newPipeline(text string, err error) (*f29.Pipeline, *mocks.MockTextExtractor) {
	ext := new(mocks.MockTextExtractor)
	if err != nil {
		ext.On("Extract", mock.Anything, mock.Anything).Return(nil, err)
	} else {
		ext.On("Extract", mock.Anything, mock.Anything).
			Return(&domain.ExtractedText{Text: text, Pages: 1, Method: domain.MethodDirectText}, nil)
	}
	return f29.NewPipeline(f29.NewLoader(0), ext, zerolog.Nop()), ext
}

func parseInput(persist bool) service.ParseInput {
	content := pdfContent()
	return service.ParseInput{
		Content:   content,
		MediaType: domain.MediaTypePDF,
		Size:      int64(len(content)),
		FileName:  "f29-marzo.pdf",
		Persist:   persist,
	}
}

func TestDeclarationService_Parse_NoPersist(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, nil, nil, &cfg, zerolog.Nop())

	res, err := svc.Parse(context.Background(), parseInput(false))

	require.NoError(t, err)
	require.True(t, res.Outcome.Success)
	assert.Equal(t, "76.123.456-7", res.Outcome.Snapshot.TaxpayerID)
	assert.Equal(t, 20, res.Outcome.Confidence)
	assert.Nil(t, res.Declaration)
	assert.False(t, svc.ArchiveEnabled())
}

func TestDeclarationService_Parse_PersistWithArchiveDisabled(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, nil, nil, &cfg, zerolog.Nop())

	res, err := svc.Parse(context.Background(), parseInput(true))

	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)
	assert.True(t, service.IsArchiveError(err))
	require.NotNil(t, res)
	assert.True(t, res.Outcome.Success)
}

func TestDeclarationService_Parse_FailedOutcomeIsNotArchived(t *testing.T) {
	pipeline, _ := newPipeline("", domain.ErrExtractionFailed)
	repo := new(mocks.MockDeclarationRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, repo, storage, &cfg, zerolog.Nop())

	res, err := svc.Parse(context.Background(), parseInput(true))

	require.NoError(t, err)
	assert.False(t, res.Outcome.Success)
	assert.Equal(t, domain.FailureExtractionFailed, res.Outcome.Error)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeclarationService_Parse_Archives(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	repo := new(mocks.MockDeclarationRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, repo, storage, &cfg, zerolog.Nop())

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" &&
			in.ContentType == domain.MediaTypePDF &&
			in.Metadata["rut"] == "76.123.456-7" &&
			bytes.HasPrefix([]byte(in.Key), []byte("declarations/76123456-7/202403/"))
	})).Return(&port.UploadOutput{Location: "s3://test-bucket/key"}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Declaration")).Return(nil)

	res, err := svc.Parse(context.Background(), parseInput(true))

	require.NoError(t, err)
	require.NotNil(t, res.Declaration)
	decl := res.Declaration
	assert.Equal(t, "202403", decl.Period)
	assert.Equal(t, "555", decl.FilingNumber)
	assert.Equal(t, domain.NotAvailable, decl.LegalName)
	assert.Equal(t, "f29-marzo.pdf", decl.OriginalName)
	assert.Equal(t, domain.DeclarationStatusActive, decl.Status)
	assert.Equal(t, int64(600000), decl.DeterminedTax)

	var codes map[string]int64
	require.NoError(t, json.Unmarshal(decl.Codes, &codes))
	assert.Len(t, codes, f29.CatalogueSize())
	assert.Equal(t, int64(1000000), codes["538"])
	assert.Equal(t, int64(0), codes["091"])

	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeclarationService_Parse_UploadFails(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	repo := new(mocks.MockDeclarationRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, repo, storage, &cfg, zerolog.Nop())

	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))

	res, err := svc.Parse(context.Background(), parseInput(true))

	assert.ErrorIs(t, err, domain.ErrArchiveFailed)
	assert.True(t, res.Outcome.Success)
	assert.Nil(t, res.Declaration)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeclarationService_Parse_InsertFailsRemovesObject(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	repo := new(mocks.MockDeclarationRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, repo, storage, &cfg, zerolog.Nop())

	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)

	res, err := svc.Parse(context.Background(), parseInput(true))

	assert.ErrorIs(t, err, domain.ErrArchiveFailed)
	assert.True(t, res.Outcome.Success)
	storage.AssertExpectations(t)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("3f1c2a7e-9b0d-4e5f-8a6b-1c2d3e4f5a6b")

	tests := []struct {
		name   string
		rut    string
		period string
		want   string
	}{
		{"dotted rut", "76.123.456-7", "202403", "declarations/76123456-7/202403/" + id.String() + ".pdf"},
		{"lowercase verifier", "9.876.543-k", "202311", "declarations/9876543-K/202311/" + id.String() + ".pdf"},
		{"missing fields", domain.NotAvailable, domain.NotAvailable, "declarations/unknown/unknown/" + id.String() + ".pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ObjectKey(tt.rut, tt.period, id))
		})
	}
}

func archivedService() (service.DeclarationService, *mocks.MockDeclarationRepo, *mocks.MockObjectStorage) {
	pipeline, _ := newPipeline(declarationText, nil)
	repo := new(mocks.MockDeclarationRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	return service.NewDeclarationService(pipeline, repo, storage, &cfg, zerolog.Nop()), repo, storage
}

func sampleDeclaration() *domain.Declaration {
	return &domain.Declaration{
		ID:            uuid.New(),
		TaxpayerID:    "76.123.456-7",
		Period:        "202403",
		FilingNumber:  "555",
		LegalName:     "COMERCIAL ANDES LIMITADA",
		Codes:         json.RawMessage(`{"538":1000000,"511":400000}`),
		DeterminedTax: 600000,
		Confidence:    20,
		Method:        string(domain.MethodDirectText),
		S3Bucket:      "test-bucket",
		S3Key:         "declarations/76123456-7/202403/x.pdf",
		Status:        domain.DeclarationStatusActive,
	}
}

func TestDeclarationService_List_ByTaxpayer(t *testing.T) {
	svc, repo, _ := archivedService()
	decls := []domain.Declaration{*sampleDeclaration()}
	repo.On("ListByTaxpayer", mock.Anything, "76.123.456-7", 0, 20).Return(decls, 1, nil)

	got, total, err := svc.List(context.Background(), "76.123.456-7", 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, got, 1)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeclarationService_List_All(t *testing.T) {
	svc, repo, _ := archivedService()
	repo.On("List", mock.Anything, 20, 10).Return([]domain.Declaration{}, 0, nil)

	got, total, err := svc.List(context.Background(), "", 20, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, got)
}

func TestDeclarationService_ReadsRequireArchive(t *testing.T) {
	pipeline, _ := newPipeline(declarationText, nil)
	cfg := testS3Config()
	svc := service.NewDeclarationService(pipeline, nil, nil, &cfg, zerolog.Nop())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)

	_, _, err = svc.List(context.Background(), "", 0, 20)
	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)

	err = svc.ExportCSV(context.Background(), "", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)
}

func TestDeclarationService_GetDownloadURL(t *testing.T) {
	svc, repo, storage := archivedService()
	decl := sampleDeclaration()
	repo.On("GetByID", mock.Anything, decl.ID).Return(decl, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", decl.S3Key, int64(900)).
		Return("https://s3.example.com/signed", nil)

	url, err := svc.GetDownloadURL(context.Background(), decl.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/signed", url)
}

func TestDeclarationService_GetDownloadURL_NotFound(t *testing.T) {
	svc, repo, storage := archivedService()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.GetDownloadURL(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeclarationService_Delete(t *testing.T) {
	svc, repo, storage := archivedService()
	decl := sampleDeclaration()
	repo.On("GetByID", mock.Anything, decl.ID).Return(decl, nil)
	repo.On("Delete", mock.Anything, decl.ID).Return(nil)
	storage.On("Delete", mock.Anything, "test-bucket", decl.S3Key).Return(errors.New("transient"))

	err := svc.Delete(context.Background(), decl.ID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDeclarationService_ExportCSV(t *testing.T) {
	svc, repo, _ := archivedService()
	repo.On("ListForExport", mock.Anything, "76.123.456-7").
		Return([]domain.Declaration{*sampleDeclaration()}, nil)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), "76.123.456-7", &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, "Código 538")
	assert.Contains(t, out, "76.123.456-7")
	assert.Contains(t, out, "1000000")
}

func TestDeclarationService_ExportXLSX(t *testing.T) {
	svc, repo, _ := archivedService()
	decl := sampleDeclaration()
	repo.On("GetByID", mock.Anything, decl.ID).Return(decl, nil)

	data, err := svc.ExportXLSX(context.Background(), decl.ID)

	require.NoError(t, err)
	// XLSX is a zip container.
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestDeclarationService_Reparse(t *testing.T) {
	svc, repo, storage := archivedService()
	decl := sampleDeclaration()
	repo.On("GetByID", mock.Anything, decl.ID).Return(decl, nil)
	storage.On("Download", mock.Anything, "test-bucket", decl.S3Key).Return(pdfContent(), nil)

	outcome, err := svc.Reparse(context.Background(), decl.ID)

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "202403", outcome.Snapshot.Period)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeclarationService_Reparse_DownloadFails(t *testing.T) {
	svc, repo, storage := archivedService()
	decl := sampleDeclaration()
	repo.On("GetByID", mock.Anything, decl.ID).Return(decl, nil)
	storage.On("Download", mock.Anything, "test-bucket", decl.S3Key).Return(nil, errors.New("no such key"))

	_, err := svc.Reparse(context.Background(), decl.ID)

	assert.Error(t, err)
}
