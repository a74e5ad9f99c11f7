// Package service implements the operations on shares.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/thaishare/backend/internal/filestore"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/internal/promptpay"
	"github.com/thaishare/backend/internal/split"
	"github.com/thaishare/backend/internal/types"
	"gorm.io/gorm"
)

// maxNameAttempts is how often a different evidence name is tried
// when one with the same timestamp already exists.
const maxNameAttempts = 10

// Config configures a ShareService.
type Config struct {
	MaxUploadSize    int64            // Maximum size of evidence files in bytes. Zero disables the check
	EvidencePatterns []string         // Glob patterns evidence file names must match. Empty allows all names
	Location         *time.Location   // Location used to determine the current date
	Now              func() time.Time // Clock, defaults to time.Now
}

// ShareService creates, lists and deletes shares together with their files.
type ShareService struct {
	db     *gorm.DB
	files  *filestore.Store
	codes  promptpay.Generator
	config Config
}

// NewShareService returns a ShareService.
func NewShareService(db *gorm.DB, files *filestore.Store, codes promptpay.Generator, config Config) *ShareService {
	if config.Now == nil {
		config.Now = time.Now
	}

	if config.Location == nil {
		config.Location = time.UTC
	}

	return &ShareService{
		db:     db,
		files:  files,
		codes:  codes,
		config: config,
	}
}

// Evidence is an uploaded file substantiating the expense.
type Evidence struct {
	Filename string    // Name of the file on the client
	Size     int64     // Size in bytes if known, zero otherwise
	Content  io.Reader // File content
}

// CreateInput is the data needed to create a share.
type CreateInput struct {
	Date      string // YYYY-MM-DD, defaults to today
	Title     string
	PromptPay string
	People    int
	Amount    decimal.Decimal
	Evidence  *Evidence // Optional
}

// Today returns the current date.
func (s *ShareService) Today() types.Date {
	return types.DateOf(s.config.Now().In(s.config.Location))
}

// Create validates the input and creates a share with its QR code.
//
// The steps are not transactional. If a later step fails, files
// written and records inserted by earlier steps are kept.
func (s *ShareService) Create(ctx context.Context, in CreateInput) (models.Share, error) {
	date, err := s.validate(&in)
	if err != nil {
		return models.Share{}, err
	}

	perPerson, err := split.PerPerson(in.Amount, in.People)
	if err != nil {
		return models.Share{}, err
	}

	var evidencePath *string
	if in.Evidence != nil {
		name, err := s.saveEvidence(*in.Evidence)
		if err != nil {
			return models.Share{}, err
		}
		evidencePath = &name
	}

	// The QR code requests the amount per person, not the total
	payload, err := s.codes.Payload(in.PromptPay, perPerson)
	if err != nil {
		return models.Share{}, fmt.Errorf("could not create payment request: %w", err)
	}

	share := models.Share{
		Date:         date,
		Title:        in.Title,
		EvidencePath: evidencePath,
		PromptPay:    in.PromptPay,
		People:       in.People,
		Amount:       in.Amount,
		PerPerson:    perPerson,
	}

	err = s.db.WithContext(ctx).Create(&share).Error
	if err != nil {
		return models.Share{}, err
	}

	qrName, err := s.saveQRCode(share.ID, payload)
	if err != nil {
		return models.Share{}, err
	}

	err = s.db.WithContext(ctx).Model(&share).Update("qr_path", qrName).Error
	if err != nil {
		return models.Share{}, err
	}
	share.QRPath = qrName

	sharesCreated.Inc()
	log.Info().Uint("id", share.ID).Str("qr", qrName).Bool("evidence", share.HasEvidence()).Msg("share created")

	return share, nil
}

// List returns all shares, most recent first.
func (s *ShareService) List(ctx context.Context) ([]models.Share, error) {
	shares := make([]models.Share, 0)

	err := s.db.WithContext(ctx).Order("id DESC").Find(&shares).Error
	if err != nil {
		return nil, err
	}

	return shares, nil
}

// Get returns the share with the given ID. If it does not exist,
// the error wraps models.ErrResourceNotFound.
func (s *ShareService) Get(ctx context.Context, id uint) (models.Share, error) {
	var share models.Share

	err := s.db.WithContext(ctx).First(&share, id).Error
	if err != nil {
		return models.Share{}, err
	}

	return share, nil
}

// Delete removes the share and its files. Deleting a share that does
// not exist is not an error.
//
// Files are removed on a best effort basis, failures are logged.
func (s *ShareService) Delete(ctx context.Context, id uint) error {
	share, err := s.Get(ctx, id)
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if share.HasEvidence() {
		s.removeFile(filestore.Evidence, *share.EvidencePath)
	}

	if share.QRPath != "" {
		s.removeFile(filestore.QRCodes, share.QRPath)
	}

	err = s.db.WithContext(ctx).Delete(&share).Error
	if err != nil {
		return err
	}

	sharesDeleted.Inc()
	log.Info().Uint("id", share.ID).Msg("share deleted")

	return nil
}

// validate normalizes the input and checks all of it, reporting every problem at once.
func (s *ShareService) validate(in *CreateInput) (types.Date, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.PromptPay = strings.TrimSpace(in.PromptPay)

	verr := &ValidationError{}

	if in.Title == "" {
		verr.add("title", models.ErrShareTitleEmpty)
	}

	if in.PromptPay == "" {
		verr.add("promptpay", models.ErrSharePromptPayEmpty)
	} else if err := promptpay.ValidateTarget(in.PromptPay); err != nil {
		verr.add("promptpay", err)
	}

	if in.People <= 0 {
		verr.add("people", models.ErrSharePeopleInvalid)
	}

	if !in.Amount.IsPositive() {
		verr.add("amount", models.ErrShareAmountInvalid)
	} else if in.Amount.GreaterThan(promptpay.MaxAmount) {
		verr.add("amount", ErrAmountTooLarge)
	}

	date := s.Today()
	if strings.TrimSpace(in.Date) != "" {
		parsed, err := types.ParseDate(in.Date)
		if err != nil {
			verr.add("date", ErrDateInvalid)
		} else {
			date = parsed
		}
	}

	if in.Evidence != nil {
		if len(s.config.EvidencePatterns) > 0 && !filestore.MatchesAny(filestore.Ext(in.Evidence.Filename), s.config.EvidencePatterns) {
			verr.add("evidence", ErrEvidenceType)
		}

		if s.config.MaxUploadSize > 0 && in.Evidence.Size > s.config.MaxUploadSize {
			verr.add("evidence", ErrEvidenceTooLarge)
		}
	}

	if verr.empty() {
		return date, nil
	}

	return types.Date{}, verr
}

// saveEvidence writes the evidence to the file store and returns its name.
func (s *ShareService) saveEvidence(e Evidence) (string, error) {
	base := filestore.EvidenceName(e.Filename, s.config.Now().In(s.config.Location))

	name := base
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		if attempt > 1 {
			// 20250314092653_receipt.jpg becomes 20250314092653_2_receipt.jpg
			prefix, rest, _ := strings.Cut(base, "_")
			name = fmt.Sprintf("%s_%d_%s", prefix, attempt, rest)
		}

		err := s.files.Save(filestore.Evidence, name, e.Content)
		if errors.Is(err, filestore.ErrExists) {
			continue
		}
		if err != nil {
			return "", err
		}

		return name, nil
	}

	return "", fmt.Errorf("could not find a free name for %s: %w", base, filestore.ErrExists)
}

// saveQRCode renders the payload and writes it to the file store.
func (s *ShareService) saveQRCode(id uint, payload string) (string, error) {
	png, err := s.codes.PNG(payload)
	if err != nil {
		return "", err
	}

	name := QRCodeName(id)

	// A file for a new ID can only be left over from a share that was
	// deleted while its file could not be removed
	err = s.files.Remove(filestore.QRCodes, name)
	if err != nil {
		return "", err
	}

	err = s.files.Save(filestore.QRCodes, name, bytes.NewReader(png))
	if err != nil {
		return "", err
	}

	return name, nil
}

func (s *ShareService) removeFile(ns filestore.Namespace, name string) {
	err := s.files.Remove(ns, name)
	if err != nil {
		log.Warn().Err(err).Str("namespace", string(ns)).Str("file", name).Msg("could not remove file of deleted share")
	}
}

// QRCodeName returns the name of the QR code image for the share with the given ID.
func QRCodeName(id uint) string {
	return fmt.Sprintf("qr_%d.png", id)
}

var (
	sharesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shares_created_total",
		Help: "How many shares have been created.",
	})

	sharesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shares_deleted_total",
		Help: "How many shares have been deleted.",
	})
)

// Collectors returns the Prometheus metrics of the service.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{sharesCreated, sharesDeleted}
}
