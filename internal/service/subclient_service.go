package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/herculesvale/vale-service/internal/models"
	"github.com/herculesvale/vale-service/internal/repository"
)

// dobLayout is the day/month/year format used on the registration form.
const dobLayout = "02/01/2006"

const phoneDigits = 10

// SubClientService owns registration and lookup of the per-distributor
// client roster.
type SubClientService struct {
	subClients repository.SubClientRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewSubClientService wires the registry.
func NewSubClientService(subClients repository.SubClientRepository, log *zap.Logger) *SubClientService {
	return &SubClientService{
		subClients: subClients,
		log:        log,
		now:        time.Now,
	}
}

// AddSubClientInput is the raw registration form.
type AddSubClientInput struct {
	DistributorID string
	Name          string
	Address       string
	Phone         string
	DateOfBirth   string // DD/MM/YYYY
}

// Add validates every field before storing anything and reports the first
// offending field on failure.
func (s *SubClientService) Add(ctx context.Context, in AddSubClientInput) (*models.SubClient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("name", "name is required")
	}

	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, models.NewValidationError("address", "address is required")
	}

	phone := digitsOnly(in.Phone)
	if phone == "" {
		return nil, models.NewValidationError("phone", "phone is required")
	}
	if len(phone) != phoneDigits {
		return nil, models.NewValidationError("phone", "phone must contain exactly 10 digits")
	}

	rawDOB := strings.TrimSpace(in.DateOfBirth)
	if rawDOB == "" {
		return nil, models.NewValidationError("date_of_birth", "date of birth is required")
	}
	dob, err := time.Parse(dobLayout, rawDOB)
	if err != nil {
		return nil, models.NewValidationError("date_of_birth", "date of birth must use DD/MM/YYYY")
	}

	sc := &models.SubClient{
		ID:            uuid.NewString(),
		DistributorID: in.DistributorID,
		Name:          name,
		Address:       address,
		Phone:         phone,
		DateOfBirth:   dob,
		CreatedAt:     s.now(),
	}

	if err := s.subClients.Add(ctx, sc); err != nil {
		return nil, err
	}

	s.log.Info("sub-client registered",
		zap.String("sub_client_id", sc.ID),
		zap.String("distributor_id", sc.DistributorID),
	)
	return sc, nil
}

// List returns the distributor's roster, most recently added first.
func (s *SubClientService) List(ctx context.Context, distributorID string) ([]*models.SubClient, error) {
	return s.subClients.ListByDistributor(ctx, distributorID)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
