package mandate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/bramble/internal/database"
	"github.com/Ramsey-B/bramble/internal/logging"
	"github.com/Ramsey-B/bramble/internal/tracing"
	"github.com/Ramsey-B/bramble/pkg/models"
)

const mandatesTable = "mandates"

var mandateColumns = []string{
	"id", "tenant_id", "investor_name", "investor_type", "risk_profile",
	"priority", "is_active", "notes", "asset_classes", "geographic",
	"financial", "property", "scoring_weights", "deal_criteria",
	"created_at", "updated_at", "deleted_at",
}

// Repository handles mandate persistence
type Repository struct {
	db     database.DB
	logger logging.Logger
}

// NewRepository creates a new mandate repository
func NewRepository(db database.DB, logger logging.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// row is the flat database shape of a mandate; the structured criteria
// live in jsonb columns
type row struct {
	ID             string     `db:"id"`
	TenantID       string     `db:"tenant_id"`
	InvestorName   string     `db:"investor_name"`
	InvestorType   string     `db:"investor_type"`
	RiskProfile    string     `db:"risk_profile"`
	Priority       int        `db:"priority"`
	IsActive       bool       `db:"is_active"`
	Notes          *string    `db:"notes"`
	AssetClasses   []byte     `db:"asset_classes"`
	Geographic     []byte     `db:"geographic"`
	Financial      []byte     `db:"financial"`
	Property       []byte     `db:"property"`
	ScoringWeights []byte     `db:"scoring_weights"`
	DealCriteria   []byte     `db:"deal_criteria"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func toRow(m *models.Mandate) (*row, error) {
	assetClasses, err := json.Marshal(m.AssetClasses)
	if err != nil {
		return nil, err
	}
	geographic, err := json.Marshal(m.Geographic)
	if err != nil {
		return nil, err
	}
	financial, err := json.Marshal(m.Financial)
	if err != nil {
		return nil, err
	}
	property, err := json.Marshal(m.Property)
	if err != nil {
		return nil, err
	}
	weights, err := json.Marshal(m.ScoringWeights)
	if err != nil {
		return nil, err
	}
	dealCriteria, err := json.Marshal(m.DealCriteria)
	if err != nil {
		return nil, err
	}

	return &row{
		ID:             m.ID,
		TenantID:       m.TenantID,
		InvestorName:   m.InvestorName,
		InvestorType:   string(m.InvestorType),
		RiskProfile:    string(m.RiskProfile),
		Priority:       m.Priority,
		IsActive:       m.IsActive,
		Notes:          m.Notes,
		AssetClasses:   assetClasses,
		Geographic:     geographic,
		Financial:      financial,
		Property:       property,
		ScoringWeights: weights,
		DealCriteria:   dealCriteria,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      m.DeletedAt,
	}, nil
}

func (r *row) toModel() (*models.Mandate, error) {
	m := &models.Mandate{
		ID:           r.ID,
		TenantID:     r.TenantID,
		InvestorName: r.InvestorName,
		InvestorType: models.InvestorType(r.InvestorType),
		RiskProfile:  models.RiskProfile(r.RiskProfile),
		Priority:     r.Priority,
		IsActive:     r.IsActive,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
	}
	if err := json.Unmarshal(r.AssetClasses, &m.AssetClasses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.Geographic, &m.Geographic); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.Financial, &m.Financial); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.Property, &m.Property); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.ScoringWeights, &m.ScoringWeights); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.DealCriteria, &m.DealCriteria); err != nil {
		return nil, err
	}
	return m, nil
}

// Create persists a new mandate
func (r *Repository) Create(ctx context.Context, tenantID string, mandate *models.Mandate) (*models.Mandate, error) {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.Create")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":        "Create",
		"tenant_id":     tenantID,
		"investor_name": mandate.InvestorName,
	})

	now := time.Now().UTC()
	mandate.ID = uuid.New().String()
	mandate.TenantID = tenantID
	mandate.CreatedAt = now
	mandate.UpdatedAt = now

	record, err := toRow(mandate)
	if err != nil {
		log.WithError(err).Error("Failed to encode mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create mandate")
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto(mandatesTable)
	sb.Cols(mandateColumns[:16]...)
	sb.Values(record.ID, record.TenantID, record.InvestorName, record.InvestorType,
		record.RiskProfile, record.Priority, record.IsActive, record.Notes,
		record.AssetClasses, record.Geographic, record.Financial, record.Property,
		record.ScoringWeights, record.DealCriteria, record.CreatedAt, record.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.WithError(err).Error("Failed to create mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create mandate")
	}

	log.WithFields(map[string]any{"id": mandate.ID}).Info("Created mandate")
	return mandate, nil
}

// Get retrieves a mandate by ID
func (r *Repository) Get(ctx context.Context, tenantID string, id string) (*models.Mandate, error) {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(mandateColumns...)
	sb.From(mandatesTable)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var record row
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mandate %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get mandate")
	}

	mandate, err := record.toModel()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to decode mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get mandate")
	}
	return mandate, nil
}

// GetMany retrieves multiple mandates by ID, preserving the requested order
func (r *Repository) GetMany(ctx context.Context, tenantID string, ids []string) ([]models.Mandate, error) {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.GetMany")
	defer span.End()

	if len(ids) == 0 {
		return []models.Mandate{}, nil
	}

	idArgs := make([]any, len(ids))
	for i, id := range ids {
		idArgs[i] = id
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(mandateColumns...)
	sb.From(mandatesTable)
	sb.Where(
		sb.In("id", idArgs...),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	var records []row
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get mandates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get mandates")
	}

	byID := make(map[string]*models.Mandate, len(records))
	for i := range records {
		mandate, err := records[i].toModel()
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to decode mandate")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get mandates")
		}
		byID[mandate.ID] = mandate
	}

	mandates := make([]models.Mandate, 0, len(ids))
	for _, id := range ids {
		mandate, ok := byID[id]
		if !ok {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mandate %s not found", id))
		}
		mandates = append(mandates, *mandate)
	}
	return mandates, nil
}

// List retrieves mandates for a tenant with pagination
func (r *Repository) List(ctx context.Context, tenantID string, activeOnly bool, page, pageSize int) ([]models.Mandate, int, error) {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From(mandatesTable)
	countWhere := []string{
		countSb.Equal("tenant_id", tenantID),
		countSb.IsNull("deleted_at"),
	}
	if activeOnly {
		countWhere = append(countWhere, countSb.Equal("is_active", true))
	}
	countSb.Where(countWhere...)

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count mandates")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count mandates")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(mandateColumns...)
	sb.From(mandatesTable)
	where := []string{
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	}
	if activeOnly {
		where = append(where, sb.Equal("is_active", true))
	}
	sb.Where(where...)
	sb.OrderBy("priority ASC", "created_at DESC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var records []row
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list mandates")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list mandates")
	}

	mandates := make([]models.Mandate, 0, len(records))
	for i := range records {
		mandate, err := records[i].toModel()
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to decode mandate")
			return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list mandates")
		}
		mandates = append(mandates, *mandate)
	}

	return mandates, totalCount, nil
}

// Update persists changes to an existing mandate
func (r *Repository) Update(ctx context.Context, tenantID string, mandate *models.Mandate) (*models.Mandate, error) {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.Update")
	defer span.End()

	mandate.UpdatedAt = time.Now().UTC()

	record, err := toRow(mandate)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to encode mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update mandate")
	}

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update(mandatesTable)
	sb.Set(
		sb.Assign("investor_name", record.InvestorName),
		sb.Assign("investor_type", record.InvestorType),
		sb.Assign("risk_profile", record.RiskProfile),
		sb.Assign("priority", record.Priority),
		sb.Assign("is_active", record.IsActive),
		sb.Assign("notes", record.Notes),
		sb.Assign("asset_classes", record.AssetClasses),
		sb.Assign("geographic", record.Geographic),
		sb.Assign("financial", record.Financial),
		sb.Assign("property", record.Property),
		sb.Assign("scoring_weights", record.ScoringWeights),
		sb.Assign("deal_criteria", record.DealCriteria),
		sb.Assign("updated_at", record.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", mandate.ID),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update mandate")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update mandate")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mandate %s not found", mandate.ID))
	}

	return mandate, nil
}

// Delete soft deletes a mandate
func (r *Repository) Delete(ctx context.Context, tenantID string, id string) error {
	ctx, span := tracing.StartSpan(ctx, "mandate.Repository.Delete")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update(mandatesTable)
	sb.Set(sb.Assign("deleted_at", now))
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
		sb.IsNull("deleted_at"),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete mandate")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete mandate")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("mandate %s not found", id))
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("Deleted mandate")
	return nil
}
