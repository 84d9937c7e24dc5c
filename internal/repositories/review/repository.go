package review

import (
	"context"
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

const (
	reviewsTable      = "reviews"
	reviewEventsTable = "review_events"
)

var reviewColumns = []string{
	"id", "tenant_id", "mandate_id", "listing_id", "status",
	"score", "action", "assignee", "note", "created_at", "updated_at",
}

// Repository handles review persistence
type Repository struct {
	db     database.DB
	logger logging.Logger
}

// NewRepository creates a new review repository
func NewRepository(db database.DB, logger logging.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates a review entry for a (mandate, listing) pair, or refreshes the
// score and action on the existing one without touching its status.
func (r *Repository) Upsert(ctx context.Context, tenantID string, review *models.Review) (*models.Review, error) {
	ctx, span := tracing.StartSpan(ctx, "review.Repository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	review.TenantID = tenantID
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.Status == "" {
		review.Status = models.ReviewStatusNew
	}
	review.CreatedAt = now
	review.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, mandate_id, listing_id, status, score, action, assignee, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tenant_id, mandate_id, listing_id)
		DO UPDATE SET score = EXCLUDED.score, action = EXCLUDED.action, updated_at = EXCLUDED.updated_at
		RETURNING id, status, created_at`, reviewsTable)

	row := r.db.QueryRowxContext(ctx, query,
		review.ID, review.TenantID, review.MandateID, review.ListingID,
		review.Status, review.Score, review.Action, review.Assignee,
		review.Note, review.CreatedAt, review.UpdatedAt)
	if err := row.Scan(&review.ID, &review.Status, &review.CreatedAt); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to upsert review")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert review")
	}

	return review, nil
}

// Get retrieves a review by ID
func (r *Repository) Get(ctx context.Context, tenantID string, id string) (*models.Review, error) {
	ctx, span := tracing.StartSpan(ctx, "review.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reviewColumns...)
	sb.From(reviewsTable)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	var review models.Review
	if err := r.db.GetContext(ctx, &review, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("review %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get review")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get review")
	}

	return &review, nil
}

// ListQueue retrieves reviews for a tenant, optionally filtered by mandate and
// status, ordered by score descending so the strongest candidates surface first.
func (r *Repository) ListQueue(ctx context.Context, tenantID string, mandateID string, status models.ReviewStatus, page, pageSize int) ([]models.Review, int, error) {
	ctx, span := tracing.StartSpan(ctx, "review.Repository.ListQueue")
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
	countSb.From(reviewsTable)
	countWhere := []string{countSb.Equal("tenant_id", tenantID)}
	if mandateID != "" {
		countWhere = append(countWhere, countSb.Equal("mandate_id", mandateID))
	}
	if status != "" {
		countWhere = append(countWhere, countSb.Equal("status", string(status)))
	}
	countSb.Where(countWhere...)

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count reviews")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count reviews")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(reviewColumns...)
	sb.From(reviewsTable)
	where := []string{sb.Equal("tenant_id", tenantID)}
	if mandateID != "" {
		where = append(where, sb.Equal("mandate_id", mandateID))
	}
	if status != "" {
		where = append(where, sb.Equal("status", string(status)))
	}
	sb.Where(where...)
	sb.OrderBy("score DESC", "created_at ASC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list reviews")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list reviews")
	}

	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, totalCount, nil
}

// UpdateStatus moves a review to a new status and records the transition in the
// audit trail within a single transaction.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID string, review *models.Review, fromStatus models.ReviewStatus, actor, note string) (*models.Review, error) {
	ctx, span := tracing.StartSpan(ctx, "review.Repository.UpdateStatus")
	defer span.End()

	log := r.logger.WithContext(ctx).WithFields(map[string]any{
		"method":    "UpdateStatus",
		"review_id": review.ID,
		"status":    review.Status,
	})

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Failed to begin transaction")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update review")
	}
	defer tx.Rollback()

	review.UpdatedAt = time.Now().UTC()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update(reviewsTable)
	sb.Set(
		sb.Assign("status", string(review.Status)),
		sb.Assign("assignee", review.Assignee),
		sb.Assign("note", review.Note),
		sb.Assign("updated_at", review.UpdatedAt),
	)
	sb.Where(
		sb.Equal("id", review.ID),
		sb.Equal("tenant_id", tenantID),
	)

	query, args := sb.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to update review")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update review")
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("review %s not found", review.ID))
	}

	eventSb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	eventSb.InsertInto(reviewEventsTable)
	eventSb.Cols("id", "tenant_id", "review_id", "from_status", "to_status", "actor", "note", "created_at")
	eventSb.Values(uuid.New().String(), tenantID, review.ID, string(fromStatus), string(review.Status), actor, note, review.UpdatedAt)

	eventQuery, eventArgs := eventSb.Build()
	if _, err := tx.ExecContext(ctx, eventQuery, eventArgs...); err != nil {
		log.WithError(err).Error("Failed to record review event")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update review")
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit review update")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update review")
	}

	log.Info("Updated review status")
	return review, nil
}

// ListEvents retrieves the audit trail for a review, oldest first
func (r *Repository) ListEvents(ctx context.Context, tenantID string, reviewID string) ([]models.ReviewEvent, error) {
	ctx, span := tracing.StartSpan(ctx, "review.Repository.ListEvents")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "tenant_id", "review_id", "from_status", "to_status", "actor", "note", "created_at")
	sb.From(reviewEventsTable)
	sb.Where(
		sb.Equal("review_id", reviewID),
		sb.Equal("tenant_id", tenantID),
	)
	sb.OrderBy("created_at ASC")

	query, args := sb.Build()
	var events []models.ReviewEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list review events")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list review events")
	}

	if events == nil {
		events = []models.ReviewEvent{}
	}
	return events, nil
}
