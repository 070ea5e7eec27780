package mysql

import (
	"context"

	appDomain "loanlink-backend/internal/domain/application"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "application")
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, translate(err, "application")
	}
	return &out, nil
}

func (r *ApplicationRepository) scoped(ctx context.Context, f appDomain.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&appDomain.Application{})
	if f.UserEmail != "" {
		q = q.Where("user_email = ?", f.UserEmail)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.LoanID != "" {
		q = q.Where("loan_id = ?", f.LoanID)
	}
	return q
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.Filter) ([]appDomain.Application, error) {
	out := []appDomain.Application{}
	if err := r.scoped(ctx, f).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "application")
	}
	return out, nil
}

func (r *ApplicationRepository) Count(ctx context.Context, f appDomain.Filter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, translate(err, "application")
	}
	return n, nil
}

// CompareAndSetStatus is a single conditional UPDATE, so the check and the
// write are atomic in the database even across server processes.
func (r *ApplicationRepository) CompareAndSetStatus(ctx context.Context, applicationID string, from appDomain.Status, s appDomain.Stamp) (bool, error) {
	changes := map[string]any{
		"status":     s.To,
		"decided_by": s.DecidedBy,
		"updated_at": s.At,
	}
	switch s.To {
	case appDomain.StatusApproved:
		changes["approved_at"] = s.At
	case appDomain.StatusRejected:
		changes["rejected_at"] = s.At
	case appDomain.StatusCancelled:
		changes["cancelled_at"] = s.At
	}
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("application_id = ? AND status = ?", applicationID, from).
		Updates(changes)
	if res.Error != nil {
		return false, translate(res.Error, "application")
	}
	return res.RowsAffected == 1, nil
}
