package queries

import (
	"context"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrInvalidFilter   = errs.New("invalid booking filter")
	ErrLoginRequired   = errs.New("login required")
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the ownership check; used for read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, actor shared.Actor, page Page) ([]*BookingView, error)
	ListAll(ctx context.Context, actor shared.Actor, filter BookingFilter) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || actor.IsSystem() {
		return view, nil
	}
	if actor.IsAnonymous() || view.UserID == nil || *view.UserID != actor.UserID {
		return nil, errs.Mark(ErrBookingAccess, errs.ErrForbidden)
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrBookingNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor shared.Actor, page Page) ([]*BookingView, error) {
	if actor.Kind != shared.ActorUser {
		return nil, errs.Mark(ErrLoginRequired, errs.ErrForbidden)
	}
	userID := actor.UserID
	return q.list(ctx, BookingFilter{UserID: &userID, Page: page})
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor shared.Actor, filter BookingFilter) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(ErrBookingAccess, errs.ErrForbidden)
	}
	if filter.Status != "" {
		if _, err := booking.ParseStatus(filter.Status); err != nil {
			return nil, errs.Mark(errs.Wrap(ErrInvalidFilter, err.Error()), errs.ErrValidation)
		}
	}
	return q.list(ctx, filter)
}

func (q *bookingQueriesImpl) list(ctx context.Context, filter BookingFilter) ([]*BookingView, error) {
	filter.Page = filter.Page.Normalize()
	views, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
