package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"freightflow/domain"
	"freightflow/models"
	"freightflow/repository"
	"freightflow/storage"
	"freightflow/utils"
)

// LRRenderer turns prepared LR copies into a PDF.
type LRRenderer interface {
	Render(ctx context.Context, copies []models.LRCopyData) ([]byte, error)
}

// TripService applies operational events to confirmed trips. Updates to the
// same trip are serialized; the stored record is replaced as a whole.
type TripService struct {
	Trips    repository.TripRepository
	LRCopies *repository.LRCopyRepository
	Store    storage.Store
	Renderer LRRenderer

	Now   func() time.Time
	NewID func() string

	locks tripLocks
}

func NewTripService(trips repository.TripRepository, profiles repository.ProfileRepository, store storage.Store, renderer LRRenderer) *TripService {
	return &TripService{
		Trips:    trips,
		LRCopies: repository.NewLRCopyRepository(trips, profiles),
		Store:    store,
		Renderer: renderer,
		Now:      defaultNow,
		NewID:    newID,
	}
}

// update loads the trip, applies fn and writes it back. If fn fails nothing
// is written.
func (s *TripService) update(ctx context.Context, id, action string, fn func(t *models.Trip) error) (*models.Trip, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	t, err := s.Trips.GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		utils.LogCtx(ctx, "trip", action, fmt.Sprintf("trip_id=%s rejected: %v", id, err))
		return nil, err
	}
	now := s.Now()
	t.UpdatedAt = &now
	if err := s.Trips.UpdateTrip(ctx, t); err != nil {
		return nil, fmt.Errorf("update trip %s: %w", id, err)
	}
	utils.LogCtx(ctx, "trip", action, fmt.Sprintf("trip_id=%s order=%s status=%s advance=%s balance=%s",
		t.ID, t.OrderNumber, t.Status, t.AdvancePaymentStatus, t.BalancePaymentStatus))
	return t, nil
}

func (s *TripService) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	return s.Trips.GetTrip(ctx, id)
}

// Search lists trips matching q, newest first. An empty q lists everything.
func (s *TripService) Search(ctx context.Context, q string) ([]*models.Trip, error) {
	trips, err := s.Trips.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	return filter(trips, MatchTrip(q)), nil
}

// SupplierTrips is the supplier app's trip history, optionally filtered.
func (s *TripService) SupplierTrips(ctx context.Context, supplierID, q string) ([]*models.Trip, error) {
	trips, err := s.Trips.ListTripsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return filter(trips, MatchTrip(q)), nil
}

// ------------------------ Status ------------------------

func (s *TripService) TransitionTripStatus(ctx context.Context, id string, ev domain.TripEvent) (*models.Trip, error) {
	return s.update(ctx, id, "status", func(t *models.Trip) error {
		next, err := domain.NextTripStatus(t.Status, ev, t.Guard())
		if err != nil {
			return err
		}
		t.Status = next
		return nil
	})
}

// ------------------------ Payments ------------------------

func (s *TripService) TransitionPaymentStatus(ctx context.Context, id string, track domain.PaymentTrack, ev domain.PaymentEvent) (*models.Trip, error) {
	return s.update(ctx, id, "payment", func(t *models.Trip) error {
		next, err := domain.NextPaymentStatus(track, t.PaymentStatus(track), ev, t.PODUploaded)
		if err != nil {
			return err
		}
		t.SetPaymentStatus(track, next)
		return nil
	})
}

// ProcessPayment moves the track one step forward, whatever step that is.
func (s *TripService) ProcessPayment(ctx context.Context, id string, track domain.PaymentTrack) (*models.Trip, error) {
	return s.update(ctx, id, "process_payment", func(t *models.Trip) error {
		from := t.PaymentStatus(track)
		ev, ok := domain.NextPaymentEvent(track, from)
		if !ok {
			return &domain.InvalidTransitionError{Track: string(track), From: string(from), Event: "process",
				Reason: "payment already settled"}
		}
		next, err := domain.NextPaymentStatus(track, from, ev, t.PODUploaded)
		if err != nil {
			return err
		}
		t.SetPaymentStatus(track, next)
		return nil
	})
}

// PaymentQueues returns the advance and balance queues, filtered by q.
func (s *TripService) PaymentQueues(ctx context.Context, q string) (PaymentQueues, error) {
	trips, err := s.Search(ctx, q)
	if err != nil {
		return PaymentQueues{}, err
	}
	return BuildPaymentQueues(trips), nil
}

func (s *TripService) Dashboard(ctx context.Context) (Summary, error) {
	trips, err := s.Trips.ListTrips(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(trips), nil
}

// ------------------------ Documents ------------------------

// DocumentInput describes a file attached to a trip. Only metadata is kept.
type DocumentInput struct {
	Type       models.DocumentType `json:"type" validate:"required"`
	Number     string              `json:"number"`
	Filename   string              `json:"filename" validate:"required"`
	ExpiryDate string              `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

func (in DocumentInput) check() error {
	v := &domain.ValidationError{}
	v.Merge("document", ValidateStruct(in))
	if in.Type != "" && !in.Type.Valid() {
		v.Add("type", fmt.Sprintf("unknown document type %q", in.Type), domain.ErrUnknownValue)
	}
	return v.OrNil()
}

// AttachDocument records a document against the trip. Attaching a POD also
// sets the POD flag.
func (s *TripService) AttachDocument(ctx context.Context, id string, in DocumentInput) (*models.Trip, error) {
	in.Filename = strings.TrimSpace(in.Filename)
	if err := in.check(); err != nil {
		return nil, err
	}
	return s.update(ctx, id, "attach_document", func(t *models.Trip) error {
		t.Documents = append(t.Documents, models.Document{
			ID:         s.NewID(),
			Type:       in.Type,
			Number:     strings.TrimSpace(in.Number),
			Filename:   in.Filename,
			UploadDate: s.Now(),
			ExpiryDate: in.ExpiryDate,
		})
		if in.Type == models.DocumentPOD {
			t.PODUploaded = true
		}
		return nil
	})
}

// UploadPOD records proof of delivery. It does not move the trip status.
func (s *TripService) UploadPOD(ctx context.Context, id, number, filename string) (*models.Trip, error) {
	return s.AttachDocument(ctx, id, DocumentInput{Type: models.DocumentPOD, Number: number, Filename: filename})
}

// ------------------------ Supplier app ------------------------

func (s *TripService) RespondToAssignment(ctx context.Context, id string, accept bool) (*models.Trip, error) {
	return s.update(ctx, id, "acceptance", func(t *models.Trip) error {
		next, err := domain.RespondToAssignment(t.Acceptance, accept)
		if err != nil {
			return err
		}
		t.Acceptance = next
		return nil
	})
}

// ------------------------ LR copy ------------------------

// GenerateLRCopy renders the consignor, consignee and driver copies of the
// trip's lorry receipt, stores the PDF and records its URL on the trip.
func (s *TripService) GenerateLRCopy(ctx context.Context, id string) (*models.Trip, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	trip, err := s.LRCopies.GetTripForLRCopy(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.LRCopies.GetProfileForLRCopy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load company profile: %w", err)
	}

	now := s.Now()
	pdf, err := s.Renderer.Render(ctx, utils.NewLRCopies(profile, trip, now))
	if err != nil {
		return nil, fmt.Errorf("render lr copy: %w", err)
	}

	key := fmt.Sprintf("%s-%d.pdf", trip.OrderNumber, now.Unix())
	url, err := s.Store.Put(ctx, key, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("store lr copy: %w", err)
	}
	if err := s.LRCopies.SaveLRCopy(ctx, trip.ID, url, now); err != nil {
		return nil, fmt.Errorf("save lr copy url: %w", err)
	}

	// previous copy is replaced; failing to remove it is not fatal
	if trip.LRCopyURL != nil && *trip.LRCopyURL != url {
		if err := s.Store.Delete(ctx, *trip.LRCopyURL); err != nil {
			utils.LogCtx(ctx, "trip", "lr_copy", fmt.Sprintf("trip_id=%s old copy not removed: %v", trip.ID, err))
		}
	}

	trip.LRCopyURL = &url
	trip.LRCopyCreatedAt = &now
	utils.LogCtx(ctx, "trip", "lr_copy", fmt.Sprintf("trip_id=%s order=%s bytes=%d", trip.ID, trip.OrderNumber, len(pdf)))
	return trip, nil
}
