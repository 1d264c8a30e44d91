package authorizationhandler

import (
	"sort"
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

type originator struct {
	status     string
	resolvable bool
	dateFrom   time.Time
	dateTo     time.Time
}

// loadOriginator datos del origen para la verificacion de elegibilidad
func loadOriginator(s stores, ref models.OriginatorRef) (*originator, error) {
	switch ref.Kind {
	case models.OriginatorRequest:
		rec, err := s.request.GetByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, models.NewNotFoundError("solicitud %s no encontrada", ref.ID)
		}
		from, to := dateSpan([]string{rec.RequesterShift.Date, rec.RecipientShift.Date})
		return &originator{
			status:     string(rec.Status),
			resolvable: rec.Status.IsAllowChange(models.SwapCompleted),
			dateFrom:   from,
			dateTo:     to,
		}, nil
	case models.OriginatorOffer:
		rec, err := s.offer.GetByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, models.NewNotFoundError("oferta %s no encontrada", ref.ID)
		}
		dates := append([]string{}, rec.AvailableDates...)
		if rec.OfferedShift != nil {
			dates = append(dates, rec.OfferedShift.Date)
		}
		for _, shift := range rec.SoughtShifts {
			dates = append(dates, shift.Date)
		}
		from, to := dateSpan(dates)
		return &originator{
			status:     string(rec.Status),
			resolvable: rec.Status.IsAllowChange(models.OfferCompleted),
			dateFrom:   from,
			dateTo:     to,
		}, nil
	case models.OriginatorLicense:
		rec, err := s.license.GetByID(ref.ID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, models.NewNotFoundError("licencia %s no encontrada", ref.ID)
		}
		return &originator{
			status:     string(rec.Status),
			resolvable: rec.Status.IsAllowChange(models.LicenseApproved),
			dateFrom:   rec.DateFrom,
			dateTo:     rec.DateTo,
		}, nil
	}
	return nil, models.NewValidationError("tipo de origen desconocido: %v", ref.Kind)
}

// fanOut lleva el origen al estado que corresponde a la resolucion
func fanOut(s stores, rec dbmodels.Authorization, target models.AuthorizationStatus) (string, error) {
	ref, err := rec.Originator()
	if err != nil {
		return "", err
	}
	approved := target == models.AuthorizationApproved
	var (
		status  string
		changed bool
	)
	switch ref.Kind {
	case models.OriginatorRequest:
		to := models.SwapRejected
		if approved {
			to = models.SwapCompleted
		}
		status = string(to)
		changed, err = s.request.ChangeStatus(ref.ID, to)
	case models.OriginatorOffer:
		to := models.OfferCancelled
		if approved {
			to = models.OfferCompleted
		}
		status = string(to)
		changed, err = s.offer.ChangeStatus(ref.ID, to)
	case models.OriginatorLicense:
		to := models.LicenseRejected
		if approved {
			to = models.LicenseApproved
		}
		status = string(to)
		changed, err = s.license.ChangeStatus(ref.ID, to)
	default:
		return "", errors.Errorf("tipo de origen desconocido: %v", ref.Kind)
	}
	if err != nil {
		return "", errors.Wrapf(err, "error al actualizar %s %s", ref.Kind, ref.ID)
	}
	if !changed {
		return "", models.NewConflictError("%s %s no existe o no admite el estado %s", ref.Kind, ref.ID, status)
	}
	return status, nil
}

func dateSpan(values []string) (from, to time.Time) {
	dates := make([]time.Time, 0, len(values))
	for _, value := range values {
		date, err := models.ParseDate(value)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return time.Time{}, time.Time{}
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })
	return dates[0], dates[len(dates)-1]
}
