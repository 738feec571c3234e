package dto

import (
	"time"

	"solarops/internal/domain/visit"
)

type VisitDTO struct {
	ID                 string     `json:"id"`
	AgreementID        string     `json:"agreement_id"`
	TechnicianID       string     `json:"technician_id"`
	VisitNumber        int        `json:"visit_number"`
	ScheduledDate      time.Time  `json:"scheduled_date"`
	ScheduledEndDate   *time.Time `json:"scheduled_end_date,omitempty"`
	Status             string     `json:"status"`
	VisitType          string     `json:"visit_type"`
	ActualStartDate    *time.Time `json:"actual_start_date,omitempty"`
	ActualEndDate      *time.Time `json:"actual_end_date,omitempty"`
	DurationMinutes    *int       `json:"duration_minutes,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Signed             bool       `json:"signed"`
	SignedAt           *time.Time `json:"signed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	Photos             []PhotoDTO `json:"photos,omitempty"`
	Version            int        `json:"version"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type PhotoDTO struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	TakenAt   time.Time `json:"taken_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ToVisitDTO converts a visit. The signature image itself is not exposed.
func ToVisitDTO(v *visit.Visit, photos []*visit.Photo) *VisitDTO {
	if v == nil {
		return nil
	}
	d := &VisitDTO{
		ID:                 v.ID(),
		AgreementID:        v.AgreementID(),
		TechnicianID:       v.TechnicianID(),
		VisitNumber:        v.VisitNumber(),
		ScheduledDate:      v.ScheduledDate(),
		ScheduledEndDate:   v.ScheduledEndDate(),
		Status:             v.Status().String(),
		VisitType:          v.VisitType().String(),
		ActualStartDate:    v.ActualStartDate(),
		ActualEndDate:      v.ActualEndDate(),
		DurationMinutes:    v.DurationMinutes(),
		Notes:              v.Notes(),
		Signed:             v.CustomerSignature() != nil,
		SignedAt:           v.SignedAt(),
		CompletedAt:        v.CompletedAt(),
		CancelledAt:        v.CancelledAt(),
		CancellationReason: v.CancellationReason(),
		Version:            v.Version(),
		CreatedAt:          v.CreatedAt(),
		UpdatedAt:          v.UpdatedAt(),
	}
	for _, p := range photos {
		d.Photos = append(d.Photos, ToPhotoDTO(p))
	}
	return d
}

func ToPhotoDTO(p *visit.Photo) PhotoDTO {
	return PhotoDTO{
		ID:        p.ID(),
		URL:       p.URL(),
		Caption:   p.Caption(),
		TakenAt:   p.TakenAt(),
		CreatedAt: p.CreatedAt(),
	}
}

func ToVisitDTOList(visits []*visit.Visit) []*VisitDTO {
	out := make([]*VisitDTO, 0, len(visits))
	for _, v := range visits {
		out = append(out, ToVisitDTO(v, nil))
	}
	return out
}
