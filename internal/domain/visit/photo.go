package visit

import (
	"fmt"
	"strings"
	"time"

	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// Photo is an image taken during a visit.
type Photo struct {
	id        string
	visitID   string
	url       string
	caption   string
	takenAt   time.Time
	createdAt time.Time
}

func NewPhoto(visitID, url, caption string, takenAt *time.Time) (*Photo, error) {
	if visitID == "" {
		return nil, fmt.Errorf("visit ID is required")
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("photo URL is required")
	}
	photoID, err := id.New(id.PrefixVisitPhoto)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	taken := now
	if takenAt != nil {
		taken = *takenAt
	}
	return &Photo{
		id:        photoID,
		visitID:   visitID,
		url:       url,
		caption:   caption,
		takenAt:   taken,
		createdAt: now,
	}, nil
}

// ReconstructPhoto reconstructs a visit photo from persistence
func ReconstructPhoto(photoID, visitID, url, caption string, takenAt, createdAt time.Time) *Photo {
	return &Photo{id: photoID, visitID: visitID, url: url, caption: caption, takenAt: takenAt, createdAt: createdAt}
}

func (p *Photo) ID() string           { return p.id }
func (p *Photo) VisitID() string      { return p.visitID }
func (p *Photo) URL() string          { return p.url }
func (p *Photo) Caption() string      { return p.caption }
func (p *Photo) TakenAt() time.Time   { return p.takenAt }
func (p *Photo) CreatedAt() time.Time { return p.createdAt }
