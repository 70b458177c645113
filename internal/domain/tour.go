package domain

import "time"

type Tour struct {
	ID                        int64
	Slug                      string
	Name                      string
	DurationDays              int
	BasePricePerTravelerCents int64
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
