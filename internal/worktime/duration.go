package worktime

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"geoshift/internal/shared/apperror"
)

var ErrInvalidInterval = apperror.New(
	apperror.CodeInvalidInterval,
	"clock out must be after clock in",
	http.StatusBadRequest,
)

// AttributionPolicy decides which calendar day a midnight-crossing
// shift belongs to. Only start-date attribution is implemented; the
// type exists so a majority-share policy can be added without touching
// the Compute contract.
type AttributionPolicy string

const AttributeToStartDate AttributionPolicy = "start_date"

// Breakdown is the arithmetic result of one completed shift.
type Breakdown struct {
	TotalMinutes    int
	CrossedMidnight bool
	AttributedDate  time.Time
	Formatted       string
}

// Compute derives the worked duration between clock-in and clock-out.
// Calendar comparisons use the organization's timezone, not the
// server's; a UTC-date comparison misattributes any shift near local
// midnight.
func Compute(clockInAt, clockOutAt time.Time, loc *time.Location) (Breakdown, error) {
	if loc == nil {
		loc = time.UTC
	}
	if !clockOutAt.After(clockInAt) {
		return Breakdown{}, ErrInvalidInterval
	}

	totalMinutes := int(math.Round(clockOutAt.Sub(clockInAt).Minutes()))

	localIn := clockInAt.In(loc)
	localOut := clockOutAt.In(loc)

	inY, inM, inD := localIn.Date()
	outY, outM, outD := localOut.Date()
	crossedMidnight := inY != outY || inM != outM || inD != outD

	return Breakdown{
		TotalMinutes:    totalMinutes,
		CrossedMidnight: crossedMidnight,
		AttributedDate:  time.Date(inY, inM, inD, 0, 0, 0, 0, loc),
		Formatted:       FormatMinutes(totalMinutes),
	}, nil
}

// FormatMinutes renders a duration as "{H}h {M}m".
func FormatMinutes(totalMinutes int) string {
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
