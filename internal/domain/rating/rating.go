package rating

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/PedrohFolster/inkspiration/internal/httperr"
)

const (
	MinScore             = 1
	MaxScore             = 5
	MaxDescriptionLength = 500
)

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return httperr.ErrInvalidArgument("score", "must be an integer between 1 and 5")
	}
	return nil
}

func ValidateDescription(description string) error {
	d := strings.TrimSpace(description)
	if d == "" {
		return httperr.ErrInvalidArgument("description", "must not be empty")
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLength {
		return httperr.ErrInvalidArgument("description", "must be at most 500 characters")
	}
	return nil
}

// Average is sum/count rounded to 2 places; zero ratings average 0.
func Average(sum, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(2)
}
