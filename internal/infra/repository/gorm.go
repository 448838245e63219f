package repository

import (
	"errors"

	"gorm.io/gorm"
)

// first runs q.First and maps "no rows" to (nil, nil).
func first[T any](q *gorm.DB, conds ...any) (*T, error) {
	var out T
	if err := q.First(&out, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
