package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/mpgepmc/welfare_backend/models"
	"gorm.io/gorm"
)

const OrderNumberPrefix = "MPGepmc"

const orderNumberSuffixLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Collisions are astronomically unlikely, but the loop is still capped so a
// saturated test database cannot spin forever.
const maxOrderNumberAttempts = 25

var ErrOrderNumberExhausted = errors.New("could not generate a unique donation order number")

func GenerateUniqueOrderNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	return generateUniqueOrderNumber(tx, seededRand)
}

func generateUniqueOrderNumber(tx *gorm.DB, r *rand.Rand) (string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		orderNumber := randomOrderNumber(r)

		var donation models.Donation
		err := tx.Where("order_number = ?", orderNumber).First(&donation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return orderNumber, nil
			}
			return "", err
		}
	}
	return "", ErrOrderNumberExhausted
}

func randomOrderNumber(r *rand.Rand) string {
	b := make([]byte, orderNumberSuffixLength)
	for i := range b {
		b[i] = letterBytes[r.Intn(len(letterBytes))]
	}
	return fmt.Sprintf("%s-%s", OrderNumberPrefix, string(b))
}
