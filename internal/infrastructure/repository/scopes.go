package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy returns a GORM scope that restricts a query to one user's rows.
// A nil user matches nothing, so a missing identity never widens a query.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", userID)
	}
}

// Search returns a scope matching term against customer name or item type.
func Search(term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		like := "%" + escapeLike(term) + "%"
		return db.Where(`customer_name ILIKE ? ESCAPE '\' OR item_type ILIKE ? ESCAPE '\'`, like, like)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// DateBetween returns a scope on transaction_date. Nil bounds are open.
func DateBetween(start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where("transaction_date >= ?", start.Format("2006-01-02"))
		}
		if end != nil {
			db = db.Where("transaction_date <= ?", end.Format("2006-01-02"))
		}
		return db
	}
}

// Newest orders transactions the way history is listed.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("transaction_date DESC").Order("created_at DESC").Order("id DESC")
}
