package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/codeRisshi25/UrbanPulse/internal/models"
)

// ErrDuplicateNumber reports a write rejected by the unique constraint on
// the phone number. A concurrent duplicate registration surfaces here,
// so exactly one of the racing requests wins.
var ErrDuplicateNumber = errors.New("phone number already registered")

// Users is the gateway to the user tables. Lookups return (nil, nil)
// when no row matches.
type Users interface {
	FindByNumber(ctx context.Context, number string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	CreateWithRole(ctx context.Context, name, number, passwordHash, role string) (*models.User, error)
}

// GormUsers implements Users on a GORM Postgres handle.
type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) FindByNumber(ctx context.Context, number string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Driver").
		Preload("Rider").
		Where("number = ?", number).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by number: %w", err)
	}
	return &user, nil
}

func (s *GormUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Driver").
		Preload("Rider").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// CreateWithRole creates the user row and its role record in a single
// transaction. Either both rows are committed or neither is.
func (s *GormUsers) CreateWithRole(ctx context.Context, name, number, passwordHash, role string) (*models.User, error) {
	user := models.User{
		Name:     name,
		Number:   number,
		Password: passwordHash,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch role {
		case models.RoleDriver:
			driver := models.Driver{UserID: user.ID, IsActive: false}
			if err := tx.Create(&driver).Error; err != nil {
				return err
			}
			user.Driver = &driver
		case models.RoleRider:
			rider := models.Rider{UserID: user.ID}
			if err := tx.Create(&rider).Error; err != nil {
				return err
			}
			user.Rider = &rider
		default:
			return fmt.Errorf("unknown role %q", role)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("create user with role: %w", err)
	}

	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
