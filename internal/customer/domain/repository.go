package domain

import (
	"context"

	"github.com/acueductoapp/acueducto/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByContract(ctx context.Context, db *gorm.DB, contract string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]*Customer, error)
	Delete(ctx context.Context, db *gorm.DB, contract string) (int64, error)
}
