package repository

import (
	"context"

	"github.com/acueductoapp/acueducto/internal/customer/domain"
	"github.com/acueductoapp/acueducto/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (
			id, contract, meter_number, name, last_name, email, phone, address, zone,
			category, current_reading, last_reading_date, credit, credit_description,
			extra_charges, extra_charges_description, metadata, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Contract,
		customer.MeterNumber,
		customer.Name,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.Zone,
		customer.Category,
		customer.CurrentReading,
		customer.LastReadingDate,
		customer.Credit,
		customer.CreditDescription,
		customer.ExtraCharges,
		customer.ExtraChargesDescription,
		customer.Metadata,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers SET
			meter_number = ?, name = ?, last_name = ?, email = ?, phone = ?,
			address = ?, zone = ?, category = ?, current_reading = ?,
			last_reading_date = ?, credit = ?, credit_description = ?,
			extra_charges = ?, extra_charges_description = ?, updated_at = ?
		 WHERE contract = ?`,
		customer.MeterNumber,
		customer.Name,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.Zone,
		customer.Category,
		customer.CurrentReading,
		customer.LastReadingDate,
		customer.Credit,
		customer.CreditDescription,
		customer.ExtraCharges,
		customer.ExtraChargesDescription,
		customer.UpdatedAt,
		customer.Contract,
	).Error
}

func (r *repo) FindByContract(ctx context.Context, db *gorm.DB, contract string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM customers WHERE contract = ?`,
		contract,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("contract LIKE ? OR address LIKE ?", like, like)
	}
	if filter.Zone != "" {
		stmt = stmt.Where("zone = ?", filter.Zone)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM customers ORDER BY contract ASC`,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, contract string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM customers WHERE contract = ?`,
		contract,
	)
	return result.RowsAffected, result.Error
}
