package seed

import "gorm.io/gorm"

// BillingConfigKey identifies the singleton counter row.
const BillingConfigKey = "billing"

// EnsureBillingConfig creates the invoice counter row when absent. The
// counter itself is only ever advanced under a row lock at issue time.
func EnsureBillingConfig(conn *gorm.DB) error {
	return conn.Exec(
		`INSERT INTO billing_config (key, last_invoice_number)
		 VALUES (?, 0)
		 ON CONFLICT (key) DO NOTHING`,
		BillingConfigKey,
	).Error
}
