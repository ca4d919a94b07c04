package database

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	constraintEmailUnique = "applicants_email_key"
	constraintPhoneUnique = "applicants_phone_key"
)

const schema = `
CREATE TABLE IF NOT EXISTS applicants (
	id               UUID PRIMARY KEY,
	name             VARCHAR(100) NOT NULL,
	email            VARCHAR(100) NOT NULL,
	phone            VARCHAR(20)  NOT NULL,
	city             VARCHAR(100) NOT NULL,
	region           VARCHAR(100) NOT NULL,
	application_date DATE         NOT NULL DEFAULT CURRENT_DATE,
	workflow_state   VARCHAR(100) NOT NULL DEFAULT 'applied',
	created_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	CONSTRAINT applicants_email_key UNIQUE (email),
	CONSTRAINT applicants_phone_key UNIQUE (phone)
);

CREATE INDEX IF NOT EXISTS applicants_application_date_idx ON applicants (application_date);
`

// EnsureSchema creates the applicants table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create applicants schema: %w", err)
	}
	return nil
}
