package queries

const (
	userColumns = `id, name, email, phone, password_hash, is_verified, role, created_at, updated_at`

	CreateUser = `
		INSERT INTO users (name, email, phone, password_hash, is_verified, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	GetUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	GetUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	GetUserByPhone = `SELECT ` + userColumns + ` FROM users WHERE phone = $1`

	GetUsersByRole = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at ASC`

	CountUsersByRole = `SELECT COUNT(*) FROM users WHERE role = $1`

	UpdateUserProfile = `
		UPDATE users
		SET name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	MarkUserVerified = `UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`

	// AcquireBootstrapAdministratorLock serializes concurrent bootstrap runs
	// for the lifetime of the surrounding transaction.
	AcquireBootstrapAdministratorLock = `SELECT pg_advisory_xact_lock(hashtext('bootstrap-administrator'))`
)
