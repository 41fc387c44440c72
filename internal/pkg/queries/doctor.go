package queries

const (
	doctorColumns = `
		d.id, d.user_id, d.email, u.name, d.specialty, d.gender, d.qualifications, d.licence_id,
		d.evidence_ref, d.evidence_url, d.approval_status, d.approval_notes, d.approved,
		d.reviewed_by, d.reviewed_at, d.created_at, d.updated_at`

	doctorFrom = ` FROM doctor_profiles d JOIN users u ON u.id = d.user_id`

	CreateDoctorProfile = `
		INSERT INTO doctor_profiles (user_id, email, specialty, gender, approval_status, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'pending', FALSE, NOW(), NOW())
		RETURNING id`

	GetDoctorProfileByID     = `SELECT ` + doctorColumns + doctorFrom + ` WHERE d.id = $1`
	GetDoctorProfileByUserID = `SELECT ` + doctorColumns + doctorFrom + ` WHERE d.user_id = $1`

	// $1 restricts to approved rows when TRUE, $2 filters specialty case-insensitively when not NULL.
	ListDoctorProfiles = `SELECT ` + doctorColumns + doctorFrom + `
		WHERE ($1::BOOLEAN = FALSE OR d.approved = TRUE)
		  AND ($2::TEXT IS NULL OR LOWER(d.specialty) = LOWER($2::TEXT))
		ORDER BY d.created_at DESC`

	ListDoctorProfilesByStatus = `SELECT ` + doctorColumns + doctorFrom + `
		WHERE d.approval_status = $1
		ORDER BY d.updated_at ASC`

	SubmitDoctorProfile = `
		UPDATE doctor_profiles
		SET qualifications = $2,
		    licence_id = $3,
		    evidence_ref = $4,
		    evidence_url = $5,
		    specialty = COALESCE($6, specialty),
		    gender = COALESCE($7, gender),
		    approval_status = 'pending',
		    approved = FALSE,
		    approval_notes = NULL,
		    reviewed_by = NULL,
		    reviewed_at = NULL,
		    updated_at = NOW()
		WHERE id = $1`

	DecideDoctorApproval = `
		UPDATE doctor_profiles
		SET approval_status = $2,
		    approved = $3,
		    approval_notes = $4,
		    reviewed_by = $5,
		    reviewed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1`
)
