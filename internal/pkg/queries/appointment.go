package queries

const (
	appointmentColumns = `
		id, patient_id, doctor_id, service_id, gender, symptoms, details, status, payment_status,
		fee_amount, payment_reference, payer_phone, payment_message, payment_requested_at,
		assigned_by, assigned_at, created_at, updated_at`

	CreateAppointment = `
		INSERT INTO appointments (patient_id, doctor_id, service_id, gender, symptoms, details, status, payment_status, fee_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', 'pending', $7, NOW(), NOW())
		RETURNING ` + appointmentColumns

	GetAppointmentByID = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	GetAppointmentByPaymentReference = `SELECT ` + appointmentColumns + ` FROM appointments WHERE payment_reference = $1`

	ListAppointmentsByPatient = `SELECT ` + appointmentColumns + ` FROM appointments WHERE patient_id = $1 ORDER BY created_at DESC`
	ListAppointmentsByDoctor  = `SELECT ` + appointmentColumns + ` FROM appointments WHERE doctor_id = $1 ORDER BY created_at DESC`
	ListAllAppointments       = `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`

	// ListAwaitingSettlement returns pending pushes that the provider accepted
	// before $1 and that have not been settled by a callback yet.
	ListAwaitingSettlement = `SELECT ` + appointmentColumns + ` FROM appointments
		WHERE payment_status = 'pending'
		  AND payment_reference IS NOT NULL
		  AND payment_requested_at < $1
		ORDER BY payment_requested_at ASC
		LIMIT $2`

	// UpdatePaymentStatusFromPending only moves rows that are still pending,
	// so payment_status never goes backward.
	UpdatePaymentStatusFromPending = `
		UPDATE appointments
		SET payment_status = $2,
		    payment_message = COALESCE($3, payment_message),
		    updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'`

	// RecordPaymentRequest never replaces an outstanding checkout id, so a
	// callback for an earlier push always finds its appointment.
	RecordPaymentRequest = `
		UPDATE appointments
		SET payment_reference = $2,
		    payer_phone = $3,
		    payment_message = $4,
		    payment_requested_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending' AND payment_reference IS NULL`

	AssignAppointmentDoctor = `
		UPDATE appointments
		SET doctor_id = $2, assigned_by = $3, assigned_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + appointmentColumns
)
