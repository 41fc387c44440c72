package routers

import (
	"bytes"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/app/delivery/http/controllers"
	"medconsult-service/internal/app/delivery/http/middlewares"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/app/services/core/roles"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const doctorID = "7b0c8a2e-2f4a-4a57-9d55-3b5d8f0c1a11"

type testServer struct {
	router        *chi.Mux
	auth          *mocks.AuthUsecase
	doctors       *mocks.DoctorUsecase
	appointments  *mocks.AppointmentUsecase
	payments      *mocks.PaymentUsecase
	notifications *mocks.NotificationUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:          "api",
			Version:                 "v1",
			OTPMaxRequestsPerMinute: 2,
			OTPBlockTimeInMinutes:   5,
		},
		Daraja: config.AppDaraja{CallbackToken: "s3cret"},
	}

	server := &testServer{
		router:        chi.NewRouter(),
		auth:          new(mocks.AuthUsecase),
		doctors:       new(mocks.DoctorUsecase),
		appointments:  new(mocks.AppointmentUsecase),
		payments:      new(mocks.PaymentUsecase),
		notifications: new(mocks.NotificationUsecase),
	}
	server.auth.On("Authenticate", mock.Anything, "patient-token").Return(&models.User{ID: "p1", Role: constvars.RolePatient}, nil).Maybe()
	server.auth.On("Authenticate", mock.Anything, "admin-token").Return(&models.User{ID: "a1", Role: constvars.RoleAdministrator}, nil).Maybe()

	mw := middlewares.NewMiddlewares(logger, server.auth, roles.NewGuard(), internalConfig)
	SetupRoutes(
		server.router,
		internalConfig,
		mw,
		controllers.NewAuthController(logger, server.auth, internalConfig),
		controllers.NewUserController(logger, new(mocks.UserUsecase), internalConfig),
		controllers.NewConsultationServiceController(logger, new(mocks.ConsultationServiceUsecase), internalConfig),
		controllers.NewDoctorController(logger, server.doctors, internalConfig),
		controllers.NewAppointmentController(logger, server.appointments, server.payments, internalConfig),
		controllers.NewPaymentController(logger, server.payments, internalConfig),
		controllers.NewNotificationController(logger, server.notifications, internalConfig),
	)
	return server
}

func (s *testServer) do(method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.10:40000"
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Signup(t *testing.T) {
	server := newTestServer(t)
	server.auth.On("Signup", mock.Anything, mock.MatchedBy(func(request *requests.Signup) bool {
		return request.Email == "ann@example.com" && request.Phone == "254712345678"
	})).Return(&responses.Signup{UserID: "u1", Role: constvars.RolePatient}, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    " Ann@Example.com ",
		"phone":    "+254 712 345 678",
		"password": "Str0ng!Pass",
	})
	rr := server.do("POST", "/api/v1/auth/signup", "", body)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	server.auth.AssertExpectations(t)
}

func TestRouter_SignupAcceptsLocalPhoneFormat(t *testing.T) {
	server := newTestServer(t)
	server.auth.On("Signup", mock.Anything, mock.MatchedBy(func(request *requests.Signup) bool {
		return request.Phone == "254700000001"
	})).Return(&responses.Signup{UserID: "u1", Role: constvars.RolePatient}, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    "a@x.com",
		"phone":    "0700000001",
		"password": "Str0ng!Pass",
	})
	rr := server.do("POST", "/api/v1/auth/signup", "", body)

	assert.Equal(t, http.StatusCreated, rr.Code)
	server.auth.AssertExpectations(t)
}

func TestRouter_SignupValidation(t *testing.T) {
	server := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"email": "not-an-email", "phone": "1", "password": "weak"})
	rr := server.do("POST", "/api/v1/auth/signup", "", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	server.auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestRouter_ApprovalRequiresAdministrator(t *testing.T) {
	server := newTestServer(t)
	server.doctors.On("DecideApproval", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
		return user.ID == "a1"
	}), doctorID, mock.Anything).Return(&responses.DoctorProfile{DoctorID: doctorID, ApprovalStatus: constvars.ApprovalStatusApproved, Approved: true}, nil)

	body := []byte(`{"decision":"approved"}`)

	rr := server.do("PUT", "/api/v1/doctors/"+doctorID+"/approval", "patient-token", body)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	server.doctors.AssertNotCalled(t, "DecideApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	rr = server.do("PUT", "/api/v1/doctors/"+doctorID+"/approval", "", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = server.do("PUT", "/api/v1/doctors/"+doctorID+"/approval", "admin-token", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data responses.DoctorProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Approved)
}

func TestRouter_InvalidDoctorID(t *testing.T) {
	server := newTestServer(t)

	rr := server.do("PUT", "/api/v1/doctors/not-a-uuid/approval", "admin-token", []byte(`{"decision":"approved"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_PublicDoctorListing(t *testing.T) {
	server := newTestServer(t)
	server.doctors.On("ListDoctors", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
		return user == nil
	}), &requests.ListDoctors{Specialty: "cardiology"}).Return([]responses.DoctorListItem{{DoctorID: doctorID, Approved: true}}, nil)

	rr := server.do("GET", "/api/v1/doctors?specialty=cardiology", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	server.doctors.AssertExpectations(t)
}

func TestRouter_RequestPaymentWithoutBody(t *testing.T) {
	server := newTestServer(t)
	appointmentID := "0f5b6f9e-58a3-4c39-8d3b-2f8e4c9a7d10"
	server.payments.On("RequestPayment", mock.Anything, mock.Anything, appointmentID, &requests.RequestPayment{}).
		Return(&responses.RequestPayment{AppointmentID: appointmentID, PaymentStatus: constvars.PaymentStatusPaid}, nil)

	rr := server.do("POST", "/api/v1/appointments/"+appointmentID+"/payment", "patient-token", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = server.do("POST", "/api/v1/appointments/"+appointmentID+"/payment", "admin-token", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	server.payments.AssertNumberOfCalls(t, "RequestPayment", 1)
}

func TestRouter_PaymentCallbackToken(t *testing.T) {
	server := newTestServer(t)
	payload := []byte(`{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":0}}}`)
	server.payments.On("HandleCallback", mock.Anything, payload).Return(&responses.DarajaCallbackAck{ResultCode: 0, ResultDesc: "Accepted"})

	rr := server.do("POST", "/api/v1/payments/callback?token=wrong", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	server.payments.AssertNotCalled(t, "HandleCallback", mock.Anything, mock.Anything)

	rr = server.do("POST", "/api/v1/payments/callback?token=s3cret", "", payload)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ResultCode":0,"ResultDesc":"Accepted"}`, rr.Body.String())
}

func TestRouter_OTPEndpointsAreRateLimited(t *testing.T) {
	server := newTestServer(t)
	server.auth.On("SendOTP", mock.Anything, mock.Anything).Return(nil)

	body := []byte(`{"email":"ann@example.com","channel":"email"}`)
	assert.Equal(t, http.StatusOK, server.do("POST", "/api/v1/auth/otp/send", "", body).Code)
	assert.Equal(t, http.StatusOK, server.do("POST", "/api/v1/auth/otp/send", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, server.do("POST", "/api/v1/auth/otp/send", "", body).Code)
}

func TestRouter_NotificationsMarkRead(t *testing.T) {
	server := newTestServer(t)
	notificationID := "3c1d2e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"
	server.notifications.On("MarkRead", mock.Anything, mock.Anything, notificationID).Return(nil)

	rr := server.do("PUT", "/api/v1/notifications/"+notificationID+"/read", "patient-token", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	server.notifications.AssertExpectations(t)
}
