package doctors

import (
	"context"
	"errors"
	"io"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryDoctors persists profiles by id so consecutive transitions can be observed.
type memoryDoctors struct {
	profiles map[string]models.DoctorProfile
}

func newMemoryDoctors(profiles ...models.DoctorProfile) *memoryDoctors {
	store := &memoryDoctors{profiles: map[string]models.DoctorProfile{}}
	for _, profile := range profiles {
		store.profiles[profile.ID] = profile
	}
	return store
}

func (m *memoryDoctors) Create(ctx context.Context, profile *models.DoctorProfile) (string, error) {
	profile.ID = "doctor-new"
	m.profiles[profile.ID] = *profile
	return profile.ID, nil
}

func (m *memoryDoctors) FindByID(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	profile, ok := m.profiles[doctorID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *memoryDoctors) FindByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	for _, profile := range m.profiles {
		if profile.UserID == userID {
			found := profile
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryDoctors) List(ctx context.Context, filter contracts.DoctorListFilter) ([]models.DoctorProfile, error) {
	var result []models.DoctorProfile
	for _, profile := range m.profiles {
		if filter.OnlyApproved && !profile.Approved {
			continue
		}
		if filter.Specialty != nil && (profile.Specialty == nil || !strings.EqualFold(*profile.Specialty, *filter.Specialty)) {
			continue
		}
		result = append(result, profile)
	}
	return result, nil
}

func (m *memoryDoctors) ListByStatus(ctx context.Context, status string) ([]models.DoctorProfile, error) {
	var result []models.DoctorProfile
	for _, profile := range m.profiles {
		if profile.ApprovalStatus == status {
			result = append(result, profile)
		}
	}
	return result, nil
}

func (m *memoryDoctors) Submit(ctx context.Context, profile *models.DoctorProfile) error {
	m.profiles[profile.ID] = *profile
	return nil
}

func (m *memoryDoctors) Decide(ctx context.Context, profile *models.DoctorProfile) error {
	m.profiles[profile.ID] = *profile
	return nil
}

func stringPtr(value string) *string {
	return &value
}

func pendingDoctor(id, userID string) models.DoctorProfile {
	profile := models.DoctorProfile{ID: id, UserID: userID, Email: userID + "@x.com"}
	profile.SetApprovalStatus(constvars.ApprovalStatusPending)
	return profile
}

func newTestDoctorUsecase(store contracts.DoctorRepository) (*doctorUsecase, *mocks.StorageService, *mocks.NotificationUsecase) {
	storage := new(mocks.StorageService)
	notifications := new(mocks.NotificationUsecase)
	usecase := NewDoctorUsecase(store, storage, notifications, zap.NewNop()).(*doctorUsecase)
	usecase.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return usecase, storage, notifications
}

func targeting(userID string) interface{} {
	return mock.MatchedBy(func(target *string) bool { return target != nil && *target == userID })
}

func TestDoctorUsecase_ApprovalTransitionsKeepApprovedConsistent(t *testing.T) {
	store := newMemoryDoctors(pendingDoctor("D1", "U-doc"))
	usecase, _, notifications := newTestDoctorUsecase(store)
	admin := &models.User{ID: "A1", Role: constvars.RoleAdministrator}
	notifications.On("Notify", mock.Anything, targeting("U-doc"), mock.Anything, constvars.NotificationCategoryApproval).Return(&models.Notification{}, nil)

	initial, _ := store.FindByID(context.Background(), "D1")
	assert.Equal(t, constvars.ApprovalStatusPending, initial.ApprovalStatus)
	assert.False(t, initial.Approved)

	approved, err := usecase.DecideApproval(context.Background(), admin, "D1", &requests.DecideApproval{Decision: constvars.ApprovalStatusApproved})
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, constvars.ApprovalStatusApproved, store.profiles["D1"].ApprovalStatus)
	assert.True(t, store.profiles["D1"].Approved)
	assert.Equal(t, "A1", *store.profiles["D1"].ReviewedBy)

	rejected, err := usecase.DecideApproval(context.Background(), admin, "D1", &requests.DecideApproval{
		Decision: constvars.ApprovalStatusRejected,
		Notes:    stringPtr("licence expired"),
	})
	require.NoError(t, err)
	assert.False(t, rejected.Approved)
	assert.Equal(t, constvars.ApprovalStatusRejected, rejected.ApprovalStatus)
	assert.False(t, store.profiles["D1"].Approved)

	notifications.AssertNumberOfCalls(t, "Notify", 2)
	notifications.AssertCalled(t, "Notify", mock.Anything, targeting("U-doc"), "Your doctor profile was rejected. licence expired", constvars.NotificationCategoryApproval)
}

func TestDoctorUsecase_DecideApprovalUnknownDoctor(t *testing.T) {
	usecase, _, _ := newTestDoctorUsecase(newMemoryDoctors())

	_, err := usecase.DecideApproval(context.Background(), &models.User{ID: "A1", Role: constvars.RoleAdministrator}, "missing", &requests.DecideApproval{Decision: constvars.ApprovalStatusApproved})
	assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
}

func TestDoctorUsecase_DecideApprovalNotificationFailureIsIgnored(t *testing.T) {
	store := newMemoryDoctors(pendingDoctor("D1", "U-doc"))
	usecase, _, notifications := newTestDoctorUsecase(store)
	notifications.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	result, err := usecase.DecideApproval(context.Background(), &models.User{ID: "A1"}, "D1", &requests.DecideApproval{Decision: constvars.ApprovalStatusApproved})
	require.NoError(t, err)
	assert.True(t, result.Approved)
}

func TestDoctorUsecase_SubmitProfile(t *testing.T) {
	doctor := &models.User{ID: "U-doc", Email: "doc@x.com", Role: constvars.RoleDoctor}
	base := &requests.SubmitDoctorProfile{Qualifications: "MBChB", LicenceID: "KMPDC-1"}

	t.Run("missing evidence", func(t *testing.T) {
		store := newMemoryDoctors(pendingDoctor("D1", "U-doc"))
		usecase, storage, notifications := newTestDoctorUsecase(store)

		request := *base
		_, err := usecase.SubmitProfile(context.Background(), doctor, &request)
		assert.Equal(t, exceptions.CodeMissingEvidence, exceptions.CodeOf(err))
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifications.AssertNotCalled(t, "NotifyAdministrators", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploaded file resets review", func(t *testing.T) {
		rejected := pendingDoctor("D1", "U-doc")
		rejected.SetApprovalStatus(constvars.ApprovalStatusRejected)
		rejected.ApprovalNotes = stringPtr("blurry scan")
		store := newMemoryDoctors(rejected)
		usecase, storage, notifications := newTestDoctorUsecase(store)

		storage.On("UploadFile", mock.Anything, mock.Anything, int64(7), "application/pdf", mock.MatchedBy(func(objectName string) bool {
			return strings.HasPrefix(objectName, "evidence/D1/") && strings.HasSuffix(objectName, ".pdf")
		})).Return("evidence/D1/licence.pdf", nil)
		notifications.On("NotifyAdministrators", mock.Anything, "Doctor doc@x.com submitted a profile and is awaiting approval.", constvars.NotificationCategoryApproval).Return(nil)

		request := *base
		request.Evidence = &requests.EvidenceFile{Reader: strings.NewReader("pdfdata"), Size: 7, FileName: "Licence.PDF", ContentType: "application/pdf"}
		result, err := usecase.SubmitProfile(context.Background(), doctor, &request)
		require.NoError(t, err)
		assert.True(t, result.HasEvidence)
		assert.Equal(t, constvars.ApprovalStatusPending, result.ApprovalStatus)
		assert.False(t, result.Approved)
		assert.Nil(t, store.profiles["D1"].ApprovalNotes)
		assert.Equal(t, "evidence/D1/licence.pdf", *store.profiles["D1"].EvidenceRef)
		notifications.AssertExpectations(t)
	})

	t.Run("evidence url without a file", func(t *testing.T) {
		store := newMemoryDoctors(pendingDoctor("D1", "U-doc"))
		usecase, storage, notifications := newTestDoctorUsecase(store)
		notifications.On("NotifyAdministrators", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nobody to notify"))

		request := *base
		request.EvidenceURL = stringPtr("https://registry.example/licence/1")
		result, err := usecase.SubmitProfile(context.Background(), doctor, &request)
		require.NoError(t, err)
		assert.True(t, result.HasEvidence)
		assert.Nil(t, store.profiles["D1"].EvidenceRef)
		storage.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDoctorUsecase_ListDoctors(t *testing.T) {
	approved := pendingDoctor("D1", "U1")
	approved.SetApprovalStatus(constvars.ApprovalStatusApproved)
	approved.Specialty = stringPtr("Cardiology")
	pending := pendingDoctor("D2", "U2")
	pending.Specialty = stringPtr("cardiology")
	store := newMemoryDoctors(approved, pending)
	usecase, _, _ := newTestDoctorUsecase(store)

	t.Run("anonymous callers see approved only", func(t *testing.T) {
		items, err := usecase.ListDoctors(context.Background(), nil, &requests.ListDoctors{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "D1", items[0].DoctorID)
		assert.Empty(t, items[0].ApprovalStatus)
	})

	t.Run("patients see approved only", func(t *testing.T) {
		items, err := usecase.ListDoctors(context.Background(), &models.User{ID: "P1", Role: constvars.RolePatient}, &requests.ListDoctors{Specialty: "CARDIOLOGY"})
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("administrators see everything", func(t *testing.T) {
		items, err := usecase.ListDoctors(context.Background(), &models.User{ID: "A1", Role: constvars.RoleAdministrator}, &requests.ListDoctors{Specialty: "cardiology"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
		for _, item := range items {
			assert.NotEmpty(t, item.ApprovalStatus)
			assert.Equal(t, item.ApprovalStatus == constvars.ApprovalStatusApproved, item.Approved)
		}
	})
}

func TestDoctorUsecase_ListPendingDoctors(t *testing.T) {
	approved := pendingDoctor("D1", "U1")
	approved.SetApprovalStatus(constvars.ApprovalStatusApproved)
	store := newMemoryDoctors(approved, pendingDoctor("D2", "U2"))
	usecase, _, _ := newTestDoctorUsecase(store)

	pending, err := usecase.ListPendingDoctors(context.Background(), &models.User{ID: "A1", Role: constvars.RoleAdministrator})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "D2", pending[0].DoctorID)
}

func TestDoctorUsecase_DownloadEvidence(t *testing.T) {
	withFile := pendingDoctor("D1", "U1")
	withFile.EvidenceRef = stringPtr("evidence/D1/file.pdf")
	withURL := pendingDoctor("D2", "U2")
	withURL.EvidenceURL = stringPtr("https://registry.example/licence/2")
	store := newMemoryDoctors(withFile, withURL, pendingDoctor("D3", "U3"))

	t.Run("administrator streams the stored object", func(t *testing.T) {
		usecase, storage, _ := newTestDoctorUsecase(store)
		storage.On("GetFile", mock.Anything, "evidence/D1/file.pdf").Return(io.NopCloser(strings.NewReader("pdf")), &contracts.StoredObjectInfo{Size: 3, ContentType: "application/pdf"}, nil)

		download, err := usecase.DownloadEvidence(context.Background(), &models.User{ID: "A1", Role: constvars.RoleAdministrator}, "D1")
		require.NoError(t, err)
		defer download.Content.Close()
		assert.Equal(t, "file.pdf", download.FileName)
		assert.Equal(t, "application/pdf", download.ContentType)
		assert.Empty(t, download.RedirectURL)
	})

	t.Run("owner gets a redirect for url evidence", func(t *testing.T) {
		usecase, _, _ := newTestDoctorUsecase(store)

		download, err := usecase.DownloadEvidence(context.Background(), &models.User{ID: "U2", Role: constvars.RoleDoctor}, "D2")
		require.NoError(t, err)
		assert.Equal(t, "https://registry.example/licence/2", download.RedirectURL)
	})

	t.Run("another doctor is forbidden", func(t *testing.T) {
		usecase, _, _ := newTestDoctorUsecase(store)

		_, err := usecase.DownloadEvidence(context.Background(), &models.User{ID: "U2", Role: constvars.RoleDoctor}, "D1")
		assert.Equal(t, exceptions.CodeForbidden, exceptions.CodeOf(err))
	})

	t.Run("no evidence on file", func(t *testing.T) {
		usecase, _, _ := newTestDoctorUsecase(store)

		_, err := usecase.DownloadEvidence(context.Background(), &models.User{ID: "U3", Role: constvars.RoleDoctor}, "D3")
		assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
	})
}
