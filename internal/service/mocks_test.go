package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"audio-marketplace/internal/client"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// mockStripeClient is a mock implementation of client.StripeClient
type mockStripeClient struct {
	createdSession *model.CheckoutSession
	createErr      error
	createParams   []*client.CheckoutSessionParams

	retrievedSession *model.CheckoutSession
	retrieveErr      error
	retrieveCalls    int
}

func (m *mockStripeClient) CreateCheckoutSession(ctx context.Context, params *client.CheckoutSessionParams) (*model.CheckoutSession, error) {
	m.createParams = append(m.createParams, params)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createdSession, nil
}

func (m *mockStripeClient) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	m.retrieveCalls++
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.retrievedSession, nil
}

// mockPaidAudioRepo is a mock implementation of repository.PaidAudioRepository
type mockPaidAudioRepo struct {
	audio   *model.PaidAudio
	audios  []*model.PaidAudio
	findErr error

	recordSaleErr     error
	recordSaleCalls   int
	recordSaleAmounts []decimal.Decimal
}

func (m *mockPaidAudioRepo) Create(ctx context.Context, audio *model.PaidAudio) error {
	audio.ID = 1
	return nil
}

func (m *mockPaidAudioRepo) FindAll(ctx context.Context) ([]*model.PaidAudio, error) {
	return m.audios, nil
}

func (m *mockPaidAudioRepo) FindByID(ctx context.Context, id uint) (*model.PaidAudio, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.audio == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.audio, nil
}

func (m *mockPaidAudioRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.PaidAudio, error) {
	return m.audio, nil
}

func (m *mockPaidAudioRepo) Delete(ctx context.Context, id uint) (*model.PaidAudio, error) {
	return m.audio, nil
}

func (m *mockPaidAudioRepo) RecordSale(ctx context.Context, id uint, amount decimal.Decimal) error {
	m.recordSaleCalls++
	m.recordSaleAmounts = append(m.recordSaleAmounts, amount)
	return m.recordSaleErr
}

// mockPurchaseRepo is a mock implementation of repository.PurchaseRepository
type mockPurchaseRepo struct {
	created   []*model.PaidAudioPurchase
	createErr error
	// seenSessions simulates the unique session index: a second insert
	// with the same session id reports no row written.
	seenSessions map[string]bool
}

func (m *mockPurchaseRepo) CreateIfAbsent(ctx context.Context, purchase *model.PaidAudioPurchase) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	if m.seenSessions == nil {
		m.seenSessions = map[string]bool{}
	}
	if m.seenSessions[purchase.SessionID] {
		return false, nil
	}
	m.seenSessions[purchase.SessionID] = true
	m.created = append(m.created, purchase)
	return true, nil
}

func (m *mockPurchaseRepo) FindBySessionID(ctx context.Context, sessionID string) (*model.PaidAudioPurchase, error) {
	for _, p := range m.created {
		if p.SessionID == sessionID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPurchaseRepo) FindAll(ctx context.Context) ([]*model.PaidAudioPurchase, error) {
	return m.created, nil
}

// mockCustomRequestRepo is a mock implementation of repository.CustomRequestRepository
type mockCustomRequestRepo struct {
	created      []*model.CustomAudioRequest
	createErr    error
	seenSessions map[string]bool

	updated    *model.CustomAudioRequest
	updateErr  error
	listRows   []*model.CustomAudioRequest
	listTotal  int64
	listErr    error
	sumResult  decimal.Decimal
	lastFilter *repository.CustomRequestFilter
}

func (m *mockCustomRequestRepo) Create(ctx context.Context, request *model.CustomAudioRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	request.ID = uint(len(m.created) + 1)
	m.created = append(m.created, request)
	return nil
}

func (m *mockCustomRequestRepo) CreateIfAbsent(ctx context.Context, request *model.CustomAudioRequest) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	if m.seenSessions == nil {
		m.seenSessions = map[string]bool{}
	}
	if request.SessionID != nil && m.seenSessions[*request.SessionID] {
		return false, nil
	}
	if request.SessionID != nil {
		m.seenSessions[*request.SessionID] = true
	}
	m.created = append(m.created, request)
	return true, nil
}

func (m *mockCustomRequestRepo) FindByID(ctx context.Context, id uint) (*model.CustomAudioRequest, error) {
	for _, r := range m.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomRequestRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.CustomAudioRequest, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updated, nil
}

func (m *mockCustomRequestRepo) List(ctx context.Context, filter *repository.CustomRequestFilter) ([]*model.CustomAudioRequest, int64, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listRows, m.listTotal, nil
}

func (m *mockCustomRequestRepo) SumAmountPaid(ctx context.Context, filter *repository.CustomRequestFilter) (decimal.Decimal, error) {
	return m.sumResult, nil
}

func (m *mockCustomRequestRepo) FindAll(ctx context.Context) ([]*model.CustomAudioRequest, error) {
	return m.created, nil
}

// mockNotifier is a mock implementation of NotificationService
type mockNotifier struct {
	deliveryErr   error
	deliveries    []string
	freeSends     []string
	adminAlertErr error
	adminAlerts   []string
	asyncNotifies []string
}

func (m *mockNotifier) SendPurchaseDelivery(toEmail, title, description, audioURL string) error {
	if m.deliveryErr != nil {
		return m.deliveryErr
	}
	m.deliveries = append(m.deliveries, toEmail)
	return nil
}

func (m *mockNotifier) SendFreeAudioDelivery(toEmail, title, description, audioURL string) error {
	if m.deliveryErr != nil {
		return m.deliveryErr
	}
	m.freeSends = append(m.freeSends, toEmail)
	return nil
}

func (m *mockNotifier) SendAdminPaymentAlert(customerEmail, description string, amountPaid decimal.Decimal, sessionID string) error {
	if m.adminAlertErr != nil {
		return m.adminAlertErr
	}
	m.adminAlerts = append(m.adminAlerts, sessionID)
	return nil
}

func (m *mockNotifier) NotifyAdminRequestAsync(customerEmail, description string) {
	m.asyncNotifies = append(m.asyncNotifies, customerEmail)
}

// mockStorageClient is a mock implementation of client.StorageClient
type mockStorageClient struct {
	uploadErr   error
	uploadCalls int
	lastFolder  string
	lastName    string
	url         string
}

func (m *mockStorageClient) Upload(ctx context.Context, buf []byte, folder, name, contentType string) (string, error) {
	m.uploadCalls++
	m.lastFolder = folder
	m.lastName = name
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	if m.url != "" {
		return m.url, nil
	}
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

// mockFreeAudioRepo is a mock implementation of repository.FreeAudioRepository
type mockFreeAudioRepo struct {
	audio     *model.FreeAudio
	audios    []*model.FreeAudio
	findErr   error
	createErr error
	created   []*model.FreeAudio
}

func (m *mockFreeAudioRepo) Create(ctx context.Context, audio *model.FreeAudio) error {
	if m.createErr != nil {
		return m.createErr
	}
	audio.ID = uint(len(m.created) + 1)
	m.created = append(m.created, audio)
	return nil
}

func (m *mockFreeAudioRepo) FindAll(ctx context.Context) ([]*model.FreeAudio, error) {
	return m.audios, nil
}

func (m *mockFreeAudioRepo) FindByID(ctx context.Context, id uint) (*model.FreeAudio, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.audio == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.audio, nil
}

func (m *mockFreeAudioRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.FreeAudio, error) {
	return m.audio, nil
}

func (m *mockFreeAudioRepo) Delete(ctx context.Context, id uint) (*model.FreeAudio, error) {
	return m.audio, nil
}

// mockDownloadRepo is a mock implementation of repository.DownloadRepository
type mockDownloadRepo struct {
	created   []*model.FreeAudioDownload
	createErr error
}

func (m *mockDownloadRepo) Create(ctx context.Context, download *model.FreeAudioDownload) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, download)
	return nil
}

func (m *mockDownloadRepo) FindAll(ctx context.Context) ([]*model.FreeAudioDownload, error) {
	return m.created, nil
}

// mockUserRepo is a mock implementation of repository.UserRepository
type mockUserRepo struct {
	users     []*model.User
	createErr error

	byEmail        *model.User
	byEmailErr     error
	byReferral     *model.User
	byReferralErr  error
	nonAdmins      []*model.User
	updatePassErr  error
	updatedPassFor uint
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = uint(len(m.users) + 1)
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	if m.byEmail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.byEmail, nil
}

func (m *mockUserRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	if m.byEmail == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.byEmail, nil
}

func (m *mockUserRepo) FindByReferralCode(ctx context.Context, code string) (*model.User, error) {
	if m.byReferralErr != nil {
		return nil, m.byReferralErr
	}
	if m.byReferral == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.byReferral, nil
}

func (m *mockUserRepo) FindNonAdmins(ctx context.Context) ([]*model.User, error) {
	return m.nonAdmins, nil
}

func (m *mockUserRepo) FindManyByID(ctx context.Context, ids []uint) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		for _, u := range m.users {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.updatePassErr != nil {
		return m.updatePassErr
	}
	m.updatedPassFor = id
	return nil
}
