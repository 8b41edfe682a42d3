package services

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/repositories"
)

// In-memory repository fakes. They implement the same targeted-update
// contracts as the MongoDB implementations, including the conditional
// primary-NGO claim.

type fakeDonationRepo struct {
	mu        sync.Mutex
	donations map[primitive.ObjectID]*models.Donation
	createErr error
}

var _ repositories.DonationRepository = (*fakeDonationRepo)(nil)

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[primitive.ObjectID]*models.Donation)}
}

func (r *fakeDonationRepo) Create(ctx context.Context, donation *models.Donation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	donation.ID = primitive.NewObjectID()
	copied := *donation
	r.donations[donation.ID] = &copied
	return nil
}

func (r *fakeDonationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *d
	copied.AssignedNGOs = append([]models.Assignment{}, d.AssignedNGOs...)
	copied.ActivityLog = append([]models.ActivityEntry{}, d.ActivityLog...)
	return &copied, nil
}

func (r *fakeDonationRepo) FindByDonor(ctx context.Context, donorID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Donation
	for _, d := range r.donations {
		if d.DonorID == donorID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDonationRepo) FindByNGO(ctx context.Context, ngoID primitive.ObjectID, page, limit int) ([]*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Donation
	for _, d := range r.donations {
		if d.AssignmentFor(ngoID) != nil {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDonationRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Donation
	for _, d := range r.donations {
		copied := *d
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDonationRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.donations)), nil
}

func (r *fakeDonationRepo) UpdateAssignment(ctx context.Context, donationID, ngoID primitive.ObjectID, assignment models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[donationID]
	if !ok {
		return models.ErrNotFound
	}
	for i := range d.AssignedNGOs {
		if d.AssignedNGOs[i].NGOID == ngoID {
			d.AssignedNGOs[i] = assignment
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeDonationRepo) AppendActivity(ctx context.Context, donationID primitive.ObjectID, entry models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[donationID]
	if !ok {
		return models.ErrNotFound
	}
	d.ActivityLog = append(d.ActivityLog, entry)
	return nil
}

func (r *fakeDonationRepo) SetStatus(ctx context.Context, donationID primitive.ObjectID, status models.DonationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[donationID]
	if !ok {
		return models.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *fakeDonationRepo) SetPrimaryNGOIfUnset(ctx context.Context, donationID, ngoID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[donationID]
	if !ok {
		return false, models.ErrNotFound
	}
	if d.PrimaryNGOID != nil || d.Status != models.DonationStatusPending {
		return false, nil
	}
	id := ngoID
	d.PrimaryNGOID = &id
	d.Status = models.DonationStatusAccepted
	return true, nil
}

type fakeNGORepo struct {
	mu      sync.Mutex
	ngos    []*models.NGO
	nearErr error
}

var _ repositories.NGORepository = (*fakeNGORepo)(nil)

func newFakeNGORepo() *fakeNGORepo {
	return &fakeNGORepo{}
}

func (r *fakeNGORepo) Create(ctx context.Context, ngo *models.NGO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ngo.ID = primitive.NewObjectID()
	copied := *ngo
	r.ngos = append(r.ngos, &copied)
	return nil
}

func (r *fakeNGORepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.NGO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.ngos {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeNGORepo) FindAll(ctx context.Context, activeOnly bool, page, limit int) ([]*models.NGO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.NGO
	for _, n := range r.ngos {
		if activeOnly && !n.Active {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

// FindActiveNear returns active NGOs in insertion order. The distance filter
// is left to the ranking pass, as with the real geo query's over-fetch.
func (r *fakeNGORepo) FindActiveNear(ctx context.Context, location models.GeoLocation, radiusMeters float64, limit int) ([]*models.NGO, error) {
	if r.nearErr != nil {
		return nil, r.nearErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.NGO
	for _, n := range r.ngos {
		if !n.Active {
			continue
		}
		copied := *n
		out = append(out, &copied)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeNGORepo) Update(ctx context.Context, ngo *models.NGO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.ngos {
		if n.ID == ngo.ID {
			copied := *ngo
			r.ngos[i] = &copied
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeNGORepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.ngos)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = primitive.NewObjectID()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *u
	copied.Badges = append([]primitive.ObjectID{}, u.Badges...)
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SaveProgression(ctx context.Context, userID primitive.ObjectID, points, level int, badges []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.Points = points
	u.Level = level
	u.Badges = append([]primitive.ObjectID{}, badges...)
	return nil
}

func (r *fakeUserRepo) IncrementVolunteerHours(ctx context.Context, userID primitive.ObjectID, hours float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.VolunteerHours += hours
	return nil
}

func (r *fakeUserRepo) FindTopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

type fakeBadgeRepo struct {
	mu        sync.Mutex
	badges    map[string]*models.Badge
	upsertErr error
}

var _ repositories.BadgeRepository = (*fakeBadgeRepo)(nil)

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{badges: make(map[string]*models.Badge)}
}

func (r *fakeBadgeRepo) UpsertByName(ctx context.Context, badge *models.Badge) (*models.Badge, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.badges[badge.Name]; ok {
		copied := *existing
		return &copied, nil
	}
	badge.ID = primitive.NewObjectID()
	copied := *badge
	r.badges[badge.Name] = &copied
	result := copied
	return &result, nil
}

func (r *fakeBadgeRepo) FindByName(ctx context.Context, name string) (*models.Badge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.badges[name]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBadgeRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Badge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Badge
	for _, id := range ids {
		for _, b := range r.badges {
			if b.ID == id {
				copied := *b
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

type fakeCertificateRepo struct {
	mu    sync.Mutex
	certs []*models.Certificate
}

var _ repositories.CertificateRepository = (*fakeCertificateRepo)(nil)

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{}
}

func (r *fakeCertificateRepo) Create(ctx context.Context, cert *models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert.ID = primitive.NewObjectID()
	copied := *cert
	r.certs = append(r.certs, &copied)
	return nil
}

func (r *fakeCertificateRepo) FindByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Certificate
	for _, c := range r.certs {
		if c.RecipientID == recipientID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakePointRepo struct {
	mu           sync.Mutex
	transactions []*models.PointTransaction
	createErr    error
}

var _ repositories.PointTransactionRepository = (*fakePointRepo)(nil)

func newFakePointRepo() *fakePointRepo {
	return &fakePointRepo{}
}

func (r *fakePointRepo) Create(ctx context.Context, transaction *models.PointTransaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = primitive.NewObjectID()
	copied := *transaction
	r.transactions = append(r.transactions, &copied)
	return nil
}

func (r *fakePointRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.PointTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PointTransaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

// recordedNotification captures one Notify call.
type recordedNotification struct {
	RecipientID primitive.ObjectID
	Kind        string
	Title       string
	Message     string
	Data        map[string]interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

var _ Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) Notify(ctx context.Context, recipientID primitive.ObjectID, kind, title, message string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recordedNotification{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Message:     message,
		Data:        data,
	})
}

func (n *recordingNotifier) byKind(kind string) []recordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedNotification
	for _, s := range n.sent {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// failingRenderer simulates an unavailable certificate rendering backend.
type failingRenderer struct{}

func (failingRenderer) Render(cert *models.Certificate, recipient *models.User) (string, error) {
	return "", errors.New("renderer unavailable")
}
