package booking

import (
	"context"
	"sync"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

// fakeRepo simula o repositório gorm em memória. O mutex cobre a
// transição inteira, espelhando o SELECT ... FOR UPDATE do real.
type fakeRepo struct {
	mu sync.Mutex

	clinic   *models.Clinic
	pets     map[uint]*models.Pet
	bookings map[uint]*models.Booking
	logs     []models.BookingActionLog
	hadLive  map[uint]bool

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clinic: &models.Clinic{
			ID:                1,
			Name:              "Clínica Teste",
			Slug:              "clinica-teste",
			Timezone:          "America/Sao_Paulo",
			JoinWindowMinutes: 5,
			TimeFormat:        "24h",
		},
		pets:     map[uint]*models.Pet{},
		bookings: map[uint]*models.Booking{},
		hadLive:  map[uint]bool{},
	}
}

func (f *fakeRepo) addPet(ownerID uint) *models.Pet {
	f.nextID++
	p := &models.Pet{ID: f.nextID, ClinicID: f.clinic.ID, OwnerID: ownerID, Name: "Rex"}
	f.pets[p.ID] = p
	return p
}

func (f *fakeRepo) addBooking(b models.Booking) *models.Booking {
	f.nextID++
	b.ID = f.nextID
	b.ClinicID = f.clinic.ID
	b.Clinic = *f.clinic
	f.bookings[b.ID] = &b
	return &b
}

func (f *fakeRepo) GetClinicByID(_ context.Context, id uint) (*models.Clinic, error) {
	if id != f.clinic.ID {
		return nil, httperr.ErrBusiness("clinic_not_found")
	}
	c := *f.clinic
	return &c, nil
}

func (f *fakeRepo) GetPetForOwner(_ context.Context, clinicID, ownerID, petID uint) (*models.Pet, error) {
	p, ok := f.pets[petID]
	if !ok || p.ClinicID != clinicID || p.OwnerID != ownerID {
		return nil, httperr.ErrBusiness("pet_not_found")
	}
	return p, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking, actor domain.Actor, details domain.Details) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	b.ID = f.nextID
	saved := *b
	f.bookings[b.ID] = &saved
	f.appendLog(b.ID, actor, details)
	return nil
}

func (f *fakeRepo) GetBookingForClinic(_ context.Context, bookingID, clinicID uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) ListBookingsForDate(_ context.Context, clinicID, userID uint, role, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if b.ClinicID != clinicID || b.ScheduledDate != date {
			continue
		}
		switch role {
		case models.RoleOwner:
			if b.OwnerID != userID {
				continue
			}
		case models.RoleVeterinarian:
			if b.VeterinarianID != userID {
				continue
			}
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) TransitionBooking(
	_ context.Context,
	bookingID uint,
	clinicID uint,
	actor domain.Actor,
	apply func(b *models.Booking) (domain.Details, error),
) (*models.Booking, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.ClinicID != clinicID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	cp := *b
	details, err := apply(&cp)
	if err != nil {
		return nil, err
	}

	*b = cp
	if details != nil {
		f.appendLog(b.ID, actor, details)
	}

	out := cp
	return &out, nil
}

func (f *fakeRepo) ListConfirmedBookings(_ context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == string(domain.StatusConfirmed) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ConsultationHadLiveSession(_ context.Context, consultationID uint) (bool, error) {
	return f.hadLive[consultationID], nil
}

func (f *fakeRepo) ListActionLog(_ context.Context, bookingID uint) ([]models.BookingActionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.BookingActionLog
	for _, l := range f.logs {
		if l.BookingID == bookingID {
			out = append(out, l)
		}
	}
	return out, nil
}

// chamar só com o mutex em mãos
func (f *fakeRepo) appendLog(bookingID uint, actor domain.Actor, details domain.Details) {
	f.logs = append(f.logs, models.BookingActionLog{
		ID:          uint(len(f.logs) + 1),
		BookingID:   bookingID,
		Action:      details.Action(),
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		Details:     domain.EncodeDetails(details),
	})
}

var _ domain.Repository = (*fakeRepo)(nil)

func nowInClinicDate(tz string) string {
	return timezone.NowIn(tz).Format("2006-01-02")
}
