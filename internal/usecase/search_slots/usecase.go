package search_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// UseCase поиск открытых слотов по дате и по консультанту.
// Доступен всем ролям, включая гостей.
type UseCase struct {
	slotRepo     SlotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SearchByDate возвращает открытые слоты на дату, сгруппированные по консультантам.
// Консультанты без слотов не попадают в результат, дата в прошлом дает пустой результат.
// Сегодняшние слоты, которые уже начались, не возвращаются.
func (uc *UseCase) SearchByDate(ctx context.Context, session domain.SessionContext, date time.Time) (*ByDateResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := domain.NormalizeDate(date)
	resp := &ByDateResponse{Date: day, Counselors: make([]CounselorSlots, 0)}

	now := uc.timeProvider.Now().In(uc.location)
	if day.Before(domain.NormalizeDate(now)) {
		uc.logger.Info("SearchByDate: role=%s, date=%s is in the past", session.Role, day.Format(domain.DateFormat))
		return resp, nil
	}

	// Слоты и их владельцы читаются из одного снимка
	var (
		slots      []domain.AvailabilitySlot
		counselors map[uuid.UUID]*Counselor
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = uc.slotRepo.ListOpenSlots(txCtx, domain.SlotFilter{Date: &day})
		if err != nil {
			return fmt.Errorf("%w: SearchByDate - list slots: %v", ErrStoreUnavailable, err)
		}
		slots = openAt(slots, now)

		counselors, err = uc.loadCounselors(txCtx, slots)
		return err
	})
	if err != nil {
		uc.logger.Error("SearchByDate: failed for %s: %v", day.Format(domain.DateFormat), err)
		return nil, storeError("SearchByDate", err)
	}

	groups := make(map[uuid.UUID]*CounselorSlots)
	for _, s := range slots {
		c, ok := counselors[s.CounselorID]
		if !ok {
			continue
		}
		g, ok := groups[s.CounselorID]
		if !ok {
			g = &CounselorSlots{Counselor: *c}
			groups[s.CounselorID] = g
		}
		g.Slots = append(g.Slots, toSlot(s))
	}

	for _, g := range groups {
		sortSlots(g.Slots)
		resp.Counselors = append(resp.Counselors, *g)
	}
	sort.Slice(resp.Counselors, func(i, j int) bool {
		a, b := resp.Counselors[i].Counselor, resp.Counselors[j].Counselor
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})

	uc.logger.Info("SearchByDate: role=%s, date=%s, counselors=%d, slots=%d",
		session.Role, day.Format(domain.DateFormat), len(resp.Counselors), len(slots))

	return resp, nil
}

// SearchByCounselor возвращает открытые слоты консультанта начиная с сегодняшнего дня,
// сгруппированные по датам
func (uc *UseCase) SearchByCounselor(ctx context.Context, session domain.SessionContext, counselorID uuid.UUID) (*ByCounselorResponse, error) {
	if counselorID == uuid.Nil {
		return nil, fmt.Errorf("%w: counselorId is required", ErrInvalidInput)
	}

	resp := &ByCounselorResponse{Days: make([]DaySlots, 0)}
	now := uc.timeProvider.Now().In(uc.location)
	today := domain.NormalizeDate(now)

	var (
		counselor *domain.User
		slots     []domain.AvailabilitySlot
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		users, err := uc.userRepo.GetByIDs(txCtx, []uuid.UUID{counselorID})
		if err != nil {
			return fmt.Errorf("%w: SearchByCounselor - get counselor: %v", ErrStoreUnavailable, err)
		}
		u, ok := users[counselorID]
		if !ok || !u.IsCounselor() {
			return nil
		}
		counselor = u

		slots, err = uc.slotRepo.ListOpenSlots(txCtx, domain.SlotFilter{
			CounselorID: &counselorID,
			FromDate:    &today,
		})
		if err != nil {
			return fmt.Errorf("%w: SearchByCounselor - list slots: %v", ErrStoreUnavailable, err)
		}
		slots = openAt(slots, now)
		return nil
	})
	if err != nil {
		uc.logger.Error("SearchByCounselor: failed for counselor=%s: %v", counselorID, err)
		return nil, storeError("SearchByCounselor", err)
	}

	if counselor == nil {
		uc.logger.Warn("SearchByCounselor: counselor=%s not found or not a counselor", counselorID)
		return resp, nil
	}
	c := toCounselor(counselor)
	resp.Counselor = &c

	byDate := make(map[time.Time]*DaySlots)
	for _, s := range slots {
		if s.CounselorID != counselorID {
			continue
		}
		day := domain.NormalizeDate(s.Date)
		g, ok := byDate[day]
		if !ok {
			g = &DaySlots{Date: day}
			byDate[day] = g
		}
		g.Slots = append(g.Slots, toSlot(s))
	}

	for _, g := range byDate {
		sortSlots(g.Slots)
		resp.Days = append(resp.Days, *g)
	}
	sort.Slice(resp.Days, func(i, j int) bool {
		return resp.Days[i].Date.Before(resp.Days[j].Date)
	})

	uc.logger.Info("SearchByCounselor: role=%s, counselor=%s, days=%d, slots=%d",
		session.Role, counselorID, len(resp.Days), len(slots))

	return resp, nil
}

// ListCounselors справочник консультантов
func (uc *UseCase) ListCounselors(ctx context.Context) ([]Counselor, error) {
	role := domain.RoleCounselor
	users, err := uc.userRepo.List(ctx, &role)
	if err != nil {
		uc.logger.Error("ListCounselors: failed to list counselors: %v", err)
		return nil, fmt.Errorf("%w: ListCounselors - list users: %v", ErrStoreUnavailable, err)
	}

	counselors := make([]Counselor, 0, len(users))
	for _, u := range users {
		counselors = append(counselors, toCounselor(u))
	}
	return counselors, nil
}

// loadCounselors загружает владельцев слотов и оставляет только тех, кто сейчас консультант
func (uc *UseCase) loadCounselors(ctx context.Context, slots []domain.AvailabilitySlot) (map[uuid.UUID]*Counselor, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, s := range slots {
		if _, ok := seen[s.CounselorID]; ok {
			continue
		}
		seen[s.CounselorID] = struct{}{}
		ids = append(ids, s.CounselorID)
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load counselors: %v", ErrStoreUnavailable, err)
	}

	counselors := make(map[uuid.UUID]*Counselor, len(users))
	for id, u := range users {
		if !u.IsCounselor() {
			uc.logger.Warn("search: user=%s owns open slots but has role=%s, skipping", id, u.Role)
			continue
		}
		c := toCounselor(u)
		counselors[id] = &c
	}
	return counselors, nil
}

// openAt оставляет слоты, которые еще не начались
func openAt(slots []domain.AvailabilitySlot, now time.Time) []domain.AvailabilitySlot {
	open := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		if s.IsOpen(now) {
			open = append(open, s)
		}
	}
	return open
}

// storeError оборачивает ошибку в ErrStoreUnavailable, если она еще не обернута
func storeError(op string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s - transaction: %v", ErrStoreUnavailable, op, err)
}

func toCounselor(u *domain.User) Counselor {
	return Counselor{ID: u.ID, Name: u.DisplayName(), Email: u.Email}
}

func toSlot(s domain.AvailabilitySlot) Slot {
	return Slot{
		ID:          s.ID,
		CounselorID: s.CounselorID,
		Date:        domain.NormalizeDate(s.Date),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime.Minutes() != slots[j].StartTime.Minutes() {
			return slots[i].StartTime.Minutes() < slots[j].StartTime.Minutes()
		}
		return slots[i].ID < slots[j].ID
	})
}
