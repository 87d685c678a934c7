package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyay-events/suyay-go/internal/authz"
	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
)

type fakeStore struct {
	favorites map[int64]*domain.Favorite
	ratings   map[int64]*domain.Rating
	reports   map[int64]*domain.Report
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		favorites: map[int64]*domain.Favorite{},
		ratings:   map[int64]*domain.Rating{},
		reports:   map[int64]*domain.Report{},
		nextID:    1,
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) Favorite(_ context.Context, id int64) (*domain.Favorite, error) {
	fav, ok := f.favorites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *fav
	return &cp, nil
}

func (f *fakeStore) FavoriteByUserEvent(_ context.Context, userID, eventID int64) (*domain.Favorite, error) {
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.EventID == eventID {
			cp := *fav
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) Favorites(_ context.Context, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateFavorite(_ context.Context, userID, eventID int64) (*domain.Favorite, error) {
	for _, fav := range f.favorites {
		if fav.UserID == userID && fav.EventID == eventID {
			return nil, repository.ErrConflict
		}
	}
	fav := &domain.Favorite{ID: f.id(), UserID: userID, EventID: eventID}
	f.favorites[fav.ID] = fav
	cp := *fav
	return &cp, nil
}

func (f *fakeStore) DeleteFavorite(_ context.Context, id int64) error {
	if _, ok := f.favorites[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.favorites, id)
	return nil
}

func (f *fakeStore) RatingByUserEvent(_ context.Context, userID, eventID int64) (*domain.Rating, error) {
	for _, rt := range f.ratings {
		if rt.UserID == userID && rt.EventID == eventID {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) Ratings(_ context.Context, eventID, userID *int64) ([]domain.Rating, error) {
	var out []domain.Rating
	for _, rt := range f.ratings {
		if eventID != nil && rt.EventID != *eventID {
			continue
		}
		if userID != nil && rt.UserID != *userID {
			continue
		}
		out = append(out, *rt)
	}
	return out, nil
}

func (f *fakeStore) CreateRating(_ context.Context, rt *domain.Rating) (*domain.Rating, error) {
	for _, r := range f.ratings {
		if r.UserID == rt.UserID && r.EventID == rt.EventID {
			return nil, repository.ErrConflict
		}
	}
	cp := *rt
	cp.ID = f.id()
	f.ratings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) Report(_ context.Context, id int64) (*domain.Report, error) {
	rep, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (f *fakeStore) Reports(_ context.Context, userID *int64, _, _ int) ([]domain.Report, error) {
	var out []domain.Report
	for _, rep := range f.reports {
		if userID != nil && rep.UserID != *userID {
			continue
		}
		out = append(out, *rep)
	}
	return out, nil
}

func (f *fakeStore) CreateReport(_ context.Context, rep *domain.Report) (*domain.Report, error) {
	cp := *rep
	cp.ID = f.id()
	cp.Status = domain.ModerationPending
	f.reports[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) UpdateReportStatus(_ context.Context, id int64, status domain.ModerationStatus) (*domain.Report, error) {
	rep, ok := f.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rep.Status = status
	cp := *rep
	return &cp, nil
}

type fakeEventStore struct {
	ids map[int64]bool
}

func (f *fakeEventStore) Get(_ context.Context, id int64) (*domain.Event, error) {
	if !f.ids[id] {
		return nil, repository.ErrNotFound
	}
	return &domain.Event{ID: id}, nil
}

var (
	buyer = domain.Principal{UserID: 7, Role: domain.RoleBuyer}
	admin = domain.Principal{UserID: 1, Role: domain.RoleAdministrator}
)

func newTestService(events ...int64) (*Service, *fakeStore) {
	store := newFakeStore()
	es := &fakeEventStore{ids: map[int64]bool{}}
	for _, id := range events {
		es.ids[id] = true
	}
	return New(store, es), store
}

func TestAddFavoriteMissingEventBeatsForbidden(t *testing.T) {
	svc, _ := newTestService()

	// foreign payload user AND missing event: not-found must win
	_, err := svc.AddFavorite(context.Background(), buyer, 42, 99)
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestAddFavoriteForbiddenForForeignUser(t *testing.T) {
	svc, _ := newTestService(5)

	_, err := svc.AddFavorite(context.Background(), buyer, 42, 5)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestAddFavoriteDuplicateConflicts(t *testing.T) {
	svc, _ := newTestService(5)

	_, err := svc.AddFavorite(context.Background(), buyer, buyer.UserID, 5)
	require.NoError(t, err)

	_, err = svc.AddFavorite(context.Background(), buyer, buyer.UserID, 5)
	require.ErrorIs(t, err, ErrAlreadyFavorite)
}

func TestFavoritesDeniesForeignFilter(t *testing.T) {
	svc, _ := newTestService(5)

	other := int64(42)
	_, err := svc.Favorites(context.Background(), buyer, &other)
	require.ErrorIs(t, err, authz.ErrForbidden)

	// admins may inspect anyone's list
	_, err = svc.Favorites(context.Background(), admin, &other)
	require.NoError(t, err)
}

func TestRemoveFavoriteOwnerOnly(t *testing.T) {
	svc, store := newTestService(5)

	fav, err := svc.AddFavorite(context.Background(), buyer, buyer.UserID, 5)
	require.NoError(t, err)

	stranger := domain.Principal{UserID: 42, Role: domain.RoleBuyer}
	err = svc.RemoveFavorite(context.Background(), stranger, fav.ID)
	require.ErrorIs(t, err, authz.ErrForbidden)

	err = svc.RemoveFavorite(context.Background(), buyer, fav.ID)
	require.NoError(t, err)
	assert.Empty(t, store.favorites)

	err = svc.RemoveFavorite(context.Background(), buyer, fav.ID)
	require.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestRateValidatesScore(t *testing.T) {
	svc, _ := newTestService(5)

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), buyer, &domain.Rating{
			UserID: buyer.UserID, EventID: 5, Score: score,
		})
		require.ErrorIs(t, err, ErrInvalidScore, "score %d must be rejected", score)
	}

	rt, err := svc.Rate(context.Background(), buyer, &domain.Rating{
		UserID: buyer.UserID, EventID: 5, Score: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rt.Score)
}

func TestRateTwiceConflicts(t *testing.T) {
	svc, _ := newTestService(5)

	_, err := svc.Rate(context.Background(), buyer, &domain.Rating{
		UserID: buyer.UserID, EventID: 5, Score: 4,
	})
	require.NoError(t, err)

	_, err = svc.Rate(context.Background(), buyer, &domain.Rating{
		UserID: buyer.UserID, EventID: 5, Score: 2,
	})
	require.ErrorIs(t, err, ErrAlreadyRated)
}

func TestReportsNarrowForeignFilter(t *testing.T) {
	svc, store := newTestService()

	mine := &domain.Report{UserID: buyer.UserID, ReportType: "bug", Description: "broken page"}
	theirs := &domain.Report{UserID: 42, ReportType: "abuse", Description: "spam event"}
	_, err := store.CreateReport(context.Background(), mine)
	require.NoError(t, err)
	_, err = store.CreateReport(context.Background(), theirs)
	require.NoError(t, err)

	other := int64(42)
	got, err := svc.Reports(context.Background(), buyer, &other, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, buyer.UserID, got[0].UserID, "foreign filter must be narrowed to the caller")

	got, err = svc.Reports(context.Background(), admin, &other, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].UserID)
}

func TestModerateReportAdminOnly(t *testing.T) {
	svc, store := newTestService()

	rep, err := store.CreateReport(context.Background(), &domain.Report{
		UserID: buyer.UserID, ReportType: "bug", Description: "broken page",
	})
	require.NoError(t, err)

	_, err = svc.ModerateReport(context.Background(), buyer, rep.ID, domain.ModerationResolved)
	require.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.ModerateReport(context.Background(), buyer, 999, domain.ModerationResolved)
	require.ErrorIs(t, err, ErrReportNotFound, "missing report must win over forbidden")

	updated, err := svc.ModerateReport(context.Background(), admin, rep.ID, domain.ModerationResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationResolved, updated.Status)
}
