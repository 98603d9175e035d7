package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/nagaralert/internal/features/notifications"
	"github.com/xyz-asif/nagaralert/internal/features/reports"
	"github.com/xyz-asif/nagaralert/internal/features/users"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

type listRepo struct {
	reports.Repository
	items []reports.Report
}

func (r listRepo) List(_ context.Context) ([]reports.Report, error) { return r.items, nil }

type pointsRepo struct {
	users.Repository
	credited map[string]int
	err      error
}

func (r *pointsRepo) AddPoints(_ context.Context, uid string, delta int) error {
	if r.err != nil {
		return r.err
	}
	r.credited[uid] += delta
	return nil
}

type noticeRepo struct {
	notifications.Repository
	created []notifications.Notification
}

func (r *noticeRepo) Create(_ context.Context, n *notifications.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func TestRepositorySource_NewestFirst(t *testing.T) {
	now := time.Now()
	src := repositorySource{repo: listRepo{items: []reports.Report{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
	}}}

	items, err := src.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", items[0].ID)
}

func TestKarmaWithNotice(t *testing.T) {
	points := &pointsRepo{credited: map[string]int{}}
	notices := &noticeRepo{}
	k := karmaWithNotice{
		users:   users.NewService(points),
		notices: notifications.NewService(notices),
	}

	require.NoError(t, k.AddPoints(context.Background(), "citizen-1", reports.KarmaPerVerifiedReport))

	assert.Equal(t, 50, points.credited["citizen-1"])
	require.Len(t, notices.created, 1)
	assert.Equal(t, notifications.TypeKarma, notices.created[0].Type)
}

func TestKarmaWithNotice_NoNoticeWhenCreditFails(t *testing.T) {
	notices := &noticeRepo{}
	k := karmaWithNotice{
		users:   users.NewService(&pointsRepo{err: errors.New("down")}),
		notices: notifications.NewService(notices),
	}

	require.Error(t, k.AddPoints(context.Background(), "citizen-1", 50))
	assert.Empty(t, notices.created)
}

func TestKarmaWithNotice_UnknownCitizenGetsNoNotice(t *testing.T) {
	notices := &noticeRepo{}
	k := karmaWithNotice{
		users:   users.NewService(&pointsRepo{err: apperrors.ErrNotFound}),
		notices: notifications.NewService(notices),
	}

	assert.ErrorIs(t, k.AddPoints(context.Background(), "ghost", 50), apperrors.ErrNotFound)
	assert.Empty(t, notices.created)
}
