package services

import (
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mechanic-system/internal/dto"
	"mechanic-system/internal/entities"
	apperrors "mechanic-system/pkg/errors"
)

func TestMechanicService_CRUD(t *testing.T) {
	repo := newFakeMechanicRepo()
	svc := NewMechanicService(repo, &fakeTxManager{}, zap.NewNop())

	created, err := svc.CreateMechanic(context.Background(), dto.CreateMechanicDTO{
		Name:   "Max",
		Email:  "max@example.com",
		Salary: null.Float64From(52000),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	assert.Equal(t, 52000.0, created.Salary.Float64)

	newName := "Maxine"
	updated, err := svc.UpdateMechanic(context.Background(), created.ID, dto.UpdateMechanicDTO{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Maxine", updated.Name)
	assert.Equal(t, "max@example.com", updated.Email)

	require.NoError(t, svc.DeleteMechanic(context.Background(), created.ID))

	var httpErr *apperrors.HttpError
	_, err = svc.FindMechanic(context.Background(), created.ID)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Mechanic not found.", httpErr.Message)
}

func TestMechanicService_MostActiveOrdering(t *testing.T) {
	repo := newFakeMechanicRepo()
	svc := NewMechanicService(repo, &fakeTxManager{}, zap.NewNop())

	repo.ranked = []entities.RankedMechanic{
		{Mechanic: entities.Mechanic{ID: 3, Name: "Busy"}, TicketCount: 5},
		{Mechanic: entities.Mechanic{ID: 1, Name: "Middling"}, TicketCount: 2},
		{Mechanic: entities.Mechanic{ID: 2, Name: "Idle"}, TicketCount: 0},
	}

	ranked, err := svc.GetMostActive(context.Background())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, uint64(5), ranked[0].TicketCount)
	assert.Equal(t, "Busy", ranked[0].Name)
	assert.Equal(t, uint64(0), ranked[2].TicketCount)
}
