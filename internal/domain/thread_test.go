package domain_test

import (
	"testing"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDirectThreadSpec_Key(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	propertyID := uuid.New()

	t.Run("order insensitive", func(t *testing.T) {
		spec1 := domain.DirectThreadSpec{UserA: userA, UserB: userB}
		spec2 := domain.DirectThreadSpec{UserA: userB, UserB: userA}

		assert.Equal(t, spec1.Key(), spec2.Key())
	})

	t.Run("property scope changes the key", func(t *testing.T) {
		plain := domain.DirectThreadSpec{UserA: userA, UserB: userB}
		scoped := domain.DirectThreadSpec{UserA: userA, UserB: userB, PropertyID: &propertyID}

		assert.NotEqual(t, plain.Key(), scoped.Key())
	})

	t.Run("property scope is order insensitive too", func(t *testing.T) {
		spec1 := domain.DirectThreadSpec{UserA: userA, UserB: userB, PropertyID: &propertyID}
		spec2 := domain.DirectThreadSpec{UserA: userB, UserB: userA, PropertyID: &propertyID}

		assert.Equal(t, spec1.Key(), spec2.Key())
	})

	t.Run("different properties give different keys", func(t *testing.T) {
		otherProperty := uuid.New()
		spec1 := domain.DirectThreadSpec{UserA: userA, UserB: userB, PropertyID: &propertyID}
		spec2 := domain.DirectThreadSpec{UserA: userA, UserB: userB, PropertyID: &otherProperty}

		assert.NotEqual(t, spec1.Key(), spec2.Key())
	})
}

func TestDirectThreadSpec_Validate(t *testing.T) {
	userA := uuid.New()

	t.Run("valid", func(t *testing.T) {
		spec := domain.DirectThreadSpec{UserA: userA, UserB: uuid.New()}
		assert.NoError(t, spec.Validate())
	})

	t.Run("missing participant", func(t *testing.T) {
		spec := domain.DirectThreadSpec{UserA: userA}
		err := spec.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
	})

	t.Run("self conversation", func(t *testing.T) {
		spec := domain.DirectThreadSpec{UserA: userA, UserB: userA}
		err := spec.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
	})
}

func TestGroupThreadSpec_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		spec := domain.GroupThreadSpec{
			Title:          "Tim Pemasaran",
			ParticipantIDs: []uuid.UUID{uuid.New(), uuid.New()},
		}
		assert.NoError(t, spec.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		spec := domain.GroupThreadSpec{
			ParticipantIDs: []uuid.UUID{uuid.New(), uuid.New()},
		}
		assert.ErrorIs(t, spec.Validate(), domain.ErrInvalidThreadSpec)
	})

	t.Run("too few participants", func(t *testing.T) {
		spec := domain.GroupThreadSpec{
			Title:          "Tim Pemasaran",
			ParticipantIDs: []uuid.UUID{uuid.New()},
		}
		assert.ErrorIs(t, spec.Validate(), domain.ErrInvalidThreadSpec)
	})
}

func TestBroadcastThreadSpec_Validate(t *testing.T) {
	devOrg := uuid.New()

	t.Run("valid", func(t *testing.T) {
		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrg, BrokerageOrgID: uuid.New()}
		assert.NoError(t, spec.Validate())
	})

	t.Run("missing org", func(t *testing.T) {
		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrg}
		assert.ErrorIs(t, spec.Validate(), domain.ErrInvalidThreadSpec)
	})

	t.Run("same org twice", func(t *testing.T) {
		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrg, BrokerageOrgID: devOrg}
		assert.ErrorIs(t, spec.Validate(), domain.ErrInvalidThreadSpec)
	})
}
