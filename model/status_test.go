package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusSets(t *testing.T) {
	inFlight := []Status{StatusOnUpload, StatusModeration}
	settled := []Status{StatusApproved, StatusRejected, StatusNeedsFix, StatusDeleted}

	for _, s := range inFlight {
		assert.True(t, s.Valid(), s)
		assert.True(t, s.InFlight(), s)
		assert.False(t, s.Settled(), s)
	}
	for _, s := range settled {
		assert.True(t, s.Valid(), s)
		assert.False(t, s.InFlight(), s)
		assert.True(t, s.Settled(), s)
	}

	bogus := Status("limbo")
	assert.False(t, bogus.Valid())
	assert.False(t, bogus.Settled())
}
