package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSysClock_Now(t *testing.T) {
	clock := sysClock{}
	now := clock.Now()

	// Timestamps are produced in UTC and localized at the store layer.
	assert.Equal(t, "UTC", now.Location().String())
}
