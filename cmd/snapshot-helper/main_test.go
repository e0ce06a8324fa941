package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvokerUID(t *testing.T) {
	t.Setenv("PKEXEC_UID", "")
	t.Setenv("SUDO_UID", "")
	assert.Equal(t, -1, invokerUID())

	t.Setenv("SUDO_UID", "1001")
	assert.Equal(t, 1001, invokerUID())

	t.Setenv("PKEXEC_UID", "1000")
	assert.Equal(t, 1000, invokerUID())

	t.Setenv("PKEXEC_UID", "root")
	assert.Equal(t, 1001, invokerUID())
}
