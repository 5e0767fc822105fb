package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNombre(t *testing.T) {
	assert.True(t, validNombre("Juan Perez"))
	assert.True(t, validNombre("  María  "))
	assert.False(t, validNombre("Juan"))
	assert.False(t, validNombre("    ab    "))
	assert.False(t, validNombre(""))
}

func TestValidCedula(t *testing.T) {
	assert.True(t, validCedula("0102030405"))
	assert.True(t, validCedula("0999999999999"))
	assert.True(t, validCedula(" 0102030405 "))
	assert.False(t, validCedula("123"))
	assert.False(t, validCedula("01020304051"))
	assert.False(t, validCedula("01020304ab"))
	assert.False(t, validCedula("0102-030405"))
}

func TestValidCorreo(t *testing.T) {
	assert.True(t, validCorreo("juan.perez@example.com"))
	assert.True(t, validCorreo("a_b+c@sub.dominio.ec"))
	assert.False(t, validCorreo("sin-arroba.com"))
	assert.False(t, validCorreo("juan@dominio"))
	assert.False(t, validCorreo("@example.com"))
}

func TestValidTelefono(t *testing.T) {
	assert.True(t, validTelefono("0987654321"))
	assert.True(t, validTelefono("099-123-4567"))
	assert.True(t, validTelefono("+593 99 111 2233"))
	assert.False(t, validTelefono("0212345678"))
	assert.False(t, validTelefono("0987"))
	assert.False(t, validTelefono("texto"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0991234567", normalizePhone("099-123-4567"))
	assert.Equal(t, "593991112233", normalizePhone("+593 99 111 2233"))
}

func TestValidDireccion(t *testing.T) {
	assert.True(t, validDireccion("Av. Principal 123"))
	assert.False(t, validDireccion("Calle 1"))
}

func TestIsNoAnswer(t *testing.T) {
	assert.True(t, isNoAnswer("NO"))
	assert.True(t, isNoAnswer("no"))
	assert.True(t, isNoAnswer(" No "))
	assert.False(t, isNoAnswer("nope"))
	assert.False(t, isNoAnswer(""))
}
