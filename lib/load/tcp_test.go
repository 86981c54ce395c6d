package load

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	port int    = 5555
	zone string = ""
)

var ip net.IP = net.IPv4(10, 255, 255, 255)

func TestValidateAndRemoveDuplicateAddresses(t *testing.T) {
	t.Run("Returns an error if the slice of addresses passed is empty", func(t *testing.T) {
		addresses := make([]*net.TCPAddr, 0)
		_, err := validateAndRemoveDuplicateAddresses(addresses)
		assert.ErrorIs(t, err, ErrEmptyOrNilSlice)
	})
	t.Run("Returns an error if the slice of addresses passed is nil", func(t *testing.T) {
		_, err := validateAndRemoveDuplicateAddresses(nil)
		assert.ErrorIs(t, err, ErrEmptyOrNilSlice)
	})
	t.Run("Returns an error if the slice only contains nil addresses", func(t *testing.T) {
		addresses := []*net.TCPAddr{nil}
		_, err := validateAndRemoveDuplicateAddresses(addresses)
		assert.ErrorIs(t, err, ErrOnlyNilAddresses)
	})
	t.Run("Removes duplicate addresses from the returned slice", func(t *testing.T) {
		a := &net.TCPAddr{IP: ip, Port: port, Zone: zone}
		b := &net.TCPAddr{IP: ip, Port: port, Zone: zone}

		addresses := []*net.TCPAddr{a, b}
		cleaned, err := validateAndRemoveDuplicateAddresses(addresses)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(cleaned))
		assert.Same(t, a, cleaned[0])
	})
	t.Run("Removes nil addresses from the returned slice", func(t *testing.T) {
		a := &net.TCPAddr{IP: ip, Port: port, Zone: zone}

		addresses := []*net.TCPAddr{a, nil}
		cleaned, err := validateAndRemoveDuplicateAddresses(addresses)
		expected := []*net.TCPAddr{a}

		assert.NoError(t, err)
		assert.Equal(t, expected, cleaned)
	})
	t.Run("Keeps the order addresses were passed in", func(t *testing.T) {
		a := &net.TCPAddr{IP: ip, Port: 3, Zone: zone}
		b := &net.TCPAddr{IP: ip, Port: 1, Zone: zone}
		c := &net.TCPAddr{IP: ip, Port: 2, Zone: zone}

		cleaned, err := validateAndRemoveDuplicateAddresses([]*net.TCPAddr{a, nil, b, a, c})
		assert.NoError(t, err)
		assert.Equal(t, []*net.TCPAddr{a, b, c}, cleaned)
	})
}
