package load

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

var (
	// ErrEmptyOrNilSlice is returned when no addresses are passed to NewLoadBalancer.
	ErrEmptyOrNilSlice = errors.New("slice of addresses passed was empty or nil")
	// ErrOnlyNilAddresses is returned when every address passed to NewLoadBalancer is nil.
	ErrOnlyNilAddresses = errors.New("slice of addresses contained no non-nil entries")
)

/*
validateAndRemoveDuplicateAddresses drops nil and duplicate addresses. The returned
slice keeps the order of the input, and the first occurrence of a duplicate wins, so
callers can rely on index order when breaking ties between hosts.
*/
func validateAndRemoveDuplicateAddresses(addresses []*net.TCPAddr) ([]*net.TCPAddr, error) {
	if len(addresses) == 0 {
		return nil, ErrEmptyOrNilSlice
	}

	cleaned := make([]*net.TCPAddr, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))

	for _, address := range addresses {
		if address == nil {
			continue
		}
		mapKey := getMapKeyForAddress(address)
		if _, ok := seen[mapKey]; ok {
			continue
		}
		seen[mapKey] = struct{}{}
		cleaned = append(cleaned, address)
	}

	if len(cleaned) == 0 {
		return nil, ErrOnlyNilAddresses
	}

	return cleaned, nil
}

func getMapKeyForAddress(address *net.TCPAddr) string {
	return strings.Join([]string{address.Zone, address.IP.String(), strconv.Itoa(address.Port)}, "-")
}
